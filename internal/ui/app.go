package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tablo/internal/canvas"
	"tablo/internal/model"
)

// headerRows is how many terminal rows the header occupies (title + border).
const headerRows = 2

// planState is the floor plan shared between the app and the engine's commit
// callback. A pointer, because the Bubble Tea model is copied by value on
// every update while the engine keeps its callbacks for its whole lifetime.
type planState struct {
	plan   model.FloorPlan
	loaded bool
	dirty  bool
}

// Model is the root Bubble Tea model.
type Model struct {
	db           *sql.DB
	restaurantID string
	readOnly     bool
	screen       model.Screen
	mode         model.Mode

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	plan   *planState
	eng    *canvas.Engine
	editor *EditorModel

	reservations []model.Reservation
	resList      *ReservationsModel
	assign       *AssignModel
	tableForm    *TableFormModel
	resForm      *ReservationFormModel

	filtering   bool
	filterInput textinput.Model

	keys     KeyMap
	formKeys FormKeyMap
	prefs    UIPreferences
}

// New creates the root model and wires up the canvas engine. The engine's
// commit callback and gesture callbacks close over the shared plan state and
// the editor, so mutations land regardless of which model copy is live.
func New(database *sql.DB, restaurantID string, readOnly bool) Model {
	prefs := loadUIPreferences()
	ps := &planState{}

	eng := canvas.New(canvas.Options{
		ReadOnly: readOnly,
		User:     "editor",
		Commit: func(fp model.FloorPlan) {
			ps.plan = fp
			ps.dirty = true
		},
	})
	ed := NewEditorModel(eng, ps, prefs.ShowGrid)

	// The callbacks need the engine and editor in scope, so wire them after
	// construction.
	eng.Gesture.SetCallbacks(canvas.Callbacks{
		DeleteSelection: func() {
			ps.plan = eng.Mutator.DeleteObjects(ps.plan, eng.Selection.IDs())
		},
		SelectAll: func() {
			ids := make([]string, 0, len(ps.plan.Objects))
			for _, o := range ps.plan.Objects {
				ids = append(ids, o.ID)
			}
			eng.Selection.Select(ids, false)
		},
		BoxSelect: func(b canvas.Bounds) {
			eng.Selection.Select(ed.ObjectsInBox(b), false)
		},
	})

	filter := textinput.New()
	filter.Placeholder = "guest name"
	filter.CharLimit = 50

	return Model{
		db:           database,
		restaurantID: restaurantID,
		readOnly:     readOnly,
		screen:       model.ScreenEditor,
		mode:         model.ModeNav,
		plan:         ps,
		eng:          eng,
		editor:       ed,
		filterInput:  filter,
		keys:         DefaultKeyMap(),
		formKeys:     DefaultFormKeyMap(),
		prefs:        prefs,
	}
}

// Init loads the floor plan and the reservation list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadFloorPlanCmd(m.db, m.restaurantID, m.prefs.LastPlanID),
		loadReservationsCmd(m.db, m.restaurantID),
	)
}

// flushPlan persists the plan when the engine committed a change.
func (m Model) flushPlan() tea.Cmd {
	if m.readOnly || !m.plan.dirty || !m.plan.loaded {
		return nil
	}
	m.plan.dirty = false
	return saveFloorPlanCmd(m.db, m.plan.plan)
}

func (m Model) contentHeight() int {
	return m.height - 4
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// one row of the content area is the editor status bar
		m.editor.SetSize(m.width, m.contentHeight()-1)
		return m, nil

	case tea.MouseMsg:
		if m.screen != model.ScreenEditor || m.mode != model.ModeNav || m.showingHelp {
			return m, nil
		}
		msg.Y -= headerRows
		if msg.Y < 0 || msg.Y >= m.contentHeight()-1 {
			return m, nil
		}
		m.editor.HandleMouse(msg)
		return m, m.flushPlan()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}
		if msg.String() == "?" && m.mode == model.ModeNav && !m.filtering {
			m.showingHelp = true
			return m, nil
		}

		if m.filtering {
			return m.handleFilterInput(msg)
		}
		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.FloorPlanLoadedMsg:
		m.plan.plan = msg.Plan
		m.plan.loaded = true
		m.error = ""
		if m.prefs.LastPlanID != msg.Plan.ID {
			m.prefs.LastPlanID = msg.Plan.ID
			_ = saveUIPreferences(m.prefs)
		}
		return m, nil

	case model.FloorPlanSavedMsg:
		if msg.ID == m.plan.plan.ID {
			m.plan.plan.Meta.Version = msg.Version
		}
		return m, nil

	case model.ReservationsLoadedMsg:
		m.reservations = msg.Reservations
		m.resList = NewReservationsModel(msg.Reservations, m.plan)
		m.resList.ApplyPrefs(m.prefs.Reservations)
		m.error = ""
		return m, nil

	case model.ReservationSavedMsg:
		m.mode = model.ModeNav
		m.screen = model.ScreenReservations
		m.resForm = nil
		switch msg.Operation {
		case "delete":
			m.info = "Reservation deleted"
		default:
			m.info = "Reservation saved"
		}
		return m, loadReservationsCmd(m.db, m.restaurantID)

	case model.ReservationStatusChangedMsg:
		m.info = fmt.Sprintf("Status: %s", msg.Status)
		return m, loadReservationsCmd(m.db, m.restaurantID)

	case model.TablesAssignedMsg:
		m.screen = model.ScreenReservations
		m.assign = nil
		m.info = fmt.Sprintf("Assigned %d table(s)", len(msg.TableIDs))
		return m, loadReservationsCmd(m.db, m.restaurantID)

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		if m.screen == model.ScreenTableForm {
			m.screen = model.ScreenEditor
		} else if m.screen == model.ScreenReservationForm {
			m.screen = model.ScreenReservations
		}
		m.tableForm = nil
		m.resForm = nil
		return m, nil

	case tableFormSubmittedMsg:
		return m.applyTableForm(msg)

	default:
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

func (m Model) applyTableForm(msg tableFormSubmittedMsg) (tea.Model, tea.Cmd) {
	attrs := model.TableAttrs{
		Number:   msg.Number,
		SubType:  msg.SubType,
		Shape:    msg.Shape,
		Seats:    msg.Seats,
		MinSeats: msg.MinSeats,
		MaxSeats: msg.MaxSeats,
		Status:   msg.Status,
	}

	if msg.ObjectID == "" {
		m.plan.plan = m.eng.Mutator.AddTable(m.plan.plan, attrs, m.editor.ViewCenterGrid())
		m.info = "Table added"
	} else {
		patch := canvas.TablePatch{}
		if msg.Number > 0 {
			patch.Number = &attrs.Number
		}
		if msg.SubType != "" {
			patch.SubType = &attrs.SubType
		}
		if msg.Shape != "" {
			patch.Shape = &attrs.Shape
		}
		if msg.Seats > 0 {
			patch.Seats = &attrs.Seats
		}
		if msg.MinSeats > 0 {
			patch.MinSeats = &attrs.MinSeats
		}
		if msg.MaxSeats > 0 {
			patch.MaxSeats = &attrs.MaxSeats
		}
		if msg.Status != "" {
			patch.Status = &attrs.Status
		}
		m.plan.plan = m.eng.Mutator.UpdateTable(m.plan.plan, msg.ObjectID, patch)
		m.info = "Table updated"
	}

	m.mode = model.ModeNav
	m.screen = model.ScreenEditor
	m.tableForm = nil
	return m, m.flushPlan()
}

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		if m.resList != nil {
			m.resList.SetFilter(strings.TrimSpace(m.filterInput.Value()))
			m.prefs.Reservations = m.resList.Prefs()
			_ = saveUIPreferences(m.prefs)
		}
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.SetValue("")
		if m.resList != nil {
			m.resList.SetFilter("")
			m.prefs.Reservations = m.resList.Prefs()
			_ = saveUIPreferences(m.prefs)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// handleNavMode routes navigation-mode keys to the active screen.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenEditor:
		return m.handleEditorNav(msg)
	case model.ScreenReservations:
		return m.handleReservationsNav(msg)
	case model.ScreenAssign:
		return m.handleAssignNav(msg)
	}
	return m, nil
}

func (m Model) handleEditorNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panStep := m.eng.Config().GridCellSize * 2

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.eng.Dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reservations):
		m.screen = model.ScreenReservations
		if m.resList == nil {
			return m, loadReservationsCmd(m.db, m.restaurantID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.eng.View.Pan(model.CanvasPosition{Y: panStep})
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.eng.View.Pan(model.CanvasPosition{Y: -panStep})
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.eng.View.Pan(model.CanvasPosition{X: panStep})
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.eng.View.Pan(model.CanvasPosition{X: -panStep})
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		return m.nudgeSelection(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.nudgeSelection(0, 1)
	case key.Matches(msg, m.keys.MoveLeft):
		return m.nudgeSelection(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		return m.nudgeSelection(1, 0)

	case key.Matches(msg, m.keys.ZoomIn):
		m.eng.View.StepZoom(1)
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.eng.View.StepZoom(-1)
		return m, nil
	case key.Matches(msg, m.keys.ResetView):
		m.eng.View.Reset()
		return m, nil
	case key.Matches(msg, m.keys.FitView):
		m.eng.View.FitToView(m.plan.plan.Objects)
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.eng.Gesture.HandleKey(canvas.KeyEvent{Key: "a", Mod: canvas.Modifiers{Ctrl: true}})
		return m, nil
	case key.Matches(msg, m.keys.ClearSelect):
		m.eng.Gesture.HandleKey(canvas.KeyEvent{Key: "escape"})
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.eng.Gesture.HandleKey(canvas.KeyEvent{Key: "delete"})
		return m, m.flushPlan()

	case key.Matches(msg, m.keys.NextObject):
		m.selectNextTable()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		m.mode = model.ModeInsert
		m.screen = model.ScreenTableForm
		m.tableForm = NewTableFormModel()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		ids := m.eng.Selection.IDs()
		if len(ids) != 1 {
			m.info = "Select exactly one table to edit"
			return m, nil
		}
		o, ok := m.plan.plan.Object(ids[0])
		if !ok || !o.IsTable() {
			m.info = "Selected object is not a table"
			return m, nil
		}
		m.mode = model.ModeInsert
		m.screen = model.ScreenTableForm
		m.tableForm = NewTableFormModel()
		m.tableForm.LoadTable(o)
		return m, nil

	case key.Matches(msg, m.keys.Duplicate):
		m.plan.plan = m.eng.Mutator.DuplicateObjects(m.plan.plan, m.eng.Selection.IDs())
		return m, m.flushPlan()

	case key.Matches(msg, m.keys.Undo):
		if m.eng.Undo() {
			m.info = "Undid: " + m.eng.History.LastDescription()
		} else {
			m.info = "Nothing to undo"
		}
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		if m.eng.Redo() {
			m.info = "Redid: " + m.eng.History.LastDescription()
		} else {
			m.info = "Nothing to redo"
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleGrid):
		m.prefs.ShowGrid = m.editor.ToggleGrid()
		_ = saveUIPreferences(m.prefs)
		return m, nil
	}

	return m, nil
}

func (m Model) nudgeSelection(dx, dy float64) (tea.Model, tea.Cmd) {
	ids := m.eng.Selection.IDs()
	if len(ids) == 0 {
		return m, nil
	}
	m.plan.plan = m.eng.Mutator.MoveObjects(m.plan.plan, ids, model.GridCoordinate{GridX: dx, GridY: dy})
	return m, m.flushPlan()
}

// selectNextTable cycles the selection through tables in number order.
func (m *Model) selectNextTable() {
	tables := m.plan.plan.Tables()
	if len(tables) == 0 {
		return
	}
	current := ""
	if ids := m.eng.Selection.IDs(); len(ids) == 1 {
		current = ids[0]
	}
	next := tables[0].ID
	for i, t := range tables {
		if t.ID == current {
			next = tables[(i+1)%len(tables)].ID
			break
		}
	}
	m.eng.Selection.Select([]string{next}, false)
}

func (m Model) handleReservationsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.eng.Dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Editor):
		m.screen = model.ScreenEditor
		return m, nil
	}

	if m.resList == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.resList.CursorDown()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.resList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		m.mode = model.ModeInsert
		m.screen = model.ScreenReservationForm
		m.resForm = NewReservationFormModel(m.db, m.restaurantID)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		if r := m.resList.Selected(); r != nil {
			m.mode = model.ModeInsert
			m.screen = model.ScreenReservationForm
			m.resForm = NewReservationFormModel(m.db, m.restaurantID)
			m.resForm.LoadReservation(*r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		if r := m.resList.Selected(); r != nil {
			return m, deleteReservationCmd(m.db, r.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		if m.readOnly {
			m.info = "Read-only mode"
			return m, nil
		}
		if r := m.resList.Selected(); r != nil {
			next, ok := nextStatus(r.Status)
			if !ok {
				m.info = fmt.Sprintf("Reservation is already %s", r.Status)
				return m, nil
			}
			return m, updateReservationStatusCmd(m.db, r.ID, next)
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if r := m.resList.Selected(); r != nil {
			if m.readOnly {
				m.info = "Read-only mode"
				return m, nil
			}
			m.screen = model.ScreenAssign
			m.assign = NewAssignModel(*r, m.plan, m.reservations)
		}
		return m, nil

	case msg.String() == "S":
		m.info = m.resList.CycleSort()
		m.prefs.Reservations = m.resList.Prefs()
		_ = saveUIPreferences(m.prefs)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.filtering = true
		m.filterInput.SetValue(m.resList.Filter())
		m.filterInput.Focus()
		return m, nil
	}

	return m, nil
}

func (m Model) handleAssignNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.assign == nil {
		m.screen = model.ScreenReservations
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.assign.CursorDown()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.assign.CursorUp()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		_, note := m.assign.Toggle()
		m.info = note
		return m, nil
	case msg.String() == "ctrl+s":
		return m, assignTablesCmd(m.db, m.assign.ReservationID(), m.assign.TableIDs())
	case msg.String() == "esc" || key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenReservations
		m.assign = nil
		return m, nil
	}
	return m, nil
}

// handleInsertMode forwards input to the open form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.screen {
	case model.ScreenTableForm:
		if m.tableForm != nil {
			newForm, cmd := m.tableForm.Update(keyMsg)
			m.tableForm = &newForm
			return m, cmd
		}
	case model.ScreenReservationForm:
		if m.resForm != nil {
			newForm, cmd := m.resForm.Update(keyMsg)
			m.resForm = &newForm
			return m, cmd
		}
	}
	return m, nil
}

// nextStatus advances a reservation through its service lifecycle.
func nextStatus(s model.ReservationStatus) (model.ReservationStatus, bool) {
	order := []model.ReservationStatus{
		model.ResPending, model.ResConfirmed, model.ResArrived, model.ResSeated,
		model.ResOrdered, model.ResAppetizers, model.ResMainCourse, model.ResDessert,
		model.ResPayment, model.ResCompleted,
	}
	for i, st := range order {
		if st == s && i < len(order)-1 {
			return order[i+1], true
		}
	}
	return s, false
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	contentHeight := m.contentHeight()

	var content string
	var breadcrumbParts []string

	switch m.screen {
	case model.ScreenEditor:
		breadcrumbParts = []string{"Floor Plan"}
		if m.plan.loaded {
			breadcrumbParts = []string{"Floor Plan", m.plan.plan.Name}
		}
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			m.editor.View(),
			StatusBarStyle.Render(m.editor.StatusLine()),
		)
	case model.ScreenReservations:
		breadcrumbParts = []string{"Reservations"}
		listHeight := contentHeight
		if m.filtering {
			listHeight--
		}
		if m.resList != nil {
			content = m.resList.View(m.width, listHeight)
		}
		if m.filtering {
			content = lipgloss.JoinVertical(
				lipgloss.Left,
				LabelStyle.Render("Filter: ")+m.filterInput.View(),
				content,
			)
		}
	case model.ScreenAssign:
		breadcrumbParts = []string{"Reservations", "Assign"}
		if m.assign != nil {
			content = m.assign.View(m.width, contentHeight)
		}
	case model.ScreenTableForm:
		breadcrumbParts = []string{"Floor Plan", "Table"}
		if m.tableForm != nil {
			content = m.tableForm.View(m.width, contentHeight)
		}
	case model.ScreenReservationForm:
		breadcrumbParts = []string{"Reservations", "Form"}
		if m.resForm != nil {
			content = m.resForm.View(m.width, contentHeight)
		}
	}

	header := m.renderHeader(breadcrumbParts)
	footer := RenderHelp(m.screen, m.mode, m.width)

	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight)

	sections := []string{header}
	if m.error != "" {
		sections = append(sections, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		sections = append(sections, SuccessStyle.Width(m.width).Render(m.info))
	}
	sections = append(sections, contentStyle.Render(content), footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(breadcrumbParts []string) string {
	title := HeaderStyle.Render("tablo")
	if m.readOnly {
		title += BreadcrumbStyle.Render(" (read-only)")
	}

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	now := time.Now()
	right := BreadcrumbStyle.Render(now.Format("Mon 02 Jan")) + "  "

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return TitleStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}
