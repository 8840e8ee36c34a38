package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tablo/internal/canvas"
	"tablo/internal/model"
	"tablo/internal/util"
)

// EditorModel renders the floor plan through the engine's camera and feeds
// terminal mouse events into the gesture controller. One terminal cell is
// half a grid cell wide and one grid cell tall at zoom 1, which keeps table
// footprints roughly square on screen.
type EditorModel struct {
	eng      *canvas.Engine
	plan     *planState
	width    int
	height   int
	showGrid bool

	// mouse drag of selected objects, in whole grid steps
	dragging bool
	dragLast model.GridCoordinate
}

// NewEditorModel creates the editor view bound to the shared plan state.
func NewEditorModel(eng *canvas.Engine, plan *planState, showGrid bool) *EditorModel {
	return &EditorModel{eng: eng, plan: plan, showGrid: showGrid}
}

func (m *EditorModel) cellPx() (w, h float64) {
	cfg := m.eng.Config()
	return cfg.GridCellSize / 2, cfg.GridCellSize
}

// SetSize tells the engine the element size in pixels.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	pw, ph := m.cellPx()
	m.eng.View.SetSize(float64(width)*pw, float64(height)*ph)
}

// cellToElement maps a terminal cell to element pixel space.
func (m *EditorModel) cellToElement(col, row int) model.CanvasPosition {
	pw, ph := m.cellPx()
	return model.CanvasPosition{
		X: (float64(col) + 0.5) * pw,
		Y: (float64(row) + 0.5) * ph,
	}
}

// elementToContent inverts the render mapping into canvas pixel space.
func (m *EditorModel) elementToContent(p model.CanvasPosition) model.CanvasPosition {
	cfg := m.eng.Config()
	t := m.eng.View.Transform()
	w, h := m.eng.View.Size()
	zoom := t.Zoom
	if zoom <= 0 {
		zoom = cfg.DefaultZoom
	}
	return model.CanvasPosition{
		X: (p.X - w/2 + cfg.CanvasCenter.X - t.Position.X) / zoom,
		Y: (p.Y - h/2 + cfg.CanvasCenter.Y - t.Position.Y) / zoom,
	}
}

// contentToCell maps canvas pixel space to a terminal cell.
func (m *EditorModel) contentToCell(p model.CanvasPosition) (col, row float64) {
	cfg := m.eng.Config()
	t := m.eng.View.Transform()
	w, h := m.eng.View.Size()
	pw, ph := m.cellPx()
	sx := p.X*t.Zoom + t.Position.X - cfg.CanvasCenter.X + w/2
	sy := p.Y*t.Zoom + t.Position.Y - cfg.CanvasCenter.Y + h/2
	return sx / pw, sy / ph
}

// hitTest returns the topmost object containing the content-space point.
func (m *EditorModel) hitTest(content model.CanvasPosition) string {
	cfg := m.eng.Config()
	g := cfg.PixelToGrid(content)

	bestID := ""
	bestZ := math.Inf(-1)
	for _, o := range m.plan.plan.Objects {
		halfW := o.Size.Width / 2
		halfH := o.Size.Height / 2
		if math.Abs(g.GridX-o.Position.GridX) > halfW || math.Abs(g.GridY-o.Position.GridY) > halfH {
			continue
		}
		if float64(o.ZIndex) >= bestZ {
			bestZ = float64(o.ZIndex)
			bestID = o.ID
		}
	}
	return bestID
}

// HandleMouse routes a mouse event, with coordinates already relative to the
// canvas area, into object dragging or the gesture controller.
func (m *EditorModel) HandleMouse(msg tea.MouseMsg) {
	pos := m.cellToElement(msg.X, msg.Y)
	ev := canvas.PointerEvent{
		Pos: pos,
		Mod: canvas.Modifiers{Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift},
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.eng.Gesture.Wheel(-100, pos)
		return
	case tea.MouseButtonWheelDown:
		m.eng.Gesture.Wheel(100, pos)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		content := m.elementToContent(pos)
		if id := m.hitTest(content); id != "" && !ev.Mod.Primary() {
			m.eng.Gesture.TapObject(id, ev)
			if !m.eng.ReadOnly() {
				m.dragging = true
				m.dragLast = m.eng.Config().PixelToGrid(content)
			}
			return
		}
		m.eng.Gesture.PointerDown(ev)

	case tea.MouseActionMotion:
		if m.dragging {
			g := m.eng.Config().PixelToGrid(m.elementToContent(pos))
			delta := model.GridCoordinate{
				GridX: math.Round(g.GridX - m.dragLast.GridX),
				GridY: math.Round(g.GridY - m.dragLast.GridY),
			}
			if delta.GridX != 0 || delta.GridY != 0 {
				m.plan.plan = m.eng.Mutator.MoveObjects(m.plan.plan, m.eng.Selection.IDs(), delta)
				m.dragLast = m.dragLast.Add(delta)
			}
			return
		}
		m.eng.Gesture.PointerMove(ev)

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			return
		}
		m.eng.Gesture.PointerUp(ev)
	}
}

// ObjectsInBox resolves a selection box, given in element pixel space, to
// the ids of objects whose center falls inside it.
func (m *EditorModel) ObjectsInBox(box canvas.Bounds) []string {
	cfg := m.eng.Config()
	var ids []string
	for _, o := range m.plan.plan.Objects {
		center := cfg.GridToPixel(o.Position)
		col, row := m.contentToCell(center)
		pw, ph := m.cellPx()
		p := model.CanvasPosition{X: col * pw, Y: row * ph}
		if box.Contains(p) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// ViewCenterGrid returns the grid coordinate at the middle of the viewport,
// where newly added tables land.
func (m *EditorModel) ViewCenterGrid() model.GridCoordinate {
	w, h := m.eng.View.Size()
	g := m.eng.Config().PixelToGrid(m.elementToContent(model.CanvasPosition{X: w / 2, Y: h / 2}))
	return model.GridCoordinate{GridX: math.Round(g.GridX), GridY: math.Round(g.GridY)}
}

// ToggleGrid flips the grid dot overlay and returns the new state.
func (m *EditorModel) ToggleGrid() bool {
	m.showGrid = !m.showGrid
	return m.showGrid
}

type screenCell struct {
	r     rune
	style *lipgloss.Style
}

// View renders the canvas area.
func (m *EditorModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	grid := make([][]screenCell, m.height)
	for y := range grid {
		grid[y] = make([]screenCell, m.width)
		for x := range grid[y] {
			grid[y][x] = screenCell{r: ' '}
		}
	}

	if m.showGrid {
		m.drawGridDots(grid)
	}

	objects := append([]model.RestaurantObject(nil), m.plan.plan.Objects...)
	sort.SliceStable(objects, func(i, j int) bool { return objects[i].ZIndex < objects[j].ZIndex })
	for _, o := range objects {
		m.drawObject(grid, o)
	}

	if box, ok := m.eng.Gesture.SelectionBox(); ok {
		m.drawSelectionBox(grid, box)
	}

	return renderGrid(grid)
}

func (m *EditorModel) drawGridDots(grid [][]screenCell) {
	t := m.eng.View.Transform()
	if t.Zoom < 0.5 {
		return
	}
	cfg := m.eng.Config()
	// Walk the visible grid range instead of every world cell.
	topLeft := cfg.PixelToGrid(m.elementToContent(m.cellToElement(0, 0)))
	botRight := cfg.PixelToGrid(m.elementToContent(m.cellToElement(m.width-1, m.height-1)))
	for gy := math.Floor(topLeft.GridY); gy <= math.Ceil(botRight.GridY); gy++ {
		for gx := math.Floor(topLeft.GridX); gx <= math.Ceil(botRight.GridX); gx++ {
			p := cfg.GridToPixel(model.GridCoordinate{GridX: gx, GridY: gy})
			col, row := m.contentToCell(p)
			x, y := int(math.Round(col)), int(math.Round(row))
			if x >= 0 && x < m.width && y >= 0 && y < m.height {
				grid[y][x] = screenCell{r: '·', style: &GridDotStyle}
			}
		}
	}
}

func (m *EditorModel) drawObject(grid [][]screenCell, o model.RestaurantObject) {
	cfg := m.eng.Config()
	topLeft := cfg.GridToPixel(model.GridCoordinate{
		GridX: o.Position.GridX - o.Size.Width/2,
		GridY: o.Position.GridY - o.Size.Height/2,
	})
	botRight := cfg.GridToPixel(model.GridCoordinate{
		GridX: o.Position.GridX + o.Size.Width/2,
		GridY: o.Position.GridY + o.Size.Height/2,
	})
	c0f, r0f := m.contentToCell(topLeft)
	c1f, r1f := m.contentToCell(botRight)
	c0, r0 := int(math.Round(c0f)), int(math.Round(r0f))
	c1, r1 := int(math.Round(c1f))-1, int(math.Round(r1f))-1
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	if c1 < 0 || r1 < 0 || c0 >= m.width || r0 >= m.height {
		return
	}

	style := m.objectStyle(o)
	fill := m.objectFill(o)
	for y := r0; y <= r1; y++ {
		if y < 0 || y >= m.height {
			continue
		}
		for x := c0; x <= c1; x++ {
			if x < 0 || x >= m.width {
				continue
			}
			grid[y][x] = screenCell{r: fill, style: style}
		}
	}

	if o.IsTable() {
		label := fmt.Sprintf("T%d %s", o.Table.Number, util.FormatSeats(o.Table.MinSeats, o.Table.MaxSeats))
		if c1-c0+1 < len(label) {
			label = fmt.Sprintf("T%d", o.Table.Number)
		}
		ly := (r0 + r1) / 2
		lx := c0 + (c1-c0+1-len(label))/2
		if ly >= 0 && ly < m.height {
			for i, r := range label {
				x := lx + i
				if x >= c0 && x <= c1 && x >= 0 && x < m.width {
					grid[ly][x] = screenCell{r: r, style: style}
				}
			}
		}
	}
}

func (m *EditorModel) objectStyle(o model.RestaurantObject) *lipgloss.Style {
	if m.eng.Selection.Contains(o.ID) {
		return &SelectedObjectStyle
	}
	switch o.Kind {
	case model.KindTable:
		if o.Table == nil {
			return &TableOutOfOrderStyle
		}
		switch o.Table.Status {
		case model.TableOccupied:
			return &TableOccupiedStyle
		case model.TableReserved:
			return &TableReservedStyle
		case model.TableOutOfOrder:
			return &TableOutOfOrderStyle
		default:
			return &TableAvailableStyle
		}
	case model.KindWall:
		return &WallStyle
	case model.KindDoor:
		return &DoorStyle
	case model.KindChair, model.KindDecoration:
		return &GridDotStyle
	default:
		return &GridDotStyle
	}
}

func (m *EditorModel) objectFill(o model.RestaurantObject) rune {
	switch o.Kind {
	case model.KindWall:
		return '▒'
	case model.KindDoor:
		return '▣'
	case model.KindChair:
		return 'ᑎ'
	case model.KindDecoration:
		return '✿'
	default:
		if o.IsTable() && o.Table.Shape == model.ShapeRound {
			return '▢'
		}
		return ' '
	}
}

func (m *EditorModel) drawSelectionBox(grid [][]screenCell, box canvas.Bounds) {
	pw, ph := m.cellPx()
	c0 := int(math.Floor(box.MinX / pw))
	c1 := int(math.Ceil(box.MaxX/pw)) - 1
	r0 := int(math.Floor(box.MinY / ph))
	r1 := int(math.Ceil(box.MaxY/ph)) - 1
	for y := r0; y <= r1; y++ {
		if y < 0 || y >= m.height {
			continue
		}
		for x := c0; x <= c1; x++ {
			if x < 0 || x >= m.width {
				continue
			}
			if y == r0 || y == r1 || x == c0 || x == c1 {
				grid[y][x] = screenCell{r: '┄', style: &SelectionBoxStyle}
			}
		}
	}
}

// renderGrid joins cells into styled lines, grouping runs that share a style
// so lipgloss is invoked per run, not per cell.
func renderGrid(grid [][]screenCell) string {
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, c := range row {
			if c.style != runStyle {
				flush()
				runStyle = c.style
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return b.String()
}

// StatusLine summarizes the camera and selection for the footer.
func (m *EditorModel) StatusLine() string {
	t := m.eng.View.Transform()
	parts := []string{
		fmt.Sprintf("zoom %s", util.FormatZoom(t.Zoom)),
		fmt.Sprintf("pan %.0f,%.0f", t.Position.X, t.Position.Y),
	}
	if n := m.eng.Selection.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if state := m.eng.Gesture.State(); state != "idle" {
		parts = append(parts, state)
	}
	return strings.Join(parts, " · ")
}
