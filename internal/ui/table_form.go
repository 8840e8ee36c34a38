package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tablo/internal/model"
)

// tableFormSubmittedMsg carries a validated table form back to the app, which
// applies it through the mutation engine on the update loop.
type tableFormSubmittedMsg struct {
	ObjectID string // empty for a new table
	Number   int
	SubType  string
	Shape    model.TableShape
	Seats    int
	MinSeats int
	MaxSeats int
	Status   model.TableStatus
}

// TableFormModel is the add/edit form for a table object.
type TableFormModel struct {
	objectID     string
	focusedField int
	inputs       []textinput.Model
	error        string
}

const (
	tfNumber = iota
	tfSubType
	tfShape
	tfSeats
	tfMinSeats
	tfMaxSeats
	tfStatus
	tfFieldCount
)

// NewTableFormModel creates a blank table form.
func NewTableFormModel() *TableFormModel {
	inputs := make([]textinput.Model, tfFieldCount)

	inputs[tfNumber] = textinput.New()
	inputs[tfNumber].Placeholder = "Auto"
	inputs[tfNumber].CharLimit = 4
	inputs[tfNumber].Focus()

	inputs[tfSubType] = textinput.New()
	inputs[tfSubType].Placeholder = "standard, booth, bar, outdoor"
	inputs[tfSubType].CharLimit = 20

	inputs[tfShape] = textinput.New()
	inputs[tfShape].Placeholder = "rectangle, square, round"
	inputs[tfShape].CharLimit = 12

	inputs[tfSeats] = textinput.New()
	inputs[tfSeats].Placeholder = "4"
	inputs[tfSeats].CharLimit = 3

	inputs[tfMinSeats] = textinput.New()
	inputs[tfMinSeats].Placeholder = "2"
	inputs[tfMinSeats].CharLimit = 3

	inputs[tfMaxSeats] = textinput.New()
	inputs[tfMaxSeats].Placeholder = "8"
	inputs[tfMaxSeats].CharLimit = 3

	inputs[tfStatus] = textinput.New()
	inputs[tfStatus].Placeholder = "available, occupied, reserved, out_of_order"
	inputs[tfStatus].CharLimit = 16

	return &TableFormModel{inputs: inputs}
}

// LoadTable pre-fills the form from an existing table object.
func (m *TableFormModel) LoadTable(o model.RestaurantObject) {
	if !o.IsTable() {
		return
	}
	m.objectID = o.ID
	m.inputs[tfNumber].SetValue(strconv.Itoa(o.Table.Number))
	m.inputs[tfSubType].SetValue(o.Table.SubType)
	m.inputs[tfShape].SetValue(string(o.Table.Shape))
	m.inputs[tfSeats].SetValue(strconv.Itoa(o.Table.Seats))
	m.inputs[tfMinSeats].SetValue(strconv.Itoa(o.Table.MinSeats))
	m.inputs[tfMaxSeats].SetValue(strconv.Itoa(o.Table.MaxSeats))
	m.inputs[tfStatus].SetValue(string(o.Table.Status))
}

// Update handles input.
func (m TableFormModel) Update(msg tea.KeyMsg) (TableFormModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "ctrl+s":
		result, err := m.validate()
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return result }
	case "tab":
		m.nextField()
		return m, nil
	case "shift+tab":
		m.prevField()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	return m, cmd
}

func (m *TableFormModel) validate() (tableFormSubmittedMsg, error) {
	out := tableFormSubmittedMsg{ObjectID: m.objectID}

	intField := func(idx int, label string) (int, error) {
		raw := strings.TrimSpace(m.inputs[idx].Value())
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s must be a non-negative number", label)
		}
		return n, nil
	}

	var err error
	if out.Number, err = intField(tfNumber, "table number"); err != nil {
		return out, err
	}
	if out.Seats, err = intField(tfSeats, "seats"); err != nil {
		return out, err
	}
	if out.MinSeats, err = intField(tfMinSeats, "min seats"); err != nil {
		return out, err
	}
	if out.MaxSeats, err = intField(tfMaxSeats, "max seats"); err != nil {
		return out, err
	}
	if out.MinSeats > 0 && out.MaxSeats > 0 && out.MinSeats > out.MaxSeats {
		return out, fmt.Errorf("min seats cannot exceed max seats")
	}

	out.SubType = strings.TrimSpace(m.inputs[tfSubType].Value())

	shape := strings.TrimSpace(m.inputs[tfShape].Value())
	switch model.TableShape(shape) {
	case "", model.ShapeRectangle, model.ShapeSquare, model.ShapeRound:
		out.Shape = model.TableShape(shape)
	default:
		return out, fmt.Errorf("shape must be rectangle, square, or round")
	}

	status := strings.TrimSpace(m.inputs[tfStatus].Value())
	switch model.TableStatus(status) {
	case "", model.TableAvailable, model.TableOccupied, model.TableReserved, model.TableOutOfOrder:
		out.Status = model.TableStatus(status)
	default:
		return out, fmt.Errorf("status must be available, occupied, reserved, or out_of_order")
	}

	return out, nil
}

// View renders the form.
func (m *TableFormModel) View(width, height int) string {
	title := "New table"
	if m.objectID != "" {
		title = "Edit table"
	}

	fields := []string{LabelStyle.Render(title)}
	fields = append(fields, renderFormField("Number", m.inputs[tfNumber], m.focusedField == tfNumber))
	fields = append(fields, renderFormField("Type", m.inputs[tfSubType], m.focusedField == tfSubType))
	fields = append(fields, renderFormField("Shape", m.inputs[tfShape], m.focusedField == tfShape))
	fields = append(fields, renderFormField("Seats", m.inputs[tfSeats], m.focusedField == tfSeats))
	fields = append(fields, renderFormField("Min seats", m.inputs[tfMinSeats], m.focusedField == tfMinSeats))
	fields = append(fields, renderFormField("Max seats", m.inputs[tfMaxSeats], m.focusedField == tfMaxSeats))
	fields = append(fields, renderFormField("Status", m.inputs[tfStatus], m.focusedField == tfStatus))

	if m.error != "" {
		fields = append(fields, "", ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(fields, "\n\n"))
}

func (m *TableFormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *TableFormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}
