package ui

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tablo/internal/model"
)

// ReservationFormModel is the add/edit form for a reservation.
type ReservationFormModel struct {
	db            *sql.DB
	restaurantID  string
	reservationID string
	existing      model.Reservation
	focusedField  int
	inputs        []textinput.Model
	error         string
}

const (
	rfGuest = iota
	rfParty
	rfDate
	rfTime
	rfDuration
	rfStatus
	rfFieldCount
)

// NewReservationFormModel creates a blank reservation form.
func NewReservationFormModel(database *sql.DB, restaurantID string) *ReservationFormModel {
	inputs := make([]textinput.Model, rfFieldCount)

	inputs[rfGuest] = textinput.New()
	inputs[rfGuest].Placeholder = "Guest name"
	inputs[rfGuest].CharLimit = 100
	inputs[rfGuest].Focus()

	inputs[rfParty] = textinput.New()
	inputs[rfParty].Placeholder = "2"
	inputs[rfParty].CharLimit = 3

	inputs[rfDate] = textinput.New()
	inputs[rfDate].Placeholder = "YYYY-MM-DD (blank = unscheduled)"
	inputs[rfDate].CharLimit = 10

	inputs[rfTime] = textinput.New()
	inputs[rfTime].Placeholder = "19:00"
	inputs[rfTime].CharLimit = 5

	inputs[rfDuration] = textinput.New()
	inputs[rfDuration].Placeholder = "120"
	inputs[rfDuration].CharLimit = 4

	inputs[rfStatus] = textinput.New()
	inputs[rfStatus].Placeholder = "pending"
	inputs[rfStatus].CharLimit = 16

	return &ReservationFormModel{
		db:           database,
		restaurantID: restaurantID,
		inputs:       inputs,
	}
}

// LoadReservation pre-fills the form for editing.
func (m *ReservationFormModel) LoadReservation(r model.Reservation) {
	m.reservationID = r.ID
	m.existing = r
	m.inputs[rfGuest].SetValue(r.GuestName)
	m.inputs[rfParty].SetValue(strconv.Itoa(r.PartySize))
	if !r.StartsAt.IsZero() {
		m.inputs[rfDate].SetValue(r.StartsAt.Format("2006-01-02"))
		m.inputs[rfTime].SetValue(r.StartsAt.Format("15:04"))
	}
	m.inputs[rfDuration].SetValue(strconv.Itoa(r.DurationMin))
	m.inputs[rfStatus].SetValue(string(r.Status))
}

// Update handles input.
func (m ReservationFormModel) Update(msg tea.KeyMsg) (ReservationFormModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "ctrl+s":
		r, err := m.validate()
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		return m, m.save(r)
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

func (m *ReservationFormModel) validate() (model.Reservation, error) {
	r := model.Reservation{
		ID:           m.reservationID,
		RestaurantID: m.restaurantID,
		TableIDs:     m.existing.TableIDs,
		CreatedAt:    m.existing.CreatedAt,
	}

	r.GuestName = strings.TrimSpace(m.inputs[rfGuest].Value())
	if r.GuestName == "" {
		return r, fmt.Errorf("guest name is required")
	}

	party := strings.TrimSpace(m.inputs[rfParty].Value())
	n, err := strconv.Atoi(party)
	if err != nil || n <= 0 {
		return r, fmt.Errorf("party size must be a positive number")
	}
	r.PartySize = n

	date := strings.TrimSpace(m.inputs[rfDate].Value())
	clock := strings.TrimSpace(m.inputs[rfTime].Value())
	if date != "" {
		if clock == "" {
			clock = "19:00"
		}
		t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
		if err != nil {
			return r, fmt.Errorf("date must be YYYY-MM-DD and time HH:MM")
		}
		r.StartsAt = t
	}

	duration := strings.TrimSpace(m.inputs[rfDuration].Value())
	if duration != "" {
		d, err := strconv.Atoi(duration)
		if err != nil || d <= 0 {
			return r, fmt.Errorf("duration must be a positive number of minutes")
		}
		r.DurationMin = d
	}

	status := model.ReservationStatus(strings.TrimSpace(m.inputs[rfStatus].Value()))
	switch status {
	case "", model.ResPending, model.ResConfirmed, model.ResArrived, model.ResSeated,
		model.ResOrdered, model.ResAppetizers, model.ResMainCourse, model.ResDessert,
		model.ResPayment, model.ResCompleted, model.ResCancelled, model.ResNoShow:
		r.Status = status
	default:
		return r, fmt.Errorf("unknown status %q", status)
	}

	return r, nil
}

func (m *ReservationFormModel) save(r model.Reservation) tea.Cmd {
	if r.ID != "" {
		return updateReservationCmd(m.db, r)
	}
	r.ID = uuid.NewString()
	return insertReservationCmd(m.db, r)
}

// View renders the form.
func (m *ReservationFormModel) View(width, height int) string {
	title := "New reservation"
	if m.reservationID != "" {
		title = "Edit reservation"
	}

	fields := []string{LabelStyle.Render(title)}
	fields = append(fields, renderFormField("Guest *", m.inputs[rfGuest], m.focusedField == rfGuest))
	fields = append(fields, renderFormField("Party size *", m.inputs[rfParty], m.focusedField == rfParty))
	fields = append(fields, renderFormField("Date", m.inputs[rfDate], m.focusedField == rfDate))
	fields = append(fields, renderFormField("Time", m.inputs[rfTime], m.focusedField == rfTime))
	fields = append(fields, renderFormField("Turn time (min)", m.inputs[rfDuration], m.focusedField == rfDuration))
	fields = append(fields, renderFormField("Status", m.inputs[rfStatus], m.focusedField == rfStatus))

	if m.error != "" {
		fields = append(fields, "", ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(fields, "\n\n"))
}

func (m *ReservationFormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *ReservationFormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}
