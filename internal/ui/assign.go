package ui

import (
	"fmt"
	"sort"
	"strings"

	"tablo/internal/booking"
	"tablo/internal/model"
	"tablo/internal/util"
)

// AssignModel is the table assignment screen for one reservation: every table
// of the plan classified against the other bookings, with enter toggling the
// assignment.
type AssignModel struct {
	reservation model.Reservation
	plan        *planState
	tables      []model.RestaurantObject
	classes     map[string]booking.TableClassification
	assigned    map[string]bool
	cursor      int
}

// NewAssignModel builds the screen for the given reservation against the
// current reservation list.
func NewAssignModel(r model.Reservation, plan *planState, reservations []model.Reservation) *AssignModel {
	m := &AssignModel{
		reservation: r,
		plan:        plan,
		assigned:    make(map[string]bool, len(r.TableIDs)),
	}
	for _, id := range r.TableIDs {
		m.assigned[id] = true
	}

	m.tables = plan.plan.Tables()
	sort.SliceStable(m.tables, func(i, j int) bool {
		return m.tables[i].Table.Number < m.tables[j].Table.Number
	})

	m.classes = booking.ClassifyTables(m.tables, reservations, booking.Candidate{
		ReservationID: r.ID,
		StartsAt:      r.StartsAt,
		TurnTimeMin:   r.DurationMin,
		PartySize:     r.PartySize,
	})
	return m
}

// CursorDown moves the cursor down.
func (m *AssignModel) CursorDown() {
	if m.cursor < len(m.tables)-1 {
		m.cursor++
	}
}

// CursorUp moves the cursor up.
func (m *AssignModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Toggle flips the assignment of the table under the cursor. Conflicting and
// occupied tables cannot be assigned; already-assigned ones can always be
// released. Returns false with a reason when the toggle is refused.
func (m *AssignModel) Toggle() (bool, string) {
	if len(m.tables) == 0 {
		return false, "No tables on the floor plan"
	}
	t := m.tables[m.cursor]
	if m.assigned[t.ID] {
		delete(m.assigned, t.ID)
		return true, fmt.Sprintf("Released table T%d", t.Table.Number)
	}
	c := m.classes[t.ID]
	if c.CurrentlyOccupied {
		return false, fmt.Sprintf("Table T%d is currently occupied", t.Table.Number)
	}
	if c.Conflicting {
		return false, fmt.Sprintf("Table T%d has a conflicting reservation", t.Table.Number)
	}
	m.assigned[t.ID] = true
	if !c.Suitable {
		return true, fmt.Sprintf("Assigned table T%d (seats fewer than party of %d)", t.Table.Number, m.reservation.PartySize)
	}
	return true, fmt.Sprintf("Assigned table T%d", t.Table.Number)
}

// TableIDs returns the chosen assignment in stable table-number order.
func (m *AssignModel) TableIDs() []string {
	var ids []string
	for _, t := range m.tables {
		if m.assigned[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// ReservationID returns the reservation being assigned.
func (m *AssignModel) ReservationID() string {
	return m.reservation.ID
}

// View renders the classified table list with a legend.
func (m *AssignModel) View(width, height int) string {
	r := m.reservation
	title := fmt.Sprintf("Assign tables · %s %s · %s %s",
		r.GuestName, util.FormatParty(r.PartySize),
		util.FormatDateHuman(r.StartsAt), util.FormatTimeRange(r.StartsAt, r.DurationMin))

	var b strings.Builder
	b.WriteString(LabelStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.tables) == 0 {
		b.WriteString(EmptyStateStyle.Render("No tables on the floor plan. Press p to open the editor."))
		return PanelStyle.Width(width - 4).Render(b.String())
	}

	for i, t := range m.tables {
		c := m.classes[t.ID]

		mark := "[ ]"
		if m.assigned[t.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s T%-3d %-10s seats %-5s",
			mark, t.Table.Number, t.Table.SubType, util.FormatSeats(t.Table.MinSeats, t.Table.MaxSeats))

		var note string
		style := NormalRowStyle
		switch {
		case c.CurrentlyOccupied:
			note = "occupied"
			style = ConflictStyle
		case c.Conflicting:
			note = "time conflict"
			style = ConflictStyle
		case !c.Suitable:
			note = "too small"
			style = UnsuitableStyle
		}
		if note != "" {
			line += "  · " + note
		}

		rendered := style.Render(line)
		if i == m.cursor {
			rendered = SelectedRowStyle.Render(line)
		}
		b.WriteString(rendered)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	legend := strings.Join([]string{
		ConflictStyle.Render("red") + HelpDescStyle.Render(" blocked (occupied or overlapping)"),
		UnsuitableStyle.Render("yellow") + HelpDescStyle.Render(" too small, still selectable"),
	}, "   ")
	b.WriteString(legend)

	return PanelStyle.Width(width - 4).Render(b.String())
}
