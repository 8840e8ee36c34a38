package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tablo/internal/model"
	"tablo/internal/util"
)

type reservationColumn struct {
	key   string
	label string
	width int
}

// ReservationsModel is the reservation list screen: sortable, filterable by
// guest name, cursor driven.
type ReservationsModel struct {
	all    []model.Reservation
	rows   []model.Reservation
	plan   *planState
	cursor int
	offset int

	columns  []reservationColumn
	sortKey  string
	sortDesc bool
	filter   string
}

// NewReservationsModel creates the list from freshly loaded reservations.
func NewReservationsModel(reservations []model.Reservation, plan *planState) *ReservationsModel {
	m := &ReservationsModel{
		all:  append([]model.Reservation(nil), reservations...),
		plan: plan,
		columns: []reservationColumn{
			{key: "time", label: "time", width: 18},
			{key: "guest", label: "guest", width: 20},
			{key: "party", label: "party", width: 6},
			{key: "tables", label: "tables", width: 16},
			{key: "status", label: "status", width: 12},
		},
		sortKey: "time",
	}
	m.rebuild()
	return m
}

// ApplyPrefs restores persisted sort and filter state.
func (m *ReservationsModel) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		m.sortKey = prefs.SortKey
		m.sortDesc = prefs.SortDesc
	}
	m.filter = prefs.Filter
	m.rebuild()
}

// Prefs captures the current sort and filter state for persistence.
func (m *ReservationsModel) Prefs() TablePrefs {
	return TablePrefs{SortKey: m.sortKey, SortDesc: m.sortDesc, Filter: m.filter}
}

// SetFilter applies a guest-name substring filter.
func (m *ReservationsModel) SetFilter(filter string) {
	m.filter = filter
	m.rebuild()
}

// Filter returns the active filter text.
func (m *ReservationsModel) Filter() string {
	return m.filter
}

// CycleSort advances sort through the columns, toggling direction on repeat.
func (m *ReservationsModel) CycleSort() string {
	order := []string{"time", "guest", "party", "status"}
	if !m.sortDesc {
		m.sortDesc = true
		m.rebuild()
		return fmt.Sprintf("Sorted %s descending", m.sortKey)
	}
	for i, key := range order {
		if key == m.sortKey {
			m.sortKey = order[(i+1)%len(order)]
			break
		}
	}
	m.sortDesc = false
	m.rebuild()
	return fmt.Sprintf("Sorted %s ascending", m.sortKey)
}

func (m *ReservationsModel) rebuild() {
	rows := append([]model.Reservation(nil), m.all...)

	if m.filter != "" {
		target := strings.ToLower(strings.TrimSpace(m.filter))
		filtered := rows[:0]
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.GuestName), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	key := m.sortKey
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less, equal bool
		switch key {
		case "guest":
			la, lb := strings.ToLower(a.GuestName), strings.ToLower(b.GuestName)
			less, equal = la < lb, la == lb
		case "party":
			less, equal = a.PartySize < b.PartySize, a.PartySize == b.PartySize
		case "status":
			less, equal = a.Status < b.Status, a.Status == b.Status
		default:
			// unscheduled entries sink to the bottom
			switch {
			case a.StartsAt.IsZero() && b.StartsAt.IsZero():
				equal = true
			case a.StartsAt.IsZero():
				less = false
			case b.StartsAt.IsZero():
				less = true
			default:
				less, equal = a.StartsAt.Before(b.StartsAt), a.StartsAt.Equal(b.StartsAt)
			}
		}
		if equal {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if m.sortDesc {
			return !less
		}
		return less
	})

	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// Selected returns the reservation under the cursor.
func (m *ReservationsModel) Selected() *model.Reservation {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// CursorDown moves the cursor down.
func (m *ReservationsModel) CursorDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+10 {
			m.offset++
		}
	}
}

// CursorUp moves the cursor up.
func (m *ReservationsModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *ReservationsModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *ReservationsModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		if m.cursor >= 10 {
			m.offset = m.cursor - 9
		}
	}
}

// tableLabel turns assigned table ids into display numbers like "T1,T7".
func (m *ReservationsModel) tableLabel(r model.Reservation) string {
	if len(r.TableIDs) == 0 {
		return "—"
	}
	var parts []string
	for _, id := range r.TableIDs {
		if o, ok := m.plan.plan.Object(id); ok && o.IsTable() {
			parts = append(parts, fmt.Sprintf("T%d", o.Table.Number))
			continue
		}
		parts = append(parts, util.TruncateString(id, 8))
	}
	return strings.Join(parts, ",")
}

func statusCell(status model.ReservationStatus) string {
	s := string(status)
	switch status {
	case model.ResSeated, model.ResArrived, model.ResOrdered, model.ResAppetizers, model.ResMainCourse, model.ResDessert, model.ResPayment:
		return lipgloss.NewStyle().Foreground(ColorGreen).Render(s)
	case model.ResCancelled, model.ResNoShow:
		return lipgloss.NewStyle().Foreground(ColorRed).Render(s)
	case model.ResCompleted:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(s)
	default:
		return lipgloss.NewStyle().Foreground(ColorYellow).Render(s)
	}
}

// View renders the reservation list.
func (m *ReservationsModel) View(width, height int) string {
	if len(m.rows) == 0 {
		emptyMsg := `    No reservations yet.
    Press  a  to add one!`
		if m.filter != "" {
			emptyMsg = fmt.Sprintf("No reservations match %q", m.filter)
		}
		return EmptyStateStyle.Width(width).Height(height).Render(emptyMsg)
	}

	headers := make([]string, 0, len(m.columns))
	widths := make([]int, 0, len(m.columns))
	for _, col := range m.columns {
		label := strings.ToUpper(col.label)
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		headers = append(headers, label)
		widths = append(widths, col.width+2)
	}

	var b strings.Builder
	b.WriteString(renderRow(headers, widths, TableHeaderStyle))
	b.WriteByte('\n')

	visibleHeight := height - 3
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		r := m.rows[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := []string{
			util.FormatDateHuman(r.StartsAt) + " " + util.FormatTimeRange(r.StartsAt, r.DurationMin),
			util.TruncateString(r.GuestName, m.columns[1].width),
			util.FormatParty(r.PartySize),
			util.TruncateString(m.tableLabel(r), m.columns[3].width),
			statusCell(r.Status),
		}
		b.WriteString(renderRow(cells, widths, style))
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("Total reservations: %d  ·  row %d/%d  ·  sort %s", len(m.rows), m.cursor+1, len(m.rows), m.sortKey)
	if m.filter != "" {
		status += fmt.Sprintf("  ·  filter %q (%d/%d)", m.filter, len(m.rows), len(m.all))
	}

	content := strings.TrimRight(b.String(), "\n")
	bar := StatusBarStyle.Render(status)
	spacerHeight := height - lipgloss.Height(content) - lipgloss.Height(bar)
	if spacerHeight < 0 {
		spacerHeight = 0
	}
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, bar)
}

// renderRow lays out cells at fixed widths under one style.
func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := widths[i]
		pad := w - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = " " + cell + strings.Repeat(" ", pad)
	}
	return style.Render(strings.Join(parts, ""))
}
