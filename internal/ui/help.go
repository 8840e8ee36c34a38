package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tablo/internal/model"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderFormHelp(width)
	}

	switch screen {
	case model.ScreenEditor:
		return renderEditorHelp(width)
	case model.ScreenReservations:
		return renderReservationsHelp(width)
	case model.ScreenAssign:
		return renderAssignHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderEditorHelp(width int) string {
	keys := []string{
		helpKey("drag", "pan"),
		helpKey("wheel", "zoom"),
		helpKey("click", "select"),
		helpKey("a", "add table"),
		helpKey("e", "edit"),
		helpKey("d", "delete"),
		helpKey("y", "duplicate"),
		helpKey("u/ctrl+r", "undo/redo"),
		helpKey("f", "fit"),
		helpKey("r", "reservations"),
	}
	return renderHelpLine(keys, width)
}

func renderReservationsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("a", "add"),
		helpKey("e", "edit"),
		helpKey("d", "delete"),
		helpKey("s", "advance status"),
		helpKey("enter", "assign tables"),
		helpKey("S", "sort"),
		helpKey("/", "filter"),
		helpKey("p", "floor plan"),
	}
	return renderHelpLine(keys, width)
}

func renderAssignHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "toggle table"),
		helpKey("ctrl+s", "save assignment"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("q", "quit"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Floor Plan Editor"),
		helpSection([]helpItem{
			{"left drag", "Pan the canvas"},
			{"ctrl+left drag", "Box-select objects"},
			{"click", "Select object (shift extends)"},
			{"click empty", "Clear selection"},
			{"wheel", "Zoom toward cursor"},
			{"drag object", "Move selected objects"},
			{"h/j/k/l / arrows", "Pan"},
			{"H/J/K/L", "Nudge selection one grid unit"},
			{"+ / -", "Zoom in / out"},
			{"0", "Reset view"},
			{"f", "Fit all tables"},
			{"tab", "Select next table"},
			{"ctrl+a", "Select all"},
			{"esc", "Clear selection"},
			{"a", "Add table"},
			{"e", "Edit selected table"},
			{"d / delete", "Delete selection"},
			{"y", "Duplicate selection"},
			{"u / ctrl+r", "Undo / redo"},
			{"g", "Toggle grid dots"},
		}),
		titleSection("Reservations"),
		helpSection([]helpItem{
			{"j/k", "Move cursor"},
			{"a", "Add reservation"},
			{"e", "Edit selected"},
			{"d", "Delete selected"},
			{"s", "Advance status (pending → … → completed)"},
			{"enter", "Assign tables"},
			{"S", "Cycle sort"},
			{"/", "Filter by guest name"},
			{"p", "Back to floor plan"},
		}),
		titleSection("Table Assignment"),
		helpSection([]helpItem{
			{"j/k", "Move cursor"},
			{"enter", "Toggle table assignment"},
			{"ctrl+s", "Save assignment"},
			{"esc", "Cancel"},
		}),
		titleSection("Forms (Insert Mode)"),
		helpSection([]helpItem{
			{"tab", "Next field"},
			{"shift+tab", "Previous field"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
