package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pixelforge/pkg/preset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SlotListModel - Interactive preset slot selection
// =============================================================================

// SlotListModel is the bubbletea model for picking a preset slot. Only
// occupied slots can be selected; empty slots are shown dimmed for
// orientation.
type SlotListModel struct {
	Labels   []string
	Occupied []bool
	Cursor   int

	// Selected is the chosen slot index, or -1 if the picker was quit.
	Selected int
}

// NewSlotListModel creates a slot picker over the registry's current state.
func NewSlotListModel(r *preset.Registry) SlotListModel {
	occupied := make([]bool, preset.Capacity)
	for i := range occupied {
		occupied[i] = r.Occupied(i)
	}
	return SlotListModel{
		Labels:   r.Labels(),
		Occupied: occupied,
		Selected: -1,
	}
}

func (m SlotListModel) Init() tea.Cmd {
	return nil
}

func (m SlotListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Labels)-1 {
				m.Cursor++
			}
		case "enter":
			if !m.Occupied[m.Cursor] {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SlotListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, label := range m.Labels {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := listDimStyle.Render("·")
		if m.Occupied[i] {
			status = StyleSuccess.Render("●")
		}

		line := fmt.Sprintf("%s%s %2d  %s", cursor, status, i, label)

		switch {
		case i == m.Cursor && m.Occupied[i]:
			b.WriteString(listSelectedStyle.Render(line))
		case !m.Occupied[i]:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Labels))))

	return b.String()
}

// pickSlot runs the interactive slot picker and returns the chosen index.
// Returns -1 if the user quit without selecting.
func pickSlot(r *preset.Registry) (int, error) {
	final, err := tea.NewProgram(NewSlotListModel(r)).Run()
	if err != nil {
		return -1, fmt.Errorf("slot picker: %w", err)
	}
	m, ok := final.(SlotListModel)
	if !ok {
		return -1, nil
	}
	return m.Selected, nil
}
