package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/preset"
)

func testRegistry(t *testing.T) *preset.Registry {
	t.Helper()
	r := preset.NewRegistry()
	cfg := &layout.Config{Name: "garden", Rules: []layout.ColorRule{{Color: layout.RGB{R: 1}, ObjectKey: "tree"}}}
	if _, _, err := r.Save("garden", cfg, 2); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return r
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSlotListModelNavigation(t *testing.T) {
	m := NewSlotListModel(testRegistry(t))

	if len(m.Labels) != preset.Capacity {
		t.Fatalf("Labels = %d, want %d", len(m.Labels), preset.Capacity)
	}
	if m.Selected != -1 {
		t.Errorf("Selected should start at -1, got %d", m.Selected)
	}

	// Move down twice to the occupied slot
	next, _ := m.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("j"))
	m = next.(SlotListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}

	// Up stops at zero
	next, _ = m.Update(keyMsg("k"))
	next, _ = next.Update(keyMsg("k"))
	next, _ = next.Update(keyMsg("k"))
	m = next.(SlotListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestSlotListModelSelectEmptySlot(t *testing.T) {
	m := NewSlotListModel(testRegistry(t))

	// Cursor starts on slot 0, which is empty: enter is a no-op.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SlotListModel)
	if cmd != nil {
		t.Error("selecting an empty slot should not quit")
	}
	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1", m.Selected)
	}
}

func TestSlotListModelSelectOccupiedSlot(t *testing.T) {
	m := NewSlotListModel(testRegistry(t))
	m.Cursor = 2

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SlotListModel)
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	if cmd == nil {
		t.Error("selecting an occupied slot should quit")
	}
}

func TestSlotListModelView(t *testing.T) {
	m := NewSlotListModel(testRegistry(t))

	view := m.View()
	if !strings.Contains(view, "garden") {
		t.Error("view should show the occupied slot's name")
	}
	if !strings.Contains(view, "[Empty 1]") {
		t.Error("view should show empty slot labels")
	}
}
