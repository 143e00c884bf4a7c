package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"birch/cst"
	"birch/meta"
	"birch/parse"
)

type countingObserver struct {
	order []cst.NodeID
}

func (o *countingObserver) OnVisit(id cst.NodeID) bool {
	o.order = append(o.order, id)
	return true
}

func (o *countingObserver) OnLeave(cst.NodeID) {}

func exploreFixture(t *testing.T) *exploreModel {
	t.Helper()
	tree, err := parse.Text("if x:\n    pass\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return NewExploreModel("doc.br", tree, meta.Map{}).(*exploreModel)
}

func TestExploreRowsCoverTree(t *testing.T) {
	m := exploreFixture(t)

	var obs countingObserver
	cst.Walk(m.tree, m.tree.Root(), &obs)
	if len(m.rows) != len(obs.order) {
		t.Fatalf("flattened %d rows, traversal visits %d nodes", len(m.rows), len(obs.order))
	}
	for i, row := range m.rows {
		if row.id != obs.order[i] {
			t.Fatalf("row %d is node %d, traversal visits %d", i, row.id, obs.order[i])
		}
	}
	if m.rows[0].id != m.tree.Root() || m.rows[0].depth != 0 {
		t.Errorf("first row %+v is not the root", m.rows[0])
	}
	for i := 1; i < len(m.rows); i++ {
		if m.rows[i].depth < 1 {
			t.Errorf("row %d has depth %d under the root", i, m.rows[i].depth)
		}
	}
}

func TestExploreCollapseHidesDescendants(t *testing.T) {
	m := exploreFixture(t)
	total := len(m.rows)

	// Fold the root; only the root stays visible.
	m.toggle()
	if len(m.rows) != 1 {
		t.Fatalf("collapsed root leaves %d rows, want 1", len(m.rows))
	}
	m.toggle()
	if len(m.rows) != total {
		t.Fatalf("expanded root leaves %d rows, want %d", len(m.rows), total)
	}
}

func TestExploreCursorMovement(t *testing.T) {
	m := exploreFixture(t)
	m.move(-5)
	if m.cursor != 0 {
		t.Errorf("cursor %d after moving past the top", m.cursor)
	}
	m.move(len(m.rows) + 10)
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor %d after moving past the bottom", m.cursor)
	}
}

func TestExploreQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := exploreFixture(t)
		var msg tea.Msg
		switch key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q does not quit", key)
		}
	}
}

func TestExploreResizeMakesReady(t *testing.T) {
	m := exploreFixture(t)
	if m.ready {
		t.Fatal("model ready before the first resize")
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if !m.ready || m.vp.Height != 28 {
		t.Fatalf("ready %v, viewport height %d", m.ready, m.vp.Height)
	}
	if m.View() == "loading..." {
		t.Error("view still loading after resize")
	}
}
