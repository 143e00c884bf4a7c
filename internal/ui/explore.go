// Package ui holds the interactive tree explorer.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"birch/cst"
	"birch/meta"
)

type exploreRow struct {
	id     cst.NodeID
	depth  int
	branch bool // has children
}

type exploreModel struct {
	path   string
	tree   *cst.Tree
	ranges meta.Map

	rows      []exploreRow
	collapsed map[cst.NodeID]bool
	cursor    int

	vp    viewport.Model
	width int
	ready bool
}

// NewExploreModel returns a Bubble Tea model that browses a document tree.
// ranges may be the zero Map; rows then render without positions.
func NewExploreModel(path string, tree *cst.Tree, ranges meta.Map) tea.Model {
	m := &exploreModel{
		path:      path,
		tree:      tree,
		ranges:    ranges,
		collapsed: make(map[cst.NodeID]bool),
		width:     80,
	}
	m.reflow()
	return m
}

// Run opens the explorer in the alternate screen and blocks until the user
// quits.
func Run(path string, tree *cst.Tree, ranges meta.Map) error {
	_, err := tea.NewProgram(NewExploreModel(path, tree, ranges), tea.WithAltScreen()).Run()
	return err
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.vp.Height)
		case "pgdown":
			m.move(m.vp.Height)
		case "home", "g":
			m.cursor = 0
			m.sync()
		case "end", "G":
			m.cursor = len(m.rows) - 1
			m.sync()
		case "enter", " ":
			m.toggle()
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		// One line of header and one line of help around the listing.
		height := msg.Height - 2
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.sync()
		return m, nil
	}
	return m, nil
}

func (m *exploreModel) View() string {
	if !m.ready {
		return "loading..."
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	helpStyle := lipgloss.NewStyle().Faint(true)

	header := fmt.Sprintf("%s  %d nodes", m.path, m.tree.Len())
	help := "j/k move · enter fold · g/G jump · q quit"

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(header, m.width)))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(truncate(help, m.width)))
	return b.String()
}

// move shifts the cursor by delta rows and keeps it in view.
func (m *exploreModel) move(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.sync()
}

func (m *exploreModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// toggle folds or unfolds the branch under the cursor.
func (m *exploreModel) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if !row.branch {
		return
	}
	m.collapsed[row.id] = !m.collapsed[row.id]
	m.reflow()
	m.clampCursor()
	m.sync()
}

// reflow rebuilds the visible rows, skipping the descendants of collapsed
// branches.
func (m *exploreModel) reflow() {
	m.rows = m.rows[:0]
	var visit func(id cst.NodeID, depth int)
	visit = func(id cst.NodeID, depth int) {
		kids := m.tree.Children(id)
		m.rows = append(m.rows, exploreRow{id: id, depth: depth, branch: len(kids) > 0})
		if m.collapsed[id] {
			return
		}
		for _, c := range kids {
			visit(c, depth+1)
		}
	}
	if m.tree.Root().IsValid() {
		visit(m.tree.Root(), 0)
	}
}

// sync re-renders the listing and scrolls the cursor into view.
func (m *exploreModel) sync() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderRows())
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	}
	if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *exploreModel) renderRows() string {
	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idStyle := lipgloss.NewStyle().Faint(true)
	posStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))

	var b strings.Builder
	for i, row := range m.rows {
		marker := "  "
		if row.branch {
			marker = "- "
			if m.collapsed[row.id] {
				marker = "+ "
			}
		}
		prefix := strings.Repeat("  ", row.depth) + marker
		kind := m.tree.Kind(row.id)

		if i == m.cursor {
			// One style for the whole line so the highlight bar is unbroken.
			line := prefix + m.plainLabel(row.id, kind)
			b.WriteString(cursorStyle.Render(truncate(line, m.width)))
		} else {
			b.WriteString(prefix)
			b.WriteString(kindStyle.Render(kind.String()))
			b.WriteString(idStyle.Render(fmt.Sprintf(" #%d", row.id)))
			if v, ok := m.ranges.Lookup(row.id); ok {
				b.WriteString(posStyle.Render(fmt.Sprintf(" %v", v)))
			}
			if kind.IsLeaf() {
				text, _ := m.tree.Text(row.id)
				b.WriteString(textStyle.Render(" " + truncate(fmt.Sprintf("%q", text), 32)))
			}
		}
		if i != len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *exploreModel) plainLabel(id cst.NodeID, kind cst.Kind) string {
	label := fmt.Sprintf("%s #%d", kind, id)
	if v, ok := m.ranges.Lookup(id); ok {
		label += fmt.Sprintf(" %v", v)
	}
	if kind.IsLeaf() {
		text, _ := m.tree.Text(id)
		label += " " + truncate(fmt.Sprintf("%q", text), 32)
	}
	return label
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
