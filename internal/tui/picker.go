// Package tui implements the interactive catalog picker using Bubble Tea.
// It is an alternative front end to the index-input selection: the
// returned Selection feeds the same confirmation and execution path.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	sizeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	totalStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// Model is the state of the catalog picker.
type Model struct {
	catalog   *cleaner.Catalog
	keys      KeyMap
	cursor    int
	selected  map[int]bool
	confirmed bool
	aborted   bool
}

// NewModel creates a picker over a catalog.
func NewModel(catalog *cleaner.Catalog) Model {
	return Model{
		catalog:  catalog,
		keys:     DefaultKeyMap(),
		selected: make(map[int]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]

	case key.Matches(keyMsg, m.keys.All):
		all := len(m.selected) != m.catalog.Len()
		for i := 0; i < m.catalog.Len(); i++ {
			m.selected[i] = all
		}
		if !all {
			m.selected = make(map[int]bool)
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Select %s items to remove", m.catalog.Class)))
	b.WriteString("\n")

	for i, item := range m.catalog.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
		}

		checkbox := "[ ]"
		label := item.Label
		if m.selected[i] {
			checkbox = selectedStyle.Render("[x]")
			label = selectedStyle.Render(label)
		}

		line := fmt.Sprintf("%s%s %s %s", cursor, checkbox, label,
			sizeStyle.Render(cleaner.FormatBytes(item.Size)))
		if len(item.Tags) > 0 {
			style := tagStyle
			if item.HasTag(cleaner.TagCritical) {
				style = criticalStyle
			}
			line += " " + style.Render("("+strings.Join(item.Tags, ",")+")")
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(totalStyle.Render(fmt.Sprintf("Selected: %s of %s",
		cleaner.FormatBytes(m.selectedSize()), cleaner.FormatBytes(m.catalog.TotalSize()))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: toggle • a: all • enter: confirm • q: cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) selectedSize() int64 {
	var total int64
	for i, on := range m.selected {
		if on && i < m.catalog.Len() {
			total += m.catalog.Items[i].Size
		}
	}
	return total
}

// Selection returns the confirmed picks as a selection. An aborted or
// unconfirmed picker yields an empty selection.
func (m Model) Selection() cleaner.Selection {
	if !m.confirmed || m.aborted {
		return cleaner.Selection{}
	}

	var indices []int
	for i, on := range m.selected {
		if on {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	return cleaner.Selection{Indices: indices}
}

// Pick runs the picker and returns the user's selection.
func Pick(catalog *cleaner.Catalog) (cleaner.Selection, error) {
	final, err := tea.NewProgram(NewModel(catalog)).Run()
	if err != nil {
		return cleaner.Selection{}, fmt.Errorf("catalog picker failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return cleaner.Selection{}, fmt.Errorf("unexpected picker model type %T", final)
	}
	return model.Selection(), nil
}
