// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"grimm.is/compdoc/internal/errors"
)

// BrowserTitle is shown while the family level is listed.
const BrowserTitle = "Components"

type nodeItem struct {
	node Node
	desc string
}

func (i nodeItem) Title() string {
	label := i.node.Label()
	if cfg, ok := i.node.(ConfigurationNode); ok {
		label += " [" + cfg.Type() + "]"
	}
	if hasChildren(i.node) {
		label += " ›"
	}
	return label
}

func (i nodeItem) Description() string { return i.desc }
func (i nodeItem) FilterValue() string { return i.node.Label() }

// Browser is an interactive list over a repository tree. Enter descends into
// the selected node, esc returns to the parent level and q quits.
type Browser struct {
	Tree *Tree
	List list.Model

	// Path holds the branches entered so far, outermost first.
	Path     []Branch
	Quitting bool

	Width  int
	Height int
}

// NewBrowser lists the families of t.
func NewBrowser(t *Tree) Browser {
	l := list.New(itemsFor(t.Roots()), list.NewDefaultDelegate(), 0, 0)
	l.Title = BrowserTitle
	l.Styles.Title = StyleTitle
	l.SetShowStatusBar(false)

	return Browser{Tree: t, List: l}
}

func (m Browser) Init() tea.Cmd {
	return nil
}

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		h, v := StyleApp.GetFrameSize()
		m.List.SetSize(msg.Width-h, msg.Height-v-1)
		return m, nil

	case tea.KeyMsg:
		if m.List.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			item, ok := m.List.SelectedItem().(nodeItem)
			if !ok {
				return m, nil
			}
			b, ok := item.node.(Branch)
			if !ok || len(b.Children()) == 0 {
				return m, nil
			}
			m.Path = append(m.Path, b)
			cmd := m.show(b.Children())
			return m, cmd
		case "esc", "backspace":
			if m.List.FilterState() == list.FilterApplied {
				break
			}
			if len(m.Path) == 0 {
				return m, nil
			}
			m.Path = m.Path[:len(m.Path)-1]
			nodes := m.Tree.Roots()
			if len(m.Path) > 0 {
				nodes = m.Path[len(m.Path)-1].Children()
			}
			cmd := m.show(nodes)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m *Browser) show(nodes []Node) tea.Cmd {
	m.List.Title = m.Breadcrumb()
	m.List.ResetFilter()
	m.List.Select(0)
	return m.List.SetItems(itemsFor(nodes))
}

// Breadcrumb joins the labels of the entered branches.
func (m Browser) Breadcrumb() string {
	if len(m.Path) == 0 {
		return BrowserTitle
	}
	labels := make([]string, 0, len(m.Path))
	for _, b := range m.Path {
		labels = append(labels, b.Label())
	}
	return strings.Join(labels, " / ")
}

// Current returns the node under the cursor, or nil when the level is empty.
func (m Browser) Current() Node {
	item, ok := m.List.SelectedItem().(nodeItem)
	if !ok {
		return nil
	}
	return item.node
}

func (m Browser) View() string {
	if m.Quitting {
		return ""
	}
	status := StyleStatus.Render("enter: open • esc: back • /: filter • q: quit")
	return StyleApp.Render(lipgloss.JoinVertical(lipgloss.Left, m.List.View(), status))
}

// Browse runs the browser until the user quits or ctx is cancelled.
func Browse(ctx context.Context, t *Tree, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(NewBrowser(t), opts...).Run(); err != nil {
		return errors.Wrap(err, errors.KindInternal, "browser")
	}
	return nil
}

func itemsFor(nodes []Node) []list.Item {
	items := make([]list.Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, nodeItem{node: n, desc: describe(n)})
	}
	return items
}

func describe(n Node) string {
	switch v := n.(type) {
	case *FamilyNode:
		if len(v.Components) == 1 {
			return "1 component"
		}
		return fmt.Sprintf("%d components", len(v.Components))
	case *ComponentNode:
		return firstLine(v.Description)
	case ConfigurationNode:
		return firstLine(v.Description)
	case *PropertyNode:
		if d := firstLine(v.Description); d != "" {
			return d
		}
		return v.Path()
	}
	return ""
}

func hasChildren(n Node) bool {
	b, ok := n.(Branch)
	return ok && len(b.Children()) > 0
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
