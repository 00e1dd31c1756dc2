// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package repository

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/compdoc/internal/i18n"
	"grimm.is/compdoc/internal/metadata"
)

const fixture = `
component "my" {
  family        = "test"
  documentation = "super my component"

  option "configuration" {
    option "input" {
      documentation = "the input value"
    }

    option "nested" {
      type = "dataset"

      option "datastore" {
        type = "datastore"

        option "user" {
          default = "unknown"
        }
      }
    }
  }
}

component "list" {
  family = "aggregate"

  option "groupBy" {
    default = ["a"]
  }
}

component "my2" {
  family        = "test"
  documentation = "super my component2"

  option "ds" {
    type = "dataset"

    option "datastore" {
      type = "datastore"
    }
  }
}
`

func testSet(t *testing.T) *metadata.Set {
	t.Helper()
	components, err := metadata.ParseHCL([]byte(fixture), "fixture.hcl")
	require.NoError(t, err)

	catalog := i18n.NewCatalog()
	catalog.Set(i18n.Root, "my._displayName", "My Component")
	catalog.Set("test", "my.configuration.input._displayName", "Input value")
	return &metadata.Set{Components: components, Catalog: catalog}
}

func TestBuild_GroupsByFamilyInOrder(t *testing.T) {
	tree := Build(testSet(t), "")

	require.Len(t, tree.Families, 2)
	assert.Equal(t, "test", tree.Families[0].Label())
	assert.Equal(t, "aggregate", tree.Families[1].Label())

	test := tree.Families[0]
	require.Len(t, test.Components, 2)
	assert.Equal(t, "My Component", test.Components[0].Label())
	assert.Equal(t, "my2", test.Components[1].Label())
	assert.Equal(t, "my", test.Components[0].Name())
	assert.Equal(t, "super my component", test.Components[0].Description)
}

func TestBuild_NodeKinds(t *testing.T) {
	tree := Build(testSet(t), "")
	my := tree.Families[0].Components[0]

	require.Len(t, my.Children(), 1)
	configuration := my.Children()[0]
	assert.IsType(t, &PropertyNode{}, configuration)
	assert.False(t, configuration.IsConfigNode())
	assert.False(t, configuration.IsLeaf())

	cfgs := ConfigurationNodes(my)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "nested", cfgs[0].Label())
	assert.Equal(t, "dataset", cfgs[0].Type())
	assert.Equal(t, "configuration.nested", cfgs[0].Path())
	assert.Equal(t, "datastore", cfgs[1].Type())
	for _, c := range cfgs {
		assert.True(t, c.IsConfigNode())
		assert.False(t, c.IsLeaf())
	}

	// A typed group without members is still not a leaf.
	my2 := tree.Families[0].Components[1]
	require.Len(t, ConfigurationNodes(my2), 2)
	empty := ConfigurationNodes(my2)[1]
	assert.Empty(t, empty.Children())
	assert.False(t, empty.IsLeaf())

	input := configuration.(Branch).Children()[0]
	assert.True(t, input.IsLeaf())
	assert.False(t, input.IsConfigNode())
}

func TestBuild_TypedOptionWithoutMembers(t *testing.T) {
	components, err := metadata.ParseHCL([]byte(`
component "c" {
  option "ds" {
    type = "datastore"
  }
}
`), "typed.hcl")
	require.NoError(t, err)

	tree := Build(&metadata.Set{Components: components}, "")
	ds := tree.Families[0].Components[0].Children()[0]

	cfg, ok := ds.(ConfigurationNode)
	require.True(t, ok, "got %T", ds)
	assert.True(t, cfg.IsConfigNode())
	assert.False(t, cfg.IsLeaf())
	assert.Equal(t, "datastore", cfg.Type())
	assert.Equal(t, "ds", cfg.Path())
}

func TestBuild_Localized(t *testing.T) {
	tree := Build(testSet(t), "test")
	my := tree.Families[0].Components[0]

	assert.Equal(t, "My Component", my.Label(), "falls back to the root bundle")
	input := my.Children()[0].(Branch).Children()[0]
	assert.Equal(t, "Input value", input.Label())
}

func TestBuild_NoFamily(t *testing.T) {
	set := &metadata.Set{Components: []*metadata.ComponentDescriptor{{Name: "solo"}}}
	tree := Build(set, "")

	require.Len(t, tree.Families, 1)
	assert.Equal(t, NoFamily, tree.Families[0].Label())
	assert.True(t, tree.Families[0].Components[0].IsLeaf())
	assert.Empty(t, Build(nil, "").Families)
}

func TestRender_Plain(t *testing.T) {
	out := Render(Build(testSet(t), ""), PrintOptions{})
	lines := strings.Split(out, "\n")

	assert.Equal(t, "test", lines[0])
	assert.Contains(t, out, "├── My Component")
	assert.Contains(t, out, "│       └── nested [dataset]")
	assert.Contains(t, out, "│           └── datastore [datastore]")
	assert.Contains(t, out, "│               └── user")
	assert.Contains(t, out, "└── my2")
	assert.Contains(t, out, "\n\naggregate\n└── list")

	assert.Less(t, strings.Index(out, "Input value"), 0, "root locale has no input label")
	assert.Less(t, strings.Index(out, "My Component"), strings.Index(out, "my2"))
}

func TestRender_Depth(t *testing.T) {
	out := Render(Build(testSet(t), ""), PrintOptions{Depth: 2})

	assert.Contains(t, out, "├── My Component")
	assert.NotContains(t, out, "configuration")
	assert.NotContains(t, out, "datastore")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, Build(testSet(t), ""), PrintOptions{}))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.True(t, strings.HasPrefix(buf.String(), "test\n"))
}

func update(t *testing.T, m Browser, msg tea.Msg) Browser {
	t.Helper()
	next, _ := m.Update(msg)
	b, ok := next.(Browser)
	require.True(t, ok)
	return b
}

func TestBrowser_Navigation(t *testing.T) {
	m := NewBrowser(Build(testSet(t), ""))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.Width)
	assert.Equal(t, BrowserTitle, m.Breadcrumb())
	assert.Equal(t, "test", m.Current().Label())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "test", m.Breadcrumb())
	assert.Equal(t, "My Component", m.Current().Label())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "test / My Component / configuration", m.Breadcrumb())
	assert.Equal(t, "input", m.Current().Label())

	// Leaves do not open.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.Path, 3)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "test", m.Breadcrumb())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, BrowserTitle, m.Breadcrumb())
	assert.Equal(t, "test", m.Current().Label())

	// Esc at the top level is a no-op.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Path)
}

func TestBrowser_Quit(t *testing.T) {
	m := NewBrowser(Build(testSet(t), ""))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Browser).Quitting)
	assert.Empty(t, next.View())
}

func TestBrowser_View(t *testing.T) {
	m := NewBrowser(Build(testSet(t), ""))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, BrowserTitle)
	assert.Contains(t, view, "2 components")
	assert.Contains(t, view, "q: quit")
}

func TestBrowser_Program(t *testing.T) {
	model := NewBrowser(Build(testSet(t), ""))
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second)).(Browser)
	require.True(t, ok)
	assert.Equal(t, "aggregate", final.Breadcrumb())
	assert.Equal(t, "list", final.Current().Label())
	assert.True(t, final.Quitting)
}
