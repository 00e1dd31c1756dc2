// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package repository

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// PrintOptions controls tree rendering.
type PrintOptions struct {
	// Depth limits the printed levels, families being level 1; 0 prints all.
	Depth int
	// Styled enables lipgloss colors. Plain output is stable across terminals.
	Styled bool
}

// Render draws t as one box-drawn tree per family, separated by blank lines.
// Configuration nodes are suffixed with their type tag in brackets.
func Render(t *Tree, opts PrintOptions) string {
	blocks := make([]string, 0, len(t.Families))
	for _, fam := range t.Families {
		switch v := subtree(fam, 1, opts).(type) {
		case *tree.Tree:
			blocks = append(blocks, v.String())
		case string:
			blocks = append(blocks, v)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Print writes the rendered tree followed by a newline.
func Print(w io.Writer, t *Tree, opts PrintOptions) error {
	_, err := io.WriteString(w, Render(t, opts)+"\n")
	return err
}

func subtree(n Node, depth int, opts PrintOptions) any {
	label := labelOf(n, opts.Styled)
	b, ok := n.(Branch)
	if !ok || len(b.Children()) == 0 || (opts.Depth > 0 && depth >= opts.Depth) {
		return label
	}
	node := tree.Root(label)
	if opts.Styled {
		node.EnumeratorStyle(StyleMuted)
	}
	for _, child := range b.Children() {
		node.Child(subtree(child, depth+1, opts))
	}
	return node
}

func labelOf(n Node, styled bool) string {
	label := n.Label()
	var style *lipgloss.Style
	switch v := n.(type) {
	case *FamilyNode:
		style = &StyleFamily
	case ConfigurationNode:
		label += " [" + v.Type() + "]"
		style = &StyleConfig
	}
	if styled && style != nil {
		return style.Render(label)
	}
	return label
}
