// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package repository adapts loaded component metadata to a browsable tree of
// families, components, configuration types and properties.
package repository

import (
	"grimm.is/compdoc/internal/i18n"
	"grimm.is/compdoc/internal/metadata"
)

// NoFamily labels components that declare no family.
const NoFamily = "(no family)"

// Node is one entry of the repository tree.
type Node interface {
	Label() string
	IsLeaf() bool
	IsConfigNode() bool
}

// Branch is a Node with children.
type Branch interface {
	Node
	Children() []Node
}

// Tree is the root of a repository tree.
type Tree struct {
	Families []*FamilyNode
}

// Roots returns the family nodes as generic nodes.
func (t *Tree) Roots() []Node {
	out := make([]Node, 0, len(t.Families))
	for _, f := range t.Families {
		out = append(out, f)
	}
	return out
}

// FamilyNode groups the components of one family.
type FamilyNode struct {
	Name       string
	Components []*ComponentNode
}

func (f *FamilyNode) Label() string {
	if f.Name == "" {
		return NoFamily
	}
	return f.Name
}

func (f *FamilyNode) IsLeaf() bool       { return len(f.Components) == 0 }
func (f *FamilyNode) IsConfigNode() bool { return false }

func (f *FamilyNode) Children() []Node {
	out := make([]Node, 0, len(f.Components))
	for _, c := range f.Components {
		out = append(out, c)
	}
	return out
}

// ComponentNode is a component and its top-level properties.
type ComponentNode struct {
	Component   *metadata.ComponentDescriptor
	Title       string
	Description string
	Properties  []Node
}

func (c *ComponentNode) Label() string      { return c.Title }
func (c *ComponentNode) IsLeaf() bool       { return len(c.Properties) == 0 }
func (c *ComponentNode) IsConfigNode() bool { return false }
func (c *ComponentNode) Children() []Node   { return c.Properties }
func (c *ComponentNode) Name() string       { return c.Component.Name }
func (c *ComponentNode) FamilyName() string { return c.Component.Family }

// ConfigurationNode is a property carrying a configuration type tag such as
// "dataset". It is never a leaf, even when it declares no members.
type ConfigurationNode struct {
	Meta        *metadata.Node
	Title       string
	Description string
	Properties  []Node
}

func (c ConfigurationNode) Label() string      { return c.Title }
func (c ConfigurationNode) IsLeaf() bool       { return false }
func (c ConfigurationNode) IsConfigNode() bool { return true }
func (c ConfigurationNode) Children() []Node   { return c.Properties }

// Type returns the configuration type tag.
func (c ConfigurationNode) Type() string { return c.Meta.Type }

// Path returns the configuration path of the group.
func (c ConfigurationNode) Path() string { return c.Meta.Path }

// PropertyNode is an untyped property: a scalar leaf, an object or an array.
type PropertyNode struct {
	Meta        *metadata.Node
	Title       string
	Description string
	Properties  []Node
}

func (p *PropertyNode) Label() string      { return p.Title }
func (p *PropertyNode) IsLeaf() bool       { return len(p.Properties) == 0 }
func (p *PropertyNode) IsConfigNode() bool { return false }
func (p *PropertyNode) Children() []Node   { return p.Properties }

// Path returns the configuration path of the property.
func (p *PropertyNode) Path() string { return p.Meta.Path }

// Build groups the components of set by family, keeping the order in which
// families and components first appear. Labels are resolved for locale.
func Build(set *metadata.Set, locale string) *Tree {
	tree := &Tree{}
	if set == nil {
		return tree
	}
	loc := set.Catalog.For(i18n.NormalizeLocale(locale))

	families := make(map[string]*FamilyNode)
	for _, c := range set.Components {
		fam, ok := families[c.Family]
		if !ok {
			fam = &FamilyNode{Name: c.Family}
			families[c.Family] = fam
			tree.Families = append(tree.Families, fam)
		}
		fam.Components = append(fam.Components, buildComponent(c, loc))
	}
	return tree
}

func buildComponent(c *metadata.ComponentDescriptor, loc *i18n.Localizer) *ComponentNode {
	title := c.DisplayName
	if title == "" {
		title = c.Name
	}
	node := &ComponentNode{
		Component:   c,
		Title:       loc.Text(metadata.ComponentKey(c.Name, metadata.DisplayNameKey), title),
		Description: loc.Text(metadata.ComponentKey(c.Name, metadata.DocumentationKey), c.Description),
	}
	for _, root := range c.Roots {
		node.Properties = append(node.Properties, buildProperty(c.Name, root, loc))
	}
	return node
}

func buildProperty(component string, n *metadata.Node, loc *i18n.Localizer) Node {
	title := loc.Text(metadata.NodeKey(component, n.Path, metadata.DisplayNameKey), n.Label())
	desc := loc.Text(metadata.NodeKey(component, n.Path, metadata.DocumentationKey), n.Description)

	var children []Node
	for _, child := range n.Children() {
		children = append(children, buildProperty(component, child, loc))
	}

	if n.Type != "" {
		return ConfigurationNode{Meta: n, Title: title, Description: desc, Properties: children}
	}
	return &PropertyNode{Meta: n, Title: title, Description: desc, Properties: children}
}

// ConfigurationNodes returns every configuration node below root in pre-order.
func ConfigurationNodes(root Node) []ConfigurationNode {
	var out []ConfigurationNode
	var walk func(Node)
	walk = func(n Node) {
		if cfg, ok := n.(ConfigurationNode); ok {
			out = append(out, cfg)
		}
		if b, ok := n.(Branch); ok {
			for _, child := range b.Children() {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}
