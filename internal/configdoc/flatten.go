// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"grimm.is/compdoc/internal/i18n"
	"grimm.is/compdoc/internal/metadata"
)

// Flatten lists the configuration tree of c as table rows using the declared
// texts.
func Flatten(c *metadata.ComponentDescriptor) []Row {
	return FlattenLocalized(c, nil)
}

// FlattenLocalized lists the configuration tree of c in depth-first
// pre-order, each node before its children and children in declaration
// order. An array row is followed by the row of a scalar element template,
// or directly by the members of an object template.
func FlattenLocalized(c *metadata.ComponentDescriptor, loc *i18n.Localizer) []Row {
	f := flattener{component: c.Name, loc: loc}
	for _, root := range c.Roots {
		f.visit(root, "", false, 0)
	}
	return f.rows
}

type flattener struct {
	component string
	loc       *i18n.Localizer
	rows      []Row
}

// visit appends the row of n and its descendants. inherited is the nearest
// ancestor type tag; inElement is set below an array element template.
func (f *flattener) visit(n *metadata.Node, inherited string, inElement bool, depth int) {
	typ := n.Type
	if typ == "" {
		typ = inherited
	}

	f.rows = append(f.rows, f.row(n, typ, inElement, depth))

	switch s := n.Shape.(type) {
	case metadata.Object:
		for _, child := range s.Children {
			f.visit(child, typ, inElement, depth+1)
		}
	case metadata.Array:
		if s.Element == nil {
			break
		}
		// Object templates contribute their members, not a row of their own.
		if obj, ok := s.Element.Shape.(metadata.Object); ok {
			elemTyp := typ
			if s.Element.Type != "" {
				elemTyp = s.Element.Type
			}
			for _, child := range obj.Children {
				f.visit(child, elemTyp, true, depth+1)
			}
			break
		}
		f.visit(s.Element, typ, true, depth+1)
	}
}

func (f *flattener) row(n *metadata.Node, typ string, inElement bool, depth int) Row {
	def := NoDefault
	if inElement {
		def = NoElementDefault
	}
	if n.Default != nil {
		def = *n.Default
	}

	if typ == "" {
		typ = NoType
	}

	return Row{
		DisplayName: f.loc.Text(metadata.NodeKey(f.component, n.Path, metadata.DisplayNameKey), n.Label()),
		Description: f.loc.Text(metadata.NodeKey(f.component, n.Path, metadata.DocumentationKey), n.Description),
		Default:     def,
		Condition:   RenderCondition(n.Condition),
		Path:        n.Path,
		Type:        typ,
		ValueType:   n.ValueType,
		Depth:       depth,
	}
}
