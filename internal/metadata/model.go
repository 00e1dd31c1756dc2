// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import "strings"

// IndexPlaceholder is appended to an array path to address its element template.
const IndexPlaceholder = "[${index}]"

// ComponentDescriptor describes one top-level component and its configuration tree.
type ComponentDescriptor struct {
	Name        string
	Family      string
	DisplayName string
	Description string // declared default text, before localization
	Roots       []*Node
	Source      string // file the descriptor was read from
}

// Shape is the structural variant of a configuration node: Scalar, Object or Array.
type Shape interface {
	isShape()
}

// Scalar is a leaf value.
type Scalar struct{}

// Object groups ordered child nodes.
type Object struct {
	Children []*Node
}

// Array holds repeated values described by a single element template.
// The element's path is the array path suffixed with IndexPlaceholder.
type Array struct {
	Element *Node
}

func (Scalar) isShape() {}
func (Object) isShape() {}
func (Array) isShape()  {}

// Node is one addressable property or property group.
type Node struct {
	Name        string
	Path        string
	DisplayName string
	Description string
	Default     *string
	Type        string // configuration type tag such as "dataset"; empty for none
	ValueType   string // string, number, boolean, object, array; empty when unknown
	Condition   Condition
	Shape       Shape
}

// Label returns the display name, falling back to the node name.
func (n *Node) Label() string {
	if n.DisplayName != "" {
		return n.DisplayName
	}
	return n.Name
}

// HasDefault reports whether a default value was declared.
func (n *Node) HasDefault() bool {
	return n.Default != nil
}

// Children returns the nodes directly below n: object members, or the
// element template of an array.
func (n *Node) Children() []*Node {
	switch s := n.Shape.(type) {
	case Object:
		return s.Children
	case Array:
		if s.Element != nil {
			return []*Node{s.Element}
		}
	}
	return nil
}

// Walk visits n and its descendants in depth-first pre-order.
// Returning false from fn skips the node's descendants.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// ChildPath joins a parent path and a member name.
func ChildPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// ElementPath returns the element template path of an array at path.
func ElementPath(path string) string {
	return path + IndexPlaceholder
}

// KeyPath turns a node path into its message-bundle form: index placeholders
// become "[]" so that "a.list[${index}].b" is looked up as "a.list[].b".
func KeyPath(path string) string {
	return strings.ReplaceAll(path, IndexPlaceholder, "[]")
}

// Message bundle key suffixes.
const (
	DocumentationKey = "_documentation"
	DisplayNameKey   = "_displayName"
)

// ComponentKey returns the bundle key of a component text, such as
// "my._displayName".
func ComponentKey(component, suffix string) string {
	return component + "." + suffix
}

// NodeKey returns the bundle key of a node text, such as
// "my.operations[].fieldPath._documentation".
func NodeKey(component, path, suffix string) string {
	return component + "." + KeyPath(path) + "." + suffix
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
