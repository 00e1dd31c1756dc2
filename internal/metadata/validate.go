// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import (
	"grimm.is/compdoc/internal/errors"
)

// Validate checks the structural invariants of a component: a name, unique
// node paths, array element templates, and complete conditions.
func Validate(c *ComponentDescriptor) error {
	if c.Name == "" {
		return errors.WithSource(errors.New(errors.KindInput, "component has no name"), c.Source)
	}

	seen := make(map[string]bool)
	var firstErr error

	for _, root := range c.Roots {
		Walk(root, func(n *Node) bool {
			if firstErr != nil {
				return false
			}
			firstErr = validateNode(c, n, seen)
			return firstErr == nil
		})
	}

	return firstErr
}

func validateNode(c *ComponentDescriptor, n *Node, seen map[string]bool) error {
	fail := func(format string, args ...any) error {
		err := errors.WithPath(errors.Errorf(errors.KindInput, format, args...), n.Path)
		return errors.WithComponent(err, c.Name, c.Source)
	}

	if n.Name == "" || n.Path == "" {
		return fail("component %s has a configuration node without a name", c.Name)
	}
	if seen[n.Path] {
		return fail("duplicate configuration path %s in component %s", n.Path, c.Name)
	}
	seen[n.Path] = true

	switch s := n.Shape.(type) {
	case nil:
		return fail("configuration node %s has no shape", n.Path)
	case Array:
		if s.Element == nil {
			return fail("array %s has no element template", n.Path)
		}
		if s.Element.Path != ElementPath(n.Path) {
			return fail("array %s element path is %s", n.Path, s.Element.Path)
		}
	}

	for _, p := range n.Condition.Predicates {
		if err := p.Validate(); err != nil {
			return fail("configuration node %s: %v", n.Path, err)
		}
	}

	return nil
}
