// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"

	"grimm.is/compdoc/internal/metadata"
)

// RenderCondition describes when a property is enabled.
//
// A single predicate renders inline:
//
//	`type` is equal to `mysql` or `oracle`
//
// Several predicates render as a bullet list in declaration order, ending
// with a newline.
func RenderCondition(cond metadata.Condition) string {
	switch len(cond.Predicates) {
	case 0:
		return AlwaysEnabled
	case 1:
		return renderPredicate(cond.Predicates[0])
	}

	var sb strings.Builder
	sb.WriteString("All of the following conditions are met:\n\n")
	for _, p := range cond.Predicates {
		sb.WriteString("- ")
		sb.WriteString(renderPredicate(p))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderPredicate(p metadata.Predicate) string {
	verb := "is"
	if p.Negate {
		verb = "is not"
	}

	target := quote(p.Target)
	if p.Kind == metadata.PredicateEmpty {
		return target + " " + verb + " empty"
	}

	values := make([]string, len(p.Values))
	for i, v := range p.Values {
		values[i] = quote(v)
	}
	return target + " " + verb + " equal to " + strings.Join(values, " or ")
}

func quote(s string) string {
	return "`" + s + "`"
}
