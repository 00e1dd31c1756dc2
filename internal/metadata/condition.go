// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import (
	"fmt"
	"strings"
)

// PredicateKind selects how a predicate tests its target.
type PredicateKind int

const (
	PredicateEquals PredicateKind = iota
	PredicateEmpty
)

// Predicate is one atomic test over another configuration path.
type Predicate struct {
	Target string // path as declared, usually relative to the sibling level
	Kind   PredicateKind
	Values []string // alternatives for PredicateEquals
	Negate bool
}

// Condition is a conjunction of predicates. The zero value is always enabled.
type Condition struct {
	Predicates []Predicate
}

// IsZero reports whether the condition has no predicates.
func (c Condition) IsZero() bool {
	return len(c.Predicates) == 0
}

// Validate checks that every predicate is complete.
func (p Predicate) Validate() error {
	if strings.TrimSpace(p.Target) == "" {
		return fmt.Errorf("condition has no target")
	}
	if p.Kind == PredicateEquals && len(p.Values) == 0 {
		return fmt.Errorf("condition on %q has no values", p.Target)
	}
	if p.Kind == PredicateEmpty && len(p.Values) > 0 {
		return fmt.Errorf("condition on %q cannot test both emptiness and values", p.Target)
	}
	return nil
}

// ParsePredicate parses the compact annotation form used in Go source metadata:
//
//	advanced == false
//	type == mysql|oracle
//	toggle != true
//	query empty
//	query !empty
func ParsePredicate(s string) (Predicate, error) {
	s = strings.TrimSpace(s)

	for _, op := range []string{"!=", "=="} {
		if idx := strings.Index(s, op); idx >= 0 {
			p := Predicate{
				Target: strings.TrimSpace(s[:idx]),
				Kind:   PredicateEquals,
				Negate: op == "!=",
			}
			for _, v := range strings.Split(s[idx+len(op):], "|") {
				if v = strings.TrimSpace(v); v != "" {
					p.Values = append(p.Values, v)
				}
			}
			return p, p.Validate()
		}
	}

	fields := strings.Fields(s)
	if len(fields) == 2 {
		switch fields[1] {
		case "empty":
			return Predicate{Target: fields[0], Kind: PredicateEmpty}, nil
		case "!empty":
			return Predicate{Target: fields[0], Kind: PredicateEmpty, Negate: true}, nil
		}
	}

	return Predicate{}, fmt.Errorf("invalid condition %q", s)
}
