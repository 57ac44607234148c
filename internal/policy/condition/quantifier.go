// SPDX-License-Identifier: Apache-2.0

package condition

import (
	"strings"

	"github.com/vaultgate/iampolicy/internal/policy/errs"
)

// QuantifierKind selects which of the three multi-valued lifting rules
// applies.
type QuantifierKind int

const (
	ForAllValues QuantifierKind = iota
	ForAnyValue
	NullQuantifier
)

// Quantifier lifts a condition Operator over a multi-valued context key.
// IfExists records whether the JSON key carried the "IfExists" suffix;
// per spec.md §4.6 that suffix forces ForAnyValue semantics regardless of
// any "ForAllValues:"/"ForAll:"/"ForAnyValue:" prefix, and flips the absent-key result
// from false to true — the same absence rule C5's Nullable.IfExists
// encodes for a single value.
type Quantifier struct {
	Kind     QuantifierKind
	Op       Operator
	IfExists bool
}

// ParseConditionKey decodes a JSON condition key (e.g.
// "ForAllValues:StringLike", "StringEqualsIfExists", "Null") into its
// Quantifier, following the four-step rule in spec.md §4.6.
func ParseConditionKey(key string) (Quantifier, error) {
	if key == "Null" {
		return Quantifier{Kind: NullQuantifier}, nil
	}

	rest := key
	kind := ForAnyValue
	switch {
	case strings.HasPrefix(rest, "ForAnyValue:"):
		rest = strings.TrimPrefix(rest, "ForAnyValue:")
		kind = ForAnyValue
	case strings.HasPrefix(rest, "ForAllValues:"):
		rest = strings.TrimPrefix(rest, "ForAllValues:")
		kind = ForAllValues
	case strings.HasPrefix(rest, "ForAll:"):
		rest = strings.TrimPrefix(rest, "ForAll:")
		kind = ForAllValues
	}

	ifExists := false
	if strings.HasSuffix(rest, "IfExists") {
		rest = strings.TrimSuffix(rest, "IfExists")
		ifExists = true
		kind = ForAnyValue
	}

	op, err := ParseOperator(rest)
	if err != nil {
		return Quantifier{}, err
	}

	return Quantifier{Kind: kind, Op: op, IfExists: ifExists}, nil
}

// Matches evaluates the quantifier against the context values bound to a
// single key (nil/empty means the key is absent) and the clause's target
// list.
func (q Quantifier) Matches(values, targets []string) (bool, error) {
	switch q.Kind {
	case NullQuantifier:
		if len(targets) != 1 {
			return false, errs.TooManyValues("Null", len(targets))
		}
		present := len(values) > 0
		return Apply(IsNull, 0, present, "", targets[0])

	case ForAllValues:
		if len(values) == 0 {
			return true, nil
		}
		for _, v := range values {
			matched := false
			for _, t := range targets {
				ok, err := q.Op.Apply(v, t)
				if err != nil {
					return false, err
				}
				if ok {
					matched = true
					break
				}
			}
			if !matched {
				return false, nil
			}
		}
		return true, nil

	case ForAnyValue:
		if len(values) == 0 {
			return q.IfExists, nil
		}
		for _, v := range values {
			for _, t := range targets {
				ok, err := q.Op.Apply(v, t)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
		}
		return false, nil

	default:
		return false, errs.NotImplemented("quantifier")
	}
}
