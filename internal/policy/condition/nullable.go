// SPDX-License-Identifier: Apache-2.0

package condition

import "github.com/vaultgate/iampolicy/internal/policy/errs"

// Nullable is the absence-handling mode for a single optional context
// value, independent of the multi-valued lifting a Quantifier performs.
// The three modes mirror what Quantifier encodes for multi-valued keys:
// Expect is plain ForAnyValue's absent-key behavior, IfExists is
// ForAnyValue-with-the-IfExists-suffix's, and IsNull is the standalone
// Null quantifier's.
type Nullable int

const (
	// Expect is the default: an absent key never matches.
	Expect Nullable = iota
	// IfExists: an absent key always matches; otherwise defers to the
	// wrapped operator.
	IfExists
	// IsNull: no operator is applied; the target must be "true" or
	// "false" and the match is absence-of-value == target-bool.
	IsNull
)

// Apply evaluates a nullable-wrapped operator against an optional single
// value. present reports whether the context key had a value at all;
// value is meaningless when present is false.
func Apply(mode Nullable, op Operator, present bool, value, target string) (bool, error) {
	switch mode {
	case Expect:
		if !present {
			return false, nil
		}
		return op.Apply(value, target)
	case IfExists:
		if !present {
			return true, nil
		}
		return op.Apply(value, target)
	case IsNull:
		want, err := parseBool("Null", target)
		if err != nil {
			return false, err
		}
		return !present == want, nil
	default:
		return false, errs.NotImplemented("Nullable")
	}
}
