// SPDX-License-Identifier: Apache-2.0

// Package model defines the value objects the policy engine reasons about:
// ARN, Action, and Principal. ARN and Action are parsed eagerly into their
// raw string plus precomputed separator offsets, so accessors are O(1) slice
// operations rather than repeated scans (spec.md §9: "ARN as a value
// object with precomputed indices").
package model

import (
	"strings"

	"github.com/vaultgate/iampolicy/internal/policy/errs"
)

// numARNColons is the number of colons partitioning
// "arn:partition:service:region:account:resource" before the resource
// field, which may itself contain colons.
const numARNColons = 5

// ARN is a parsed Amazon Resource Name. Equality, hashing, and display all
// delegate to the raw string.
type ARN struct {
	raw  string
	cols [numARNColons]int // byte offsets of the first five colons
}

// ParseARN parses s into an ARN. Fails with MissingPrefix if s does not
// start with "arn:", and with InvalidFormat if fewer than five colons are
// present. The resource field may itself contain colons; only the first
// five colons partition the string.
func ParseARN(s string) (ARN, error) {
	if !strings.HasPrefix(s, "arn:") {
		return ARN{}, errs.MissingPrefix(s)
	}

	var cols [numARNColons]int
	found := 0
	for i := 0; i < len(s) && found < numARNColons; i++ {
		if s[i] == ':' {
			cols[found] = i
			found++
		}
	}
	if found < numARNColons {
		return ARN{}, errs.InvalidFormat("arn", s)
	}

	return ARN{raw: s, cols: cols}, nil
}

// Raw returns the original ARN string.
func (a ARN) Raw() string { return a.raw }

// String implements fmt.Stringer.
func (a ARN) String() string { return a.raw }

// Equal reports whether two ARNs have the same raw form.
func (a ARN) Equal(other ARN) bool { return a.raw == other.raw }

// Partition returns the second field (conventionally "aws").
func (a ARN) Partition() string { return a.raw[a.cols[0]+1 : a.cols[1]] }

// Service returns the third field.
func (a ARN) Service() string { return a.raw[a.cols[1]+1 : a.cols[2]] }

// Region returns the fourth field.
func (a ARN) Region() string { return a.raw[a.cols[2]+1 : a.cols[3]] }

// Account returns the fifth field.
func (a ARN) Account() string { return a.raw[a.cols[3]+1 : a.cols[4]] }

// Resource returns everything after the fifth colon, which may itself
// contain colons (e.g. "change/Foo" or "function:my-fn:1").
func (a ARN) Resource() string { return a.raw[a.cols[4]+1:] }
