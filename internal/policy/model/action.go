// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"

	"github.com/vaultgate/iampolicy/internal/policy/errs"
)

// Action is a parsed "service:action" pair, e.g. "route53:GetChange".
// Either half may be a glob pattern when the Action is used as a
// constraint rather than a concrete request value.
type Action struct {
	raw string
	col int // byte offset of the separating colon
}

// ParseAction parses s into an Action. Fails with InvalidFormat if s does
// not contain exactly one colon.
func ParseAction(s string) (Action, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 || strings.IndexByte(s[idx+1:], ':') >= 0 {
		return Action{}, errs.InvalidFormat("action", s)
	}
	return Action{raw: s, col: idx}, nil
}

// Raw returns the original "service:action" string.
func (a Action) Raw() string { return a.raw }

// String implements fmt.Stringer.
func (a Action) String() string { return a.raw }

// Equal reports whether two Actions have the same raw form.
func (a Action) Equal(other Action) bool { return a.raw == other.raw }

// Service returns the part before the colon.
func (a Action) Service() string { return a.raw[:a.col] }

// Name returns the part after the colon.
func (a Action) Name() string { return a.raw[a.col+1:] }
