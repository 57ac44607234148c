// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"github.com/vaultgate/iampolicy/internal/policy/constraint"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// ActionClause carries either a positive or negated list of
// ActionConstraints. A statement has exactly one: both Action and
// NotAction present, or both absent, is a schema error caught at
// projection time (spec.md §3).
type ActionClause struct {
	Negated     bool
	Constraints []constraint.Action
}

// Matches reports whether action satisfies the clause: Action requires
// any constraint to match, NotAction requires none to match.
func (c ActionClause) Matches(action model.Action) bool {
	any := false
	for _, cst := range c.Constraints {
		if cst.Matches(action) {
			any = true
			break
		}
	}
	if c.Negated {
		return !any
	}
	return any
}

// ResourceClause is ActionClause's counterpart over ResourceConstraints.
type ResourceClause struct {
	Negated     bool
	Constraints []constraint.Resource
}

// Matches reports whether arn satisfies the clause.
func (c ResourceClause) Matches(arn model.ARN) bool {
	any := false
	for _, cst := range c.Constraints {
		if cst.Matches(arn) {
			any = true
			break
		}
	}
	if c.Negated {
		return !any
	}
	return any
}

// PrincipalPresence distinguishes an absent Principal/NotPrincipal clause
// (always passes the gate, per spec.md §9 Open Questions) from one of the
// two present forms.
type PrincipalPresence int

const (
	PrincipalAbsent PrincipalPresence = iota
	PrincipalPresent
	NotPrincipalPresent
)

// PrincipalClause carries the statement's Principal/NotPrincipal clause,
// which may be entirely absent.
type PrincipalClause struct {
	Presence    PrincipalPresence
	Constraints []constraint.Principal
}

// Matches reports whether principal satisfies the clause. An absent
// clause always passes.
func (c PrincipalClause) Matches(principal model.Principal) bool {
	if c.Presence == PrincipalAbsent {
		return true
	}
	any := false
	for _, cst := range c.Constraints {
		if cst.Matches(principal) {
			any = true
			break
		}
	}
	if c.Presence == NotPrincipalPresent {
		return !any
	}
	return any
}
