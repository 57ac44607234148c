// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"github.com/vaultgate/iampolicy/internal/policy/condition"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// Effect is the label a Statement contributes when it matches.
type Effect int

const (
	EffectAllow Effect = iota
	EffectDeny
)

// Statement is one entry in a Policy: an optional Sid, an Effect, the
// three constraint clauses, and an optional condition set.
type Statement struct {
	Sid        string
	Effect     Effect
	Principals PrincipalClause
	Actions    ActionClause
	Resources  ResourceClause
	Conditions condition.Set
}

// result converts the statement's Effect into the matching CheckResult.
func (s Statement) result() CheckResult {
	if s.Effect == EffectDeny {
		return Deny
	}
	return Allow
}

// CheckAction evaluates the statement against an action/resource pair and
// a context, skipping the principal gate entirely (spec.md §4.9).
func (s Statement) CheckAction(ctx Context, action model.Action, resource model.ARN) (CheckResult, error) {
	return s.evaluate(ctx, nil, action, resource)
}

// Check evaluates the statement against a full request including a
// principal.
func (s Statement) Check(ctx Context, principal model.Principal, action model.Action, resource model.ARN) (CheckResult, error) {
	return s.evaluate(ctx, &principal, action, resource)
}

// evaluate runs the fixed principal -> action -> resource -> condition
// sequence. Each gate independently yields Unspecified on mismatch; only
// a condition-set error propagates.
func (s Statement) evaluate(ctx Context, principal *model.Principal, action model.Action, resource model.ARN) (CheckResult, error) {
	if principal != nil {
		if !s.Principals.Matches(*principal) {
			return Unspecified, nil
		}
	}

	if !s.Actions.Matches(action) {
		return Unspecified, nil
	}

	if !s.Resources.Matches(resource) {
		return Unspecified, nil
	}

	values := ctx.Effective(resource)
	ok, err := s.Conditions.Matches(values)
	if err != nil {
		return Unspecified, err
	}
	if !ok {
		return Unspecified, nil
	}

	return s.result(), nil
}
