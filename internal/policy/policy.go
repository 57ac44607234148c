// SPDX-License-Identifier: Apache-2.0

package policy

import "github.com/vaultgate/iampolicy/internal/policy/model"

// Version is the policy-language version a Policy document declares.
// Only the two documented constants are valid; any other string fails at
// projection time.
type Version string

const (
	Version2008 Version = "2008-10-17"
	Version2012 Version = "2012-10-17"
)

// Policy is an ordered sequence of Statements under an optional version
// and id. Statement order does not affect the final decision — the
// reducer is commutative across Deny-overrides-Allow-overrides-
// Unspecified — but stable order aids diagnostics.
type Policy struct {
	Version    Version
	HasVersion bool
	ID         string
	Statements []Statement
}

// CheckAction folds CheckAction across every statement. Once a Deny has
// been observed, only Deny-effect statements can change the outcome, so
// they are the only ones still evaluated (spec.md §4.11); any statement
// error short-circuits the fold.
func (p Policy) CheckAction(ctx Context, action model.Action, resource model.ARN) (CheckResult, error) {
	return fold(p.Statements, func(s Statement) (CheckResult, error) {
		return s.CheckAction(ctx, action, resource)
	})
}

// Check folds Check across every statement, gating each on the supplied
// principal as well.
func (p Policy) Check(ctx Context, principal model.Principal, action model.Action, resource model.ARN) (CheckResult, error) {
	return fold(p.Statements, func(s Statement) (CheckResult, error) {
		return s.Check(ctx, principal, action, resource)
	})
}

// fold implements the deny-overrides-allow-overrides-unspecified
// combinator, short-circuiting once a Deny is seen: from that point
// forward only effect==Deny statements are still capable of changing the
// result, so Allow-effect statements are skipped.
func fold(statements []Statement, check func(Statement) (CheckResult, error)) (CheckResult, error) {
	acc := Unspecified
	denySeen := false
	for _, s := range statements {
		if denySeen && s.Effect != EffectDeny {
			continue
		}
		r, err := check(s)
		if err != nil {
			return Unspecified, err
		}
		acc = Combine(acc, r)
		if acc == Deny {
			denySeen = true
		}
	}
	return acc, nil
}
