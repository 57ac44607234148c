// SPDX-License-Identifier: Apache-2.0

// Package constraint implements the pattern-vs-subject matchers a
// Statement gates on: ActionConstraint, ResourceConstraint, and
// PrincipalConstraint.
package constraint

import (
	"github.com/vaultgate/iampolicy/internal/policy/globmatch"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// ActionKind selects between the two ActionConstraint variants.
type ActionKind int

const (
	ActionAny ActionKind = iota
	ActionPattern
)

// Action is either Any (matches every action) or Pattern(Action), whose
// service and name halves are glob-matched independently.
type Action struct {
	Kind    ActionKind
	Pattern model.Action
}

// AnyAction returns the Any constraint.
func AnyAction() Action { return Action{Kind: ActionAny} }

// PatternAction returns a Pattern constraint over a.
func PatternAction(a model.Action) Action { return Action{Kind: ActionPattern, Pattern: a} }

// Matches reports whether action satisfies the constraint.
func (c Action) Matches(action model.Action) bool {
	if c.Kind == ActionAny {
		return true
	}
	return globmatch.Match(c.Pattern.Service(), action.Service()) &&
		globmatch.Match(c.Pattern.Name(), action.Name())
}

// ResourceKind selects between the two ResourceConstraint variants.
type ResourceKind int

const (
	ResourceAny ResourceKind = iota
	ResourcePattern
)

// Resource is either Any or Pattern(ARN), glob-matched against the raw
// ARN string.
type Resource struct {
	Kind    ResourceKind
	Pattern model.ARN
}

// AnyResource returns the Any constraint.
func AnyResource() Resource { return Resource{Kind: ResourceAny} }

// PatternResource returns a Pattern constraint over a.
func PatternResource(a model.ARN) Resource { return Resource{Kind: ResourcePattern, Pattern: a} }

// Matches reports whether arn satisfies the constraint.
func (c Resource) Matches(arn model.ARN) bool {
	if c.Kind == ResourceAny {
		return true
	}
	return globmatch.Match(c.Pattern.Raw(), arn.Raw())
}

// PrincipalKind selects between the three PrincipalConstraint variants.
type PrincipalKind int

const (
	PrincipalAny PrincipalKind = iota
	PrincipalAWSAny
	PrincipalPattern
)

// Principal is Any (matches every principal), AWSAny (matches any
// AWS-typed principal regardless of payload), or Pattern(Principal),
// which matches only a principal of the same variant whose payload
// glob-matches the pattern's. When the pattern is AWS and its payload is
// a bare account number, it is normalized to the canonical root-user ARN
// before matching, so "123456789012" and
// "arn:aws:iam::123456789012:root" behave identically.
type Principal struct {
	Kind    PrincipalKind
	Pattern model.Principal
}

// AnyPrincipal returns the Any constraint.
func AnyPrincipal() Principal { return Principal{Kind: PrincipalAny} }

// AWSAnyPrincipal returns the AWSAny constraint.
func AWSAnyPrincipal() Principal { return Principal{Kind: PrincipalAWSAny} }

// PatternPrincipal returns a Pattern constraint over p. AWS-kind payloads
// that are bare account numbers are normalized eagerly.
func PatternPrincipal(p model.Principal) Principal {
	if p.Kind == model.PrincipalAWS {
		normalized := model.NormalizeAWSAccount(p.AWS.Raw())
		if normalized != p.AWS.Raw() {
			if arn, err := model.ParseARN(normalized); err == nil {
				p = model.NewAWSPrincipal(arn)
			}
		}
	}
	return Principal{Kind: PrincipalPattern, Pattern: p}
}

// Matches reports whether principal satisfies the constraint. Cross-variant
// comparisons (e.g. an AWS pattern against a Service principal) never
// match.
func (c Principal) Matches(principal model.Principal) bool {
	switch c.Kind {
	case PrincipalAny:
		return true
	case PrincipalAWSAny:
		return principal.Kind == model.PrincipalAWS
	case PrincipalPattern:
		if c.Pattern.Kind != principal.Kind {
			return false
		}
		return globmatch.Match(c.Pattern.Payload(), principal.Payload())
	default:
		return false
	}
}
