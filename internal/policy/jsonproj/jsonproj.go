// SPDX-License-Identifier: Apache-2.0

// Package jsonproj projects a parsed JSON policy document (handed in as
// bytes, already known to be well-formed JSON — tokenizing is an external
// collaborator per spec.md §1) into the internal/policy model. The
// projection is deterministic and order-free: the same document always
// yields the same Policy, and object key order never affects the result.
package jsonproj

import (
	"encoding/json"

	"github.com/vaultgate/iampolicy/internal/policy"
	"github.com/vaultgate/iampolicy/internal/policy/condition"
	"github.com/vaultgate/iampolicy/internal/policy/constraint"
	"github.com/vaultgate/iampolicy/internal/policy/errs"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

type rawPolicy struct {
	Version   *string         `json:"Version"`
	ID        *string         `json:"Id"`
	Statement json.RawMessage `json:"Statement"`
}

type rawStatement struct {
	Sid          *string                    `json:"Sid"`
	Effect       string                     `json:"Effect"`
	Principal    json.RawMessage            `json:"Principal"`
	NotPrincipal json.RawMessage            `json:"NotPrincipal"`
	Action       json.RawMessage            `json:"Action"`
	NotAction    json.RawMessage            `json:"NotAction"`
	Resource     json.RawMessage            `json:"Resource"`
	NotResource  json.RawMessage            `json:"NotResource"`
	Condition    map[string]json.RawMessage `json:"Condition"`
}

type rawPrincipalObject struct {
	AWS           json.RawMessage `json:"AWS"`
	Federated     json.RawMessage `json:"Federated"`
	Service       json.RawMessage `json:"Service"`
	CanonicalUser json.RawMessage `json:"CanonicalUser"`
}

// Parse decodes raw JSON bytes into a Policy.
func Parse(raw []byte) (policy.Policy, error) {
	var rp rawPolicy
	if err := json.Unmarshal(raw, &rp); err != nil {
		return policy.Policy{}, errs.SchemaError("policy", err.Error())
	}
	return projectPolicy(rp)
}

func projectPolicy(rp rawPolicy) (policy.Policy, error) {
	p := policy.Policy{}

	if rp.Version != nil {
		switch *rp.Version {
		case string(policy.Version2008):
			p.Version = policy.Version2008
			p.HasVersion = true
		case string(policy.Version2012):
			p.Version = policy.Version2012
			p.HasVersion = true
		default:
			return policy.Policy{}, errs.InvalidFormat("Version", *rp.Version)
		}
	}
	if rp.ID != nil {
		p.ID = *rp.ID
	}

	if len(rp.Statement) == 0 {
		return policy.Policy{}, errs.SchemaError("Policy", "missing required \"Statement\"")
	}

	rawStatements, err := decodeSingleOrArrayRaw(rp.Statement)
	if err != nil {
		return policy.Policy{}, err
	}

	statements := make([]policy.Statement, 0, len(rawStatements))
	for _, raw := range rawStatements {
		var rs rawStatement
		if err := json.Unmarshal(raw, &rs); err != nil {
			return policy.Policy{}, errs.SchemaError("Statement", err.Error())
		}
		s, err := projectStatement(rs)
		if err != nil {
			return policy.Policy{}, err
		}
		statements = append(statements, s)
	}
	p.Statements = statements

	return p, nil
}

func projectStatement(rs rawStatement) (policy.Statement, error) {
	s := policy.Statement{}
	if rs.Sid != nil {
		s.Sid = *rs.Sid
	}

	switch rs.Effect {
	case "Allow":
		s.Effect = policy.EffectAllow
	case "Deny":
		s.Effect = policy.EffectDeny
	default:
		return policy.Statement{}, errs.SchemaError("Effect", "must be \"Allow\" or \"Deny\"")
	}

	principals, err := projectPrincipalClause(rs.Principal, rs.NotPrincipal)
	if err != nil {
		return policy.Statement{}, err
	}
	s.Principals = principals

	actions, err := projectActionClause(rs.Action, rs.NotAction)
	if err != nil {
		return policy.Statement{}, err
	}
	s.Actions = actions

	resources, err := projectResourceClause(rs.Resource, rs.NotResource)
	if err != nil {
		return policy.Statement{}, err
	}
	s.Resources = resources

	if len(rs.Condition) > 0 {
		set, err := projectConditionSet(rs.Condition)
		if err != nil {
			return policy.Statement{}, err
		}
		s.Conditions = set
	}

	return s, nil
}

func projectActionClause(pos, neg json.RawMessage) (policy.ActionClause, error) {
	switch {
	case len(pos) > 0 && len(neg) > 0:
		return policy.ActionClause{}, errs.SchemaError("Statement", "both Action and NotAction present")
	case len(pos) == 0 && len(neg) == 0:
		return policy.ActionClause{}, errs.SchemaError("Statement", "neither Action nor NotAction present")
	}

	raw := pos
	negated := false
	if len(neg) > 0 {
		raw = neg
		negated = true
	}

	strs, err := decodeStringOrArray(raw)
	if err != nil {
		return policy.ActionClause{}, err
	}

	cons := make([]constraint.Action, 0, len(strs))
	for _, s := range strs {
		if s == "*" {
			cons = append(cons, constraint.AnyAction())
			continue
		}
		a, err := model.ParseAction(s)
		if err != nil {
			return policy.ActionClause{}, err
		}
		cons = append(cons, constraint.PatternAction(a))
	}

	return policy.ActionClause{Negated: negated, Constraints: cons}, nil
}

func projectResourceClause(pos, neg json.RawMessage) (policy.ResourceClause, error) {
	switch {
	case len(pos) > 0 && len(neg) > 0:
		return policy.ResourceClause{}, errs.SchemaError("Statement", "both Resource and NotResource present")
	case len(pos) == 0 && len(neg) == 0:
		return policy.ResourceClause{}, errs.SchemaError("Statement", "neither Resource nor NotResource present")
	}

	raw := pos
	negated := false
	if len(neg) > 0 {
		raw = neg
		negated = true
	}

	strs, err := decodeStringOrArray(raw)
	if err != nil {
		return policy.ResourceClause{}, err
	}

	cons := make([]constraint.Resource, 0, len(strs))
	for _, s := range strs {
		if s == "*" {
			cons = append(cons, constraint.AnyResource())
			continue
		}
		a, err := model.ParseARN(s)
		if err != nil {
			return policy.ResourceClause{}, err
		}
		cons = append(cons, constraint.PatternResource(a))
	}

	return policy.ResourceClause{Negated: negated, Constraints: cons}, nil
}

func projectPrincipalClause(pos, neg json.RawMessage) (policy.PrincipalClause, error) {
	if len(pos) > 0 && len(neg) > 0 {
		return policy.PrincipalClause{}, errs.SchemaError("Statement", "both Principal and NotPrincipal present")
	}
	if len(pos) == 0 && len(neg) == 0 {
		return policy.PrincipalClause{Presence: policy.PrincipalAbsent}, nil
	}

	raw := pos
	presence := policy.PrincipalPresent
	if len(neg) > 0 {
		raw = neg
		presence = policy.NotPrincipalPresent
	}

	cons, err := projectPrincipalValue(raw)
	if err != nil {
		return policy.PrincipalClause{}, err
	}

	return policy.PrincipalClause{Presence: presence, Constraints: cons}, nil
}

// projectPrincipalValue handles both accepted shapes: the literal string
// "*", or an object with up to four variant keys.
func projectPrincipalValue(raw json.RawMessage) ([]constraint.Principal, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString != "*" {
			return nil, errs.SchemaError("Principal", "bare string value must be \"*\"")
		}
		return []constraint.Principal{constraint.AnyPrincipal()}, nil
	}

	var obj rawPrincipalObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errs.SchemaError("Principal", "must be \"*\" or an object")
	}

	var cons []constraint.Principal

	if len(obj.AWS) > 0 {
		strs, err := decodeStringOrArray(obj.AWS)
		if err != nil {
			return nil, err
		}
		for _, s := range strs {
			if s == "*" {
				cons = append(cons, constraint.AWSAnyPrincipal())
				continue
			}
			normalized := model.NormalizeAWSAccount(s)
			arn, err := model.ParseARN(normalized)
			if err != nil {
				return nil, err
			}
			cons = append(cons, constraint.PatternPrincipal(model.NewAWSPrincipal(arn)))
		}
	}
	if len(obj.Federated) > 0 {
		strs, err := decodeStringOrArray(obj.Federated)
		if err != nil {
			return nil, err
		}
		for _, s := range strs {
			cons = append(cons, constraint.PatternPrincipal(model.NewFederatedPrincipal(s)))
		}
	}
	if len(obj.Service) > 0 {
		strs, err := decodeStringOrArray(obj.Service)
		if err != nil {
			return nil, err
		}
		for _, s := range strs {
			cons = append(cons, constraint.PatternPrincipal(model.NewServicePrincipal(s)))
		}
	}
	if len(obj.CanonicalUser) > 0 {
		strs, err := decodeStringOrArray(obj.CanonicalUser)
		if err != nil {
			return nil, err
		}
		for _, s := range strs {
			cons = append(cons, constraint.PatternPrincipal(model.NewCanonicalUserPrincipal(s)))
		}
	}

	if len(cons) == 0 {
		return nil, errs.SchemaError("Principal", "object has none of AWS/Federated/Service/CanonicalUser")
	}

	return cons, nil
}

func projectConditionSet(raw map[string]json.RawMessage) (condition.Set, error) {
	groups := make([]condition.Group, 0, len(raw))
	for key, inner := range raw {
		quant, err := condition.ParseConditionKey(key)
		if err != nil {
			return condition.Set{}, err
		}

		var keyTargets map[string]json.RawMessage
		if err := json.Unmarshal(inner, &keyTargets); err != nil {
			return condition.Set{}, errs.SchemaError("Condition", err.Error())
		}

		entries := make([]condition.Entry, 0, len(keyTargets))
		for condKey, targetsRaw := range keyTargets {
			targets, err := decodeStringOrArray(targetsRaw)
			if err != nil {
				return condition.Set{}, err
			}
			entries = append(entries, condition.Entry{Key: condKey, Targets: targets})
		}

		groups = append(groups, condition.Group{Quantifier: quant, Entries: entries})
	}
	return condition.Set{Groups: groups}, nil
}

// decodeStringOrArray decodes raw as either a JSON string (projected to a
// one-element slice) or a JSON array of strings.
func decodeStringOrArray(raw json.RawMessage) ([]string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}, nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, errs.SchemaError("value", "expected a string or array of strings")
	}
	return arr, nil
}

// decodeSingleOrArrayRaw decodes raw as either a single JSON object
// (projected to a one-element slice of raw messages) or a JSON array of
// objects, without committing to their shape.
func decodeSingleOrArrayRaw(raw json.RawMessage) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}
	return []json.RawMessage{raw}, nil
}
