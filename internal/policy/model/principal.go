// SPDX-License-Identifier: Apache-2.0

package model

import "strings"

// PrincipalKind tags which of the four Principal variants is populated.
type PrincipalKind int

const (
	PrincipalAWS PrincipalKind = iota
	PrincipalFederated
	PrincipalService
	PrincipalCanonicalUser
)

func (k PrincipalKind) String() string {
	switch k {
	case PrincipalAWS:
		return "AWS"
	case PrincipalFederated:
		return "Federated"
	case PrincipalService:
		return "Service"
	case PrincipalCanonicalUser:
		return "CanonicalUser"
	default:
		return "Unknown"
	}
}

// Principal is a closed, tagged union over the four JSON IAM principal
// forms. Exactly one field is meaningful, selected by Kind.
type Principal struct {
	Kind          PrincipalKind
	AWS           ARN
	Federated     string
	Service       string
	CanonicalUser string
}

// NewAWSPrincipal builds an AWS(ARN) principal.
func NewAWSPrincipal(arn ARN) Principal {
	return Principal{Kind: PrincipalAWS, AWS: arn}
}

// NewFederatedPrincipal builds a Federated(string) principal.
func NewFederatedPrincipal(id string) Principal {
	return Principal{Kind: PrincipalFederated, Federated: id}
}

// NewServicePrincipal builds a Service(string) principal.
func NewServicePrincipal(id string) Principal {
	return Principal{Kind: PrincipalService, Service: id}
}

// NewCanonicalUserPrincipal builds a CanonicalUser(string) principal.
func NewCanonicalUserPrincipal(id string) Principal {
	return Principal{Kind: PrincipalCanonicalUser, CanonicalUser: id}
}

// NormalizeAWSAccount rewrites a bare account-number string into the
// canonical root-user ARN form, per spec.md §3: "a bare-digit value under
// AWS is normalized to arn:aws:iam::<digits>:root". Non-digit strings
// (already ARN-shaped or otherwise) pass through unchanged.
func NormalizeAWSAccount(s string) string {
	if s == "" {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return "arn:aws:iam::" + s + ":root"
}

// payload returns the string payload for the non-AWS variants, used by
// constraint matching; the AWS variant's payload is its raw ARN string.
func (p Principal) payload() string {
	switch p.Kind {
	case PrincipalAWS:
		return p.AWS.Raw()
	case PrincipalFederated:
		return p.Federated
	case PrincipalService:
		return p.Service
	case PrincipalCanonicalUser:
		return p.CanonicalUser
	default:
		return ""
	}
}

// Payload exposes the variant's string payload for glob matching.
func (p Principal) Payload() string { return p.payload() }

// String renders the principal in a debug-friendly "Kind(payload)" form.
func (p Principal) String() string {
	var b strings.Builder
	b.WriteString(p.Kind.String())
	b.WriteByte('(')
	b.WriteString(p.payload())
	b.WriteByte(')')
	return b.String()
}
