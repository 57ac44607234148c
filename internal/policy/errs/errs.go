// SPDX-License-Identifier: Apache-2.0

// Package errs defines the closed set of error kinds the policy engine can
// raise, each carrying a stable oops.Code so callers can distinguish
// "policy malformed" from "context value ill-typed" from a plain
// Unspecified decision without string-matching error text.
package errs

import "github.com/samber/oops"

// Error codes, one per kind in the error-handling design.
const (
	CodeMissingPrefix  = "MISSING_PREFIX"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeTypeMismatch   = "TYPE_MISMATCH"
	CodeTooManyValues  = "TOO_MANY_VALUES"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeSchemaError    = "SCHEMA_ERROR"
)

// MissingPrefix reports that an ARN did not start with "arn:".
func MissingPrefix(raw string) error {
	return oops.Code(CodeMissingPrefix).
		With("value", raw).
		Errorf("arn: missing required \"arn:\" prefix")
}

// InvalidFormat reports a malformed ARN, Action, Version, or condition token.
func InvalidFormat(what, raw string) error {
	return oops.Code(CodeInvalidFormat).
		With("what", what).
		With("value", raw).
		Errorf("%s: invalid format %q", what, raw)
}

// TypeMismatch reports that a comparator could not parse an operand as its
// required type.
func TypeMismatch(operator, operand string) error {
	return oops.Code(CodeTypeMismatch).
		With("operator", operator).
		With("operand", operand).
		Errorf("%s: operand %q has the wrong type", operator, operand)
}

// TooManyValues reports a quantifier or operator given a cardinality it
// cannot handle (e.g. Null with more than one target).
func TooManyValues(quantifier string, count int) error {
	return oops.Code(CodeTooManyValues).
		With("quantifier", quantifier).
		With("count", count).
		Errorf("%s: expected exactly one target value, got %d", quantifier, count)
}

// NotImplemented reports an operator the host chooses not to support.
func NotImplemented(name string) error {
	return oops.Code(CodeNotImplemented).
		With("operator", name).
		Errorf("operator %q is not implemented", name)
}

// SchemaError reports a JSON projection encountering an unexpected shape.
func SchemaError(where, reason string) error {
	return oops.Code(CodeSchemaError).
		With("where", where).
		Errorf("%s: %s", where, reason)
}

// Is reports whether err is an oops error carrying the given code.
func Is(err error, code string) bool {
	if err == nil {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Code() == code
}

func IsMissingPrefix(err error) bool  { return Is(err, CodeMissingPrefix) }
func IsInvalidFormat(err error) bool  { return Is(err, CodeInvalidFormat) }
func IsTypeMismatch(err error) bool   { return Is(err, CodeTypeMismatch) }
func IsTooManyValues(err error) bool  { return Is(err, CodeTooManyValues) }
func IsNotImplemented(err error) bool { return Is(err, CodeNotImplemented) }
func IsSchemaError(err error) bool    { return Is(err, CodeSchemaError) }
