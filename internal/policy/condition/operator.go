// SPDX-License-Identifier: Apache-2.0

package condition

import (
	"strings"

	"github.com/vaultgate/iampolicy/internal/policy/errs"
	"github.com/vaultgate/iampolicy/internal/policy/globmatch"
)

// Operator is the closed enumeration of scalar condition predicates.
// Parsing a JSON token to an Operator is exact-match; the zero value is
// StringEquals.
type Operator int

const (
	StringEquals Operator = iota
	StringNotEquals
	StringEqualsIgnoreCase
	StringNotEqualsIgnoreCase
	StringLike
	StringNotLike

	NumericEquals
	NumericNotEquals
	NumericLessThan
	NumericLessThanEquals
	NumericGreaterThan
	NumericGreaterThanEquals

	DateEquals
	DateNotEquals
	DateLessThan
	DateLessThanEquals
	DateGreaterThan
	DateGreaterThanEquals

	Bool

	BinaryEquals

	IpAddress
	NotIpAddress

	ArnEquals
	ArnLike
	ArnNotEquals
	ArnNotLike
)

var operatorNames = map[string]Operator{
	"StringEquals":              StringEquals,
	"StringNotEquals":           StringNotEquals,
	"StringEqualsIgnoreCase":    StringEqualsIgnoreCase,
	"StringNotEqualsIgnoreCase": StringNotEqualsIgnoreCase,
	"StringLike":                StringLike,
	"StringNotLike":             StringNotLike,

	"NumericEquals":            NumericEquals,
	"NumericNotEquals":         NumericNotEquals,
	"NumericLessThan":          NumericLessThan,
	"NumericLessThanEquals":    NumericLessThanEquals,
	"NumericGreaterThan":       NumericGreaterThan,
	"NumericGreaterThanEquals": NumericGreaterThanEquals,

	"DateEquals":            DateEquals,
	"DateNotEquals":         DateNotEquals,
	"DateLessThan":          DateLessThan,
	"DateLessThanEquals":    DateLessThanEquals,
	"DateGreaterThan":       DateGreaterThan,
	"DateGreaterThanEquals": DateGreaterThanEquals,

	"Bool": Bool,

	"BinaryEquals": BinaryEquals,

	"IpAddress":    IpAddress,
	"NotIpAddress": NotIpAddress,

	"ArnEquals":    ArnEquals,
	"ArnLike":      ArnLike,
	"ArnNotEquals": ArnNotEquals,
	"ArnNotLike":   ArnNotLike,
}

var operatorStrings = func() map[Operator]string {
	m := make(map[Operator]string, len(operatorNames))
	for name, op := range operatorNames {
		m[op] = name
	}
	return m
}()

// ParseOperator looks up an operator by its exact JSON token. Unknown
// tokens fail with InvalidFormat.
func ParseOperator(name string) (Operator, error) {
	op, ok := operatorNames[name]
	if !ok {
		return 0, errs.InvalidFormat("condition operator", name)
	}
	return op, nil
}

// String renders the operator's canonical JSON token.
func (op Operator) String() string { return operatorStrings[op] }

// Apply evaluates the operator against a single context value and a single
// target, returning the match result or a TypeMismatch if either operand
// cannot be parsed as the operator's required type.
func (op Operator) Apply(value, target string) (bool, error) {
	switch op {
	case StringEquals:
		return value == target, nil
	case StringNotEquals:
		return value != target, nil
	case StringEqualsIgnoreCase:
		return strings.EqualFold(value, target), nil
	case StringNotEqualsIgnoreCase:
		return !strings.EqualFold(value, target), nil
	case StringLike:
		return globmatch.Match(target, value), nil
	case StringNotLike:
		return !globmatch.Match(target, value), nil

	case NumericEquals:
		c, err := compareNumeric(op.String(), value, target)
		return c == 0, err
	case NumericNotEquals:
		c, err := compareNumeric(op.String(), value, target)
		return c != 0, err
	case NumericLessThan:
		c, err := compareNumeric(op.String(), value, target)
		return c < 0, err
	case NumericLessThanEquals:
		c, err := compareNumeric(op.String(), value, target)
		return c <= 0, err
	case NumericGreaterThan:
		c, err := compareNumeric(op.String(), value, target)
		return c > 0, err
	case NumericGreaterThanEquals:
		c, err := compareNumeric(op.String(), value, target)
		return c >= 0, err

	case DateEquals:
		c, err := compareDate(op.String(), value, target)
		return c == 0, err
	case DateNotEquals:
		c, err := compareDate(op.String(), value, target)
		return c != 0, err
	case DateLessThan:
		c, err := compareDate(op.String(), value, target)
		return c < 0, err
	case DateLessThanEquals:
		c, err := compareDate(op.String(), value, target)
		return c <= 0, err
	case DateGreaterThan:
		c, err := compareDate(op.String(), value, target)
		return c > 0, err
	case DateGreaterThanEquals:
		c, err := compareDate(op.String(), value, target)
		return c >= 0, err

	case Bool:
		return boolEquals(value, target)

	case BinaryEquals:
		return binaryEquals(value, target)

	case IpAddress:
		return ipInCIDR(value, target)
	case NotIpAddress:
		ok, err := ipInCIDR(value, target)
		return !ok, err

	case ArnEquals:
		return arnEquals(value, target)
	case ArnLike:
		return arnLike(value, target)
	case ArnNotEquals:
		ok, err := arnEquals(value, target)
		return !ok, err
	case ArnNotLike:
		ok, err := arnLike(value, target)
		return !ok, err

	default:
		return false, errs.NotImplemented(op.String())
	}
}
