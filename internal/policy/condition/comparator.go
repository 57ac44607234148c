// SPDX-License-Identifier: Apache-2.0

// Package condition implements the IAM condition language: typed
// comparators, the condition-operator enumeration, the nullability
// wrapper, the quantifier that lifts an operator over multi-valued context
// keys, and the condition set that ANDs everything together.
package condition

import (
	"encoding/base64"
	"math"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/vaultgate/iampolicy/internal/policy/errs"
	"github.com/vaultgate/iampolicy/internal/policy/globmatch"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// parseNumber parses s as an IEEE-754 double. Multi-dot literals such as
// "1.1.1" are rejected, and NaN never compares equal or ordered, so it is
// rejected as a TypeMismatch rather than silently treated as unordered.
func parseNumber(name, s string) (float64, error) {
	if strings.Count(s, ".") > 1 {
		return 0, errs.TypeMismatch(name, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, errs.TypeMismatch(name, s)
	}
	return f, nil
}

// compareNumeric returns -1/0/1 comparing value against target as numbers.
func compareNumeric(name, value, target string) (int, error) {
	v, err := parseNumber(name, value)
	if err != nil {
		return 0, err
	}
	t, err := parseNumber(name, target)
	if err != nil {
		return 0, err
	}
	switch {
	case v < t:
		return -1, nil
	case v > t:
		return 1, nil
	default:
		return 0, nil
	}
}

// parseDate parses s as RFC-3339 with an explicit timezone; naive
// (zone-less) datetimes are rejected, matching AWS's DateX operators.
func parseDate(name, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errs.TypeMismatch(name, s)
	}
	return t, nil
}

// compareDate returns -1/0/1 comparing value against target as RFC-3339
// instants.
func compareDate(name, value, target string) (int, error) {
	v, err := parseDate(name, value)
	if err != nil {
		return 0, err
	}
	t, err := parseDate(name, target)
	if err != nil {
		return 0, err
	}
	switch {
	case v.Before(t):
		return -1, nil
	case v.After(t):
		return 1, nil
	default:
		return 0, nil
	}
}

// parseBool accepts only the literal strings "true" and "false".
func parseBool(name, s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errs.TypeMismatch(name, s)
	}
}

// boolEquals compares value and target as booleans.
func boolEquals(value, target string) (bool, error) {
	v, err := parseBool("Bool", value)
	if err != nil {
		return false, err
	}
	t, err := parseBool("Bool", target)
	if err != nil {
		return false, err
	}
	return v == t, nil
}

// decodeBase64 tolerates missing "=" padding on either side, since AWS
// condition values are frequently supplied unpadded.
func decodeBase64(name, s string) ([]byte, error) {
	for _, pad := range []string{s, s + "=", s + "=="} {
		if b, err := base64.StdEncoding.DecodeString(pad); err == nil {
			return b, nil
		}
	}
	return nil, errs.TypeMismatch(name, s)
}

// binaryEquals decodes both sides as base64 and compares the decoded bytes.
func binaryEquals(value, target string) (bool, error) {
	v, err := decodeBase64("BinaryEquals", value)
	if err != nil {
		return false, err
	}
	t, err := decodeBase64("BinaryEquals", target)
	if err != nil {
		return false, err
	}
	return string(v) == string(t), nil
}

// ipInCIDR reports whether value (a bare IP) falls inside target (a CIDR
// network). The CIDR side enforces the documented netmask ceilings by
// virtue of net.ParseCIDR itself rejecting /33+ (v4) and /129+ (v6).
func ipInCIDR(value, target string) (bool, error) {
	ip := net.ParseIP(value)
	if ip == nil {
		return false, errs.TypeMismatch("IpAddress", value)
	}
	_, network, err := net.ParseCIDR(target)
	if err != nil {
		return false, errs.TypeMismatch("IpAddress", target)
	}
	return network.Contains(ip), nil
}

// arnEquals compares two ARNs by raw form.
func arnEquals(value, target string) (bool, error) {
	v, err := model.ParseARN(value)
	if err != nil {
		return false, errs.TypeMismatch("ArnEquals", value)
	}
	t, err := model.ParseARN(target)
	if err != nil {
		return false, errs.TypeMismatch("ArnEquals", target)
	}
	return v.Equal(t), nil
}

// arnLike glob-matches an ARN pattern against a concrete ARN's raw string.
// A literal "*" target always matches without requiring value to parse as
// an ARN, mirroring AWS's lenient handling of the universal wildcard.
func arnLike(value, target string) (bool, error) {
	if target == "*" {
		return true, nil
	}
	if _, err := model.ParseARN(value); err != nil {
		return false, errs.TypeMismatch("ArnLike", value)
	}
	return globmatch.Match(target, value), nil
}
