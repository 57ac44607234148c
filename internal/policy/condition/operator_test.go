// SPDX-License-Identifier: Apache-2.0

package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultgate/iampolicy/internal/policy/condition"
	"github.com/vaultgate/iampolicy/internal/policy/errs"
)

func TestOperator_StringFamily(t *testing.T) {
	ok, err := condition.StringEquals.Apply("infra", "infra")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.StringNotEquals.Apply("infra", "infra")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = condition.StringEqualsIgnoreCase.Apply("Infra", "infra")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.StringLike.Apply("s3:GetObject", "s3:Get*")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.StringNotLike.Apply("s3:GetObject", "s3:Put*")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOperator_NumericFamily(t *testing.T) {
	ok, err := condition.NumericLessThan.Apply("3", "4")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.NumericGreaterThanEquals.Apply("4", "4")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = condition.NumericEquals.Apply("1.1.1", "1")
	require.Error(t, err)
	assert.True(t, errs.IsTypeMismatch(err))
}

func TestOperator_DateFamily(t *testing.T) {
	ok, err := condition.DateLessThan.Apply("2020-01-01T00:00:00Z", "2021-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = condition.DateEquals.Apply("2020-01-01T00:00:00", "2021-01-01T00:00:00Z")
	require.Error(t, err)
	assert.True(t, errs.IsTypeMismatch(err))
}

func TestOperator_Bool(t *testing.T) {
	ok, err := condition.Bool.Apply("true", "true")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = condition.Bool.Apply("yes", "true")
	require.Error(t, err)
}

func TestOperator_BinaryEquals_TolerantPadding(t *testing.T) {
	ok, err := condition.BinaryEquals.Apply("dGVzdA==", "dGVzdA")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOperator_IpAddress(t *testing.T) {
	ok, err := condition.IpAddress.Apply("203.0.113.5", "203.0.113.0/24")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.NotIpAddress.Apply("198.51.100.5", "203.0.113.0/24")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = condition.IpAddress.Apply("203.0.113.0/24", "203.0.113.0/24")
	require.Error(t, err)
}

func TestOperator_Arn(t *testing.T) {
	ok, err := condition.ArnEquals.Apply("arn:aws:s3:::bucket", "arn:aws:s3:::bucket")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.ArnLike.Apply("arn:aws:s3:::bucket/foo", "arn:aws:s3:::bucket/*")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = condition.ArnLike.Apply("arn:aws:s3:::bucket/foo", "*")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseOperator_Unknown(t *testing.T) {
	_, err := condition.ParseOperator("NotARealOperator")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFormat(err))
}

func TestOperator_NotSiblingsAreComplements(t *testing.T) {
	v, tgt := "infra", "sre"
	ok1, err1 := condition.StringEquals.Apply(v, tgt)
	ok2, err2 := condition.StringNotEquals.Apply(v, tgt)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ok1, !ok2)
}
