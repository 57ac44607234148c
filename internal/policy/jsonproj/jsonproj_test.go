// SPDX-License-Identifier: Apache-2.0

package jsonproj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultgate/iampolicy/internal/policy"
	"github.com/vaultgate/iampolicy/internal/policy/errs"
	"github.com/vaultgate/iampolicy/internal/policy/jsonproj"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

func TestParse_VersionAccepted(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Version": "2012-10-17",
		"Statement": {"Effect":"Allow","Action":"*","Resource":"*"}
	}`))
	require.NoError(t, err)
	assert.True(t, pol.HasVersion)
	assert.Equal(t, policy.Version2012, pol.Version)
}

func TestParse_VersionRejectsUnknown(t *testing.T) {
	_, err := jsonproj.Parse([]byte(`{
		"Version": "2026-01-01",
		"Statement": {"Effect":"Allow","Action":"*","Resource":"*"}
	}`))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFormat(err))
}

func TestParse_BothActionAndNotActionIsSchemaError(t *testing.T) {
	_, err := jsonproj.Parse([]byte(`{
		"Statement": {"Effect":"Allow","Action":"s3:*","NotAction":"s3:DeleteBucket","Resource":"*"}
	}`))
	require.Error(t, err)
	assert.True(t, errs.IsSchemaError(err))
}

func TestParse_NeitherActionNorNotActionIsSchemaError(t *testing.T) {
	_, err := jsonproj.Parse([]byte(`{
		"Statement": {"Effect":"Allow","Resource":"*"}
	}`))
	require.Error(t, err)
	assert.True(t, errs.IsSchemaError(err))
}

func TestParse_StatementArray(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": [
			{"Effect":"Allow","Action":"a:b","Resource":"*"},
			{"Effect":"Deny","Action":"c:d","Resource":"*"}
		]
	}`))
	require.NoError(t, err)
	assert.Len(t, pol.Statements, 2)
}

func TestParse_PrincipalWildcard(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": {"Effect":"Allow","Principal":"*","Action":"*","Resource":"*"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, policy.PrincipalPresent, pol.Statements[0].Principals.Presence)
}

func TestParse_PrincipalObjectMultipleKeys(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": {
			"Effect":"Allow",
			"Principal": {"AWS":["123456789012","arn:aws:iam::999999999999:user/bob"], "Service":"ec2.amazonaws.com"},
			"Action":"*","Resource":"*"
		}
	}`))
	require.NoError(t, err)
	assert.Len(t, pol.Statements[0].Principals.Constraints, 3)
}

func TestParse_ConditionUnknownOperatorIsError(t *testing.T) {
	_, err := jsonproj.Parse([]byte(`{
		"Statement": {
			"Effect":"Allow","Action":"*","Resource":"*",
			"Condition": {"NotARealOperator": {"aws:Key": "value"}}
		}
	}`))
	require.Error(t, err)
}

func TestParseContext_GlobalAndResourceOverlay(t *testing.T) {
	ctx, err := jsonproj.ParseContext([]byte(`{
		"global": {"aws:Key": "v1"},
		"resources": {"arn:aws:s3:::bucket": {"aws:Key": ["v2"]}}
	}`))
	require.NoError(t, err)

	resourceValues := ctx.Effective(mustARN(t, "arn:aws:s3:::bucket"))
	assert.Equal(t, []string{"v2"}, resourceValues.Values("aws:Key"))

	otherValues := ctx.Effective(mustARN(t, "arn:aws:s3:::other"))
	assert.Equal(t, []string{"v1"}, otherValues.Values("aws:Key"))
}

func mustARN(t *testing.T, s string) model.ARN {
	t.Helper()
	parsed, err := model.ParseARN(s)
	require.NoError(t, err)
	return parsed
}
