// SPDX-License-Identifier: Apache-2.0

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultgate/iampolicy/internal/policy/jsonproj"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// TestNotAction_Alone exercises a statement with a bare NotAction clause
// (no Action present): it matches every action except the ones listed.
func TestNotAction_Alone(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": {"Effect":"Allow","NotAction":"s3:DeleteBucket","Resource":"*"}
	}`))
	require.NoError(t, err)

	resource := mustARN(t, "arn:aws:s3:::bucket/key")
	ctx, _ := jsonproj.ParseContext([]byte(`{}`))

	cases := []struct {
		name   string
		action string
		want   string
	}{
		{"excluded action does not match", "s3:DeleteBucket", "Unspecified"},
		{"any other action matches", "s3:GetObject", "Allow"},
		{"a different service entirely matches", "route53:GetChange", "Allow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := pol.CheckAction(ctx, mustAction(t, tc.action), resource)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.String())
		})
	}
}

// TestNotResource_Alone exercises a statement with a bare NotResource
// clause (no Resource present): it matches every resource except the
// ones listed.
func TestNotResource_Alone(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": {"Effect":"Allow","Action":"*","NotResource":"arn:aws:s3:::sensitive/*"}
	}`))
	require.NoError(t, err)

	action := mustAction(t, "s3:GetObject")
	ctx, _ := jsonproj.ParseContext([]byte(`{}`))

	cases := []struct {
		name     string
		resource string
		want     string
	}{
		{"excluded resource does not match", "arn:aws:s3:::sensitive/secret", "Unspecified"},
		{"any other resource matches", "arn:aws:s3:::public/readme", "Allow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := pol.CheckAction(ctx, action, mustARN(t, tc.resource))
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.String())
		})
	}
}

// TestNotPrincipal_Alone exercises a statement with a bare NotPrincipal
// clause: it matches every principal except the ones listed.
func TestNotPrincipal_Alone(t *testing.T) {
	pol, err := jsonproj.Parse([]byte(`{
		"Statement": {
			"Effect":"Allow","Action":"*","Resource":"*",
			"NotPrincipal": {"AWS":"arn:aws:iam::123456789012:root"}
		}
	}`))
	require.NoError(t, err)

	action := mustAction(t, "s3:GetObject")
	resource := mustARN(t, "arn:aws:s3:::bucket/key")
	ctx, _ := jsonproj.ParseContext([]byte(`{}`))

	excluded := model.NewAWSPrincipal(mustARN(t, "arn:aws:iam::123456789012:root"))
	result, err := pol.Check(ctx, excluded, action, resource)
	require.NoError(t, err)
	assert.Equal(t, "Unspecified", result.String(), "excluded principal does not match NotPrincipal")

	other := model.NewAWSPrincipal(mustARN(t, "arn:aws:iam::999999999999:root"))
	result, err = pol.Check(ctx, other, action, resource)
	require.NoError(t, err)
	assert.Equal(t, "Allow", result.String(), "any other principal matches NotPrincipal")
}
