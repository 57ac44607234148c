// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultgate/iampolicy/internal/policy/model"
)

func TestNormalizeAWSAccount_BareDigits(t *testing.T) {
	assert.Equal(t, "arn:aws:iam::123456789012:root", model.NormalizeAWSAccount("123456789012"))
}

func TestNormalizeAWSAccount_PassThrough(t *testing.T) {
	assert.Equal(t, "arn:aws:iam::123456789012:user/bob", model.NormalizeAWSAccount("arn:aws:iam::123456789012:user/bob"))
	assert.Equal(t, "*", model.NormalizeAWSAccount("*"))
	assert.Equal(t, "", model.NormalizeAWSAccount(""))
}

func TestPrincipal_Variants(t *testing.T) {
	arn, err := model.ParseARN("arn:aws:iam::123456789012:root")
	require.NoError(t, err)

	p := model.NewAWSPrincipal(arn)
	assert.Equal(t, model.PrincipalAWS, p.Kind)
	assert.Equal(t, arn.Raw(), p.Payload())

	f := model.NewFederatedPrincipal("https://idp.example.com")
	assert.Equal(t, "https://idp.example.com", f.Payload())

	s := model.NewServicePrincipal("ec2.amazonaws.com")
	assert.Equal(t, "ec2.amazonaws.com", s.Payload())

	c := model.NewCanonicalUserPrincipal("79a59df900b949e55d96a1e698fbacedfd6e09d98eacf8f8d5218e7cd47ef2be")
	assert.Contains(t, c.String(), "CanonicalUser")
}
