package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSignerRoundTrip(t *testing.T) {
	signer := NewLinkSigner("test-secret", 60)
	require.True(t, signer.Enabled())

	token, err := signer.IssueUpdateToken("T-100")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, signer.VerifyUpdateToken(token, "T-100"))
}

func TestLinkSignerRejectsOtherTicket(t *testing.T) {
	signer := NewLinkSigner("test-secret", 60)
	token, err := signer.IssueUpdateToken("T-100")
	require.NoError(t, err)

	assert.Error(t, signer.VerifyUpdateToken(token, "T-200"))
}

func TestLinkSignerRejectsForeignSecret(t *testing.T) {
	issuer := NewLinkSigner("secret-a", 60)
	verifier := NewLinkSigner("secret-b", 60)

	token, err := issuer.IssueUpdateToken("T-100")
	require.NoError(t, err)

	assert.Error(t, verifier.VerifyUpdateToken(token, "T-100"))
}

func TestLinkSignerRejectsGarbage(t *testing.T) {
	signer := NewLinkSigner("test-secret", 60)
	assert.Error(t, signer.VerifyUpdateToken("not-a-token", "T-100"))
	assert.Error(t, signer.VerifyUpdateToken("", "T-100"))
}

func TestLinkSignerDisabledWithoutSecret(t *testing.T) {
	signer := NewLinkSigner("", 60)
	assert.False(t, signer.Enabled())
}
