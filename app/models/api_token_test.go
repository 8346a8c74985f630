package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPITokenIssue(t *testing.T) {
	tok := &APIToken{UserID: 1}

	raw, err := tok.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.NotEmpty(t, tok.TokenHash)
	assert.NotEmpty(t, tok.TokenPrefix)
	assert.NotNil(t, tok.TokenCreatedAt)
	assert.Nil(t, tok.TokenLastUsedAt)
	assert.True(t, tok.IsActive())
	assert.Equal(t, HashAPIToken(raw), tok.TokenHash)
}

func TestAPITokenRevoke(t *testing.T) {
	tok := &APIToken{UserID: 99}
	_, err := tok.Issue()
	require.NoError(t, err)

	tok.Revoke()

	assert.False(t, tok.IsActive())
	assert.Equal(t, "", tok.TokenHash)
	assert.Equal(t, "", tok.TokenPrefix)
	assert.NotNil(t, tok.TokenRevokedAt)
}
