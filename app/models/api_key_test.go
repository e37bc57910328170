package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyIssue(t *testing.T) {
	k := &APIKey{DeveloperID: 1, Name: "production"}

	key, err := k.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.True(t, strings.HasPrefix(key, "jag_"))
	assert.NotEmpty(t, k.KeyHash)
	assert.Equal(t, key[:16], k.KeyPrefix)
	assert.True(t, k.Active)
	assert.Nil(t, k.LastUsedAt)
	assert.Equal(t, HashAPIKey(key), k.KeyHash)
}

func TestAPIKeyIssueUnique(t *testing.T) {
	a := &APIKey{DeveloperID: 1, Name: "a"}
	b := &APIKey{DeveloperID: 1, Name: "b"}

	keyA, err := a.IssueAPIKey()
	require.NoError(t, err)
	keyB, err := b.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, keyA, keyB)
	assert.NotEqual(t, a.KeyHash, b.KeyHash)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("jag_abc"), HashAPIKey("  jag_abc \n"))
}

func TestAPIKeyTouchUsage(t *testing.T) {
	k := &APIKey{DeveloperID: 1, Name: "touch"}
	_, err := k.IssueAPIKey()
	require.NoError(t, err)

	k.TouchUsage()
	assert.NotNil(t, k.LastUsedAt)
}
