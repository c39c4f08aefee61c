package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIsValidUUID(t *testing.T) {
	token := NewToken()
	_, err := uuid.Parse(token)
	require.NoError(t, err)
}

func TestNewTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token := NewToken()
		assert.False(t, seen[token], "令牌重复: %s", token)
		seen[token] = true
	}
}
