package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_IssueAndValidate(t *testing.T) {
	store := NewStore(time.Hour)

	token := store.Issue()
	require.NotEmpty(t, token)
	assert.True(t, store.Valid(token))
	assert.False(t, store.Valid("no-such-token"))
}

func TestStore_TokensExpire(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Unix(1700000000, 0)
	store.now = func() time.Time { return current }

	token := store.Issue()
	assert.True(t, store.Valid(token))

	current = current.Add(2 * time.Minute)
	assert.False(t, store.Valid(token))
	// Lookup of an expired token removes it.
	assert.Equal(t, 0, store.Sweep())
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Unix(1700000000, 0)
	store.now = func() time.Time { return current }

	expired := store.Issue()
	current = current.Add(30 * time.Second)
	fresh := store.Issue()
	current = current.Add(45 * time.Second)

	assert.Equal(t, 1, store.Sweep())
	assert.False(t, store.Valid(expired))
	assert.True(t, store.Valid(fresh))
}

func TestStore_Revoke(t *testing.T) {
	store := NewStore(time.Hour)
	token := store.Issue()

	store.Revoke(token)

	assert.False(t, store.Valid(token))
}
