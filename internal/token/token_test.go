package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/leavedesk/internal/storage"
)

func TestStore(t *testing.T) {
	s := New(storage.NewMemory())

	_, ok := s.Get()
	assert.False(t, ok)

	require.NoError(t, s.Set("t1", 7))
	for i := 0; i < 3; i++ {
		tok, ok := s.Get()
		assert.True(t, ok)
		assert.Equal(t, "t1", tok, "repeated reads return the same value")
	}

	require.NoError(t, s.Set("t2", 7))
	tok, _ := s.Get()
	assert.Equal(t, "t2", tok)

	require.NoError(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestStoreSharesStorage(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, New(kv).Set("t1", 1))

	tok, ok := New(kv).Get()
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)
}

func TestStoreOverride(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv)
	require.NoError(t, s.Set("stored", 7))

	o := s.WithOverride("from-env")
	tok, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "from-env", tok)

	require.NoError(t, o.Clear())
	tok, _ = o.Get()
	assert.Equal(t, "from-env", tok)
	_, ok = s.Get()
	assert.False(t, ok)

	empty := s.WithOverride("")
	_, ok = empty.Get()
	assert.False(t, ok)
}
