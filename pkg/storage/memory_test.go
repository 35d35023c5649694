package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFetchNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Fetch(context.Background(), "missing.xlsx")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.xlsx", []byte("v1")))
	require.NoError(t, s.Put(ctx, "a.xlsx", []byte("v2")))

	data, err := s.Fetch(ctx, "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	src := []byte("data")
	require.NoError(t, s.Put(ctx, "a.xlsx", src))
	src[0] = 'X'

	data, err := s.Fetch(ctx, "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	data[0] = 'Y'
	again, err := s.Fetch(ctx, "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), again)
}
