package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamaah_server/utils"
)

func TestRedisKVGetSetDelete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "member:JMH-000001", []byte(`{"a":1}`)))
	val, err := kv.Get(ctx, "member:JMH-000001")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(val))

	require.NoError(t, kv.Delete(ctx, "member:JMH-000001"))
	_, err = kv.Get(ctx, "member:JMH-000001")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, kv.Delete(ctx, "member:JMH-000001"))
}

func TestRedisKVGetByPrefix(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification:user-1:a", []byte("1")))
	require.NoError(t, kv.Set(ctx, "notification:user-1:b", []byte("2")))
	require.NoError(t, kv.Set(ctx, "notification:user-2:c", []byte("3")))
	require.NoError(t, kv.Set(ctx, "timeline:x", []byte("4")))

	entries, err := kv.GetByPrefix(ctx, "notification:user-1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []byte("1"), entries["notification:user-1:a"])
	assert.Equal(t, []byte("2"), entries["notification:user-1:b"])

	empty, err := kv.GetByPrefix(ctx, "nothing:")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
