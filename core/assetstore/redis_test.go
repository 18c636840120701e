package assetstore_test

import (
	"context"
	"testing"

	"controller-cleaner/core/assetstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rb := assetstore.NewRedisBackendFromClient(client, "test:")
	defer rb.Close()
	ctx := context.Background()

	_, err := rb.Read(ctx, "hero")
	assert.ErrorIs(t, err, assetstore.ErrNotFound)

	require.NoError(t, rb.Write(ctx, "hero", []byte(heroDoc)))
	require.NoError(t, rb.Write(ctx, "boss", []byte(heroDoc)))

	data, err := rb.Read(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, heroDoc, string(data))
	assert.True(t, mr.Exists("test:doc:hero"))

	keys, err := rb.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hero", "boss"}, keys)

	store := assetstore.New(rb, nil)
	c, err := store.Open(ctx, "boss")
	require.NoError(t, err)
	assert.Equal(t, "Hero", c.Name)
}

func TestRedisBackend_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	rb := assetstore.NewRedisBackend(assetstore.RedisConfig{Addr: mr.Addr(), Prefix: "x:"})
	mr.Close()

	_, err := rb.List(context.Background())
	assert.Error(t, err)
}
