package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := Setup(ctx, &Config{Addr: mr.Addr(), PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set("greeting", map[string]string{"hello": "world"}, time.Minute))

	got, err := client.Get("greeting")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, got)
	assert.True(t, mr.TTL("greeting") > 0)

	require.NoError(t, client.Del("greeting"))
	got, err = client.Get("greeting")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetup_Unreachable(t *testing.T) {
	_, err := Setup(context.Background(), &Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
