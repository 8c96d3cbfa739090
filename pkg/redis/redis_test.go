package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/ImAlagar/zohra-admin-core/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSnapshotRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, found, err := client.GetSnapshot(ctx, "pricing")
	require.NoError(t, err)
	require.False(t, found, "expected miss before set")

	require.NoError(t, client.SetSnapshot(ctx, "pricing", `[{"id":"s1"}]`, time.Minute))

	payload, found, err := client.GetSnapshot(ctx, "pricing")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[{"id":"s1"}]`, payload)
}

func TestDropSnapshotInvalidates(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetSnapshot(ctx, "pricing", "x", time.Minute))
	require.NoError(t, client.DropSnapshot(ctx, "pricing", "catalog"))

	_, found, err := client.GetSnapshot(ctx, "pricing")
	require.NoError(t, err)
	require.False(t, found, "expected miss after drop")

	require.NoError(t, client.DropSnapshot(ctx))
}

func TestSnapshotKeyNamespacing(t *testing.T) {
	client := newTestClient(t)
	require.Equal(t, "zohra:snapshot:pricing", client.SnapshotKey("pricing"))
	require.Equal(t, "zohra:snapshot", client.SnapshotKey(" "))
}

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	require.Error(t, err)
}
