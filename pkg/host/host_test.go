package host

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTextRequestJSON(t *testing.T) {
	data, err := json.Marshal(TextRequest("hello"))
	require.NoError(t, err)
	require.JSONEq(t, `{"hash":null,"kind":"Text","content":"hello"}`, string(data))
}

func TestHashContent(t *testing.T) {
	a := HashContent("hello")
	require.Len(t, a, 16)
	require.Equal(t, a, HashContent("hello"))
	require.NotEqual(t, a, HashContent("hello "))
}

func TestFileChannel_IgnoreAndConsume(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	ctx := context.Background()

	require.NoError(t, ch.IgnoreNextCapture(ctx, TextRequest("copied by app")))

	pending, err := ch.Pending()
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Nil(t, pending.Hash)
	require.Equal(t, ClipKindText, pending.Kind)
	require.Equal(t, "copied by app", pending.Content)

	matched, err := ch.Consume("copied by app")
	require.NoError(t, err)
	require.True(t, matched)

	// A request suppresses a single capture only.
	matched, err = ch.Consume("copied by app")
	require.NoError(t, err)
	require.False(t, matched)
}

func TestFileChannel_ConsumeMismatchStillClears(t *testing.T) {
	ch := NewFileChannel(t.TempDir())

	require.NoError(t, ch.IgnoreNextCapture(context.Background(), TextRequest("ours")))

	matched, err := ch.Consume("someone else's text")
	require.NoError(t, err)
	require.False(t, matched)

	pending, err := ch.Pending()
	require.NoError(t, err)
	require.Nil(t, pending)
}

func TestFileChannel_ConsumeByHash(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	hash := HashContent("payload")

	req := IgnoreRequest{Hash: &hash, Kind: ClipKindText, Content: "ignored when hash is set"}
	require.NoError(t, ch.IgnoreNextCapture(context.Background(), req))

	matched, err := ch.Consume("payload")
	require.NoError(t, err)
	require.True(t, matched)
}

func TestFileChannel_ExpiredRequest(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ch.now = func() time.Time { return start }

	require.NoError(t, ch.IgnoreNextCapture(context.Background(), TextRequest("stale")))

	ch.now = func() time.Time { return start.Add(PendingTTL + time.Second) }
	matched, err := ch.Consume("stale")
	require.NoError(t, err)
	require.False(t, matched)
}

func TestFileChannel_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ch := NewFileChannel(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ch.IgnoreNextCapture(ctx, TextRequest("x"))
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dir, ignoreFile))
	require.True(t, os.IsNotExist(statErr))
}

func TestFileChannel_CorruptRequestIsDropped(t *testing.T) {
	dir := t.TempDir()
	ch := NewFileChannel(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ignoreFile), []byte("{not json"), 0600))

	_, err := ch.Consume("anything")
	require.Error(t, err)

	matched, err := ch.Consume("anything")
	require.NoError(t, err)
	require.False(t, matched)
}

func TestFileChannel_RegisterLifecycle(t *testing.T) {
	ch := NewFileChannel(filepath.Join(t.TempDir(), "nested", "state"))

	require.False(t, ch.Running())
	require.NoError(t, ch.Register(4242, time.Second))
	require.True(t, ch.Running())

	require.NoError(t, ch.IgnoreNextCapture(context.Background(), TextRequest("x")))
	require.NoError(t, ch.Unregister())
	require.False(t, ch.Running())

	pending, err := ch.Pending()
	require.NoError(t, err)
	require.Nil(t, pending)

	// Unregistering twice is harmless.
	require.NoError(t, ch.Unregister())
}

func TestFileChannel_StaleMarker(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ch.now = func() time.Time { return start }

	require.NoError(t, ch.Register(4242, time.Second))
	require.True(t, ch.Running())

	// A host killed without unregistering stops sending heartbeats.
	ch.now = func() time.Time { return start.Add(MarkerTTL + time.Second) }
	require.False(t, ch.Running())

	require.NoError(t, ch.Heartbeat())
	require.True(t, ch.Running())
}

func TestFileChannel_StaleMarkerSlowInterval(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ch.now = func() time.Time { return start }

	require.NoError(t, ch.Register(4242, time.Minute))

	ch.now = func() time.Time { return start.Add(2 * time.Minute) }
	require.True(t, ch.Running())

	ch.now = func() time.Time { return start.Add(3*time.Minute + time.Second) }
	require.False(t, ch.Running())
}

func TestFileChannel_HeartbeatRequiresRegister(t *testing.T) {
	ch := NewFileChannel(t.TempDir())
	require.Error(t, ch.Heartbeat())

	require.NoError(t, ch.Register(1, time.Second))
	require.NoError(t, ch.Unregister())
	require.Error(t, ch.Heartbeat())
}

func TestFileChannel_RunningAcrossChannels(t *testing.T) {
	dir := t.TempDir()
	hostSide := NewFileChannel(dir)
	appSide := NewFileChannel(dir)

	require.False(t, appSide.Running())
	require.NoError(t, hostSide.Register(os.Getpid(), time.Second))
	require.True(t, appSide.Running())
	require.NoError(t, hostSide.Unregister())
	require.False(t, appSide.Running())
}
