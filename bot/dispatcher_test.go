package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeEngine struct {
	calls    int
	sessions []string
	texts    []string
	reply    string
	err      error
}

func (f *fakeEngine) Handle(ctx context.Context, sessionID, text string) (string, error) {
	f.calls++
	f.sessions = append(f.sessions, sessionID)
	f.texts = append(f.texts, text)
	return f.reply, f.err
}

func TestDispatcherForwardsUpdate(t *testing.T) {
	engine := &fakeEngine{reply: "siguiente paso"}
	d := NewDispatcher(engine, discardLogger())

	reply, ok := d.Dispatch(context.Background(), 1, 42, "hola")
	require.True(t, ok)
	assert.Equal(t, "siguiente paso", reply)

	require.Equal(t, 1, engine.calls)
	assert.Equal(t, "42", engine.sessions[0])
	assert.Equal(t, "hola", engine.texts[0])
}

func TestDispatcherIgnoresDuplicateUpdates(t *testing.T) {
	engine := &fakeEngine{reply: "ok"}
	d := NewDispatcher(engine, discardLogger())
	ctx := context.Background()

	_, ok := d.Dispatch(ctx, 7, 42, "hola")
	require.True(t, ok)

	// Same update id redelivered: acknowledged, not reprocessed.
	reply, ok := d.Dispatch(ctx, 7, 42, "hola")
	assert.False(t, ok)
	assert.Empty(t, reply)
	assert.Equal(t, 1, engine.calls)

	// A new update id goes through.
	_, ok = d.Dispatch(ctx, 8, 42, "hola")
	assert.True(t, ok)
	assert.Equal(t, 2, engine.calls)
}

func TestDispatcherMasksEngineErrors(t *testing.T) {
	engine := &fakeEngine{err: errors.New("mongo down")}
	d := NewDispatcher(engine, discardLogger())

	reply, ok := d.Dispatch(context.Background(), 1, 42, "hola")
	require.True(t, ok)
	assert.NotContains(t, reply, "mongo")
	assert.Contains(t, reply, "error inesperado")
}

func TestSeenSetEvictsOldestEntries(t *testing.T) {
	s := newSeenSet(3)

	for i := int64(1); i <= 4; i++ {
		require.True(t, s.add(i), "id %d", i)
	}

	// id 1 was evicted when 4 came in, so it reads as new again.
	assert.True(t, s.add(1))
	assert.False(t, s.add(4))
}

func TestDispatcherSeparateChatsSeparateSessions(t *testing.T) {
	engine := &fakeEngine{reply: "ok"}
	d := NewDispatcher(engine, discardLogger())
	ctx := context.Background()

	for i, chat := range []int64{10, 20, 30} {
		_, ok := d.Dispatch(ctx, int64(i+1), chat, "hola")
		require.True(t, ok)
	}

	assert.Equal(t, []string{"10", "20", "30"}, engine.sessions)
}

func TestSanitizeEscapesReservedChars(t *testing.T) {
	assert.Equal(t, `hola`, sanitize("hola", false))
	assert.Equal(t, `1\. opción`, sanitize("1. opción", false))
	assert.Equal(t, `\(10\.50\)`, sanitize("(10.50)", false))
	assert.Equal(t, `a\_b\*c`, sanitize("a_b*c", false))
}

func TestCapLength(t *testing.T) {
	assert.Equal(t, "hola", capLength("hola", 10))
	assert.Equal(t, "ñoñ", capLength("ñoño", 3), "caps by runes, not bytes")

	long := strings.Repeat("x", maxMessageLen+10)
	assert.Len(t, []rune(capLength(long, maxMessageLen)), maxMessageLen)
}
