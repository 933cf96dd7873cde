package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundtrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.TrySave("chat_id.txt", []byte("-100123")))

	data, err := s.TryRead("chat_id.txt")
	require.NoError(t, err)
	assert.Equal(t, "-100123", string(data))
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.TrySave("template.json", []byte("{}")))
	require.NoError(t, s.TrySave("template.json", []byte(`{"title":"x"}`)))

	data, err := s.TryRead("template.json")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, string(data))
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.TryRead("nope.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreKeyCannotEscape(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.TrySave("../escape.txt", []byte("x")))

	// The value lands inside the data directory regardless of the key.
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}

func TestSQLiteLogRecordAndText(t *testing.T) {
	l, err := OpenMessageLog(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	defer l.Close()

	ctx := t.Context()
	require.NoError(t, l.Record(ctx, -100123, 7, "Новая заявка\nTopic: Wifi"))

	text, err := l.Text(ctx, -100123, 7)
	require.NoError(t, err)
	assert.Equal(t, "Новая заявка\nTopic: Wifi", text)
}

func TestSQLiteLogOverwrite(t *testing.T) {
	l, err := OpenMessageLog(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	defer l.Close()

	ctx := t.Context()
	require.NoError(t, l.Record(ctx, 1, 2, "first"))
	require.NoError(t, l.Record(ctx, 1, 2, "second"))

	text, err := l.Text(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestSQLiteLogMissingMessage(t *testing.T) {
	l, err := OpenMessageLog(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Text(t.Context(), 1, 99)
	assert.Error(t, err)
}
