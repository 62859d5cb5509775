package storage

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("reports/job-1/dtr.csv", []byte("Date,Total Hours"))
	require.NoError(t, err)
	assert.Equal(t, "reports/job-1/dtr.csv", rel)

	data, err := store.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, "Date,Total Hours", string(data))

	rc, err := store.Open(rel)
	require.NoError(t, err)
	streamed, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, streamed)

	require.NoError(t, store.Delete(rel))
	require.NoError(t, store.Delete(rel))
	_, err = store.Read(rel)
	assert.Error(t, err)
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../outside.csv", []byte("x"))
	assert.Error(t, err)
	_, err = store.Read("/etc/passwd")
	assert.Error(t, err)
}

func TestCleanupOlderThan(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = store.Save("old.csv", []byte("x"))
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	deleted, err = store.CleanupOlderThan(-time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, deleted)
}
