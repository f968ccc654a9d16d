package ollamalink

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLockExclusion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	first, err := newRunLock(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, first.Lock())

	// A second holder times out while the first holds the lock.
	second, err := newRunLock(path, 50*time.Millisecond)
	require.NoError(t, err)
	err = second.Lock()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	require.NoError(t, second.Unlock())

	// After release, the lock can be re-acquired.
	require.NoError(t, first.Unlock())

	third, err := newRunLock(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, third.Lock())
	require.NoError(t, third.Unlock())
}

func TestRunLockIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock, err := newRunLock(path, time.Second)
	require.NoError(t, err)

	// Lock twice, unlock twice: both are safe.
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock())
}
