package logsink

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRunDir(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	dir, err := MakeRunDir(base, "search", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "search", "04.03.2026", "search_05-06-07"), dir)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}
