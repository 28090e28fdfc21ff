package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VanityGen/pkg/appcfg"
)

func TestRunner_Flags(t *testing.T) {
	var stderr bytes.Buffer
	r := NewRunner(appcfg.Default())
	r.Stderr = &stderr

	assert.Equal(t, 0, r.Run([]string{"-h"}))
	assert.Contains(t, stderr.String(), "-queries")
	assert.Equal(t, 2, r.Run([]string{"-bogus"}))
}

func TestRunner_RejectsUnknownSource(t *testing.T) {
	var stderr bytes.Buffer
	r := NewRunner(appcfg.Default())
	r.Stderr = &stderr

	assert.Equal(t, 2, r.Run([]string{"-source", "mnemonic", "-logs", ""}))
	assert.Contains(t, stderr.String(), `invalid -source "mnemonic"`)
}

func TestRunner_RunsSearch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queries:\n  - text: a\n    case_sensitive: false\n"), 0o644))

	r := NewRunner(appcfg.Default())
	assert.Equal(t, 0, r.Run([]string{"-queries", path, "-logs", "", "-w", "1"}))
	assert.Equal(t, 1, r.Run([]string{"-queries", filepath.Join(dir, "missing.yaml"), "-logs", ""}))
}
