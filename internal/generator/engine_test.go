package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VanityGen/pkg/appcfg"
)

func queriesFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_FindsSingleShotQueries(t *testing.T) {
	path := queriesFile(t, `
queries:
  - text: a
    case_sensitive: false
  - text: b
    case_sensitive: false
    p2sh: true
`)
	app := appcfg.Default()
	app.Cores = 2
	app.StatusInterval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := Run(ctx, Options{App: app, QueriesPath: path, ShowSecrets: true, LogsBase: t.TempDir()})
	require.NoError(t, err)
	assert.NoError(t, ctx.Err(), "search should finish before the deadline")
}

func TestRun_MnemonicSource(t *testing.T) {
	path := queriesFile(t, "queries:\n  - text: a\n    case_sensitive: false\n    network: litecoin\n")
	app := appcfg.Default()
	app.Cores = 1
	app.Source = appcfg.SourceMnemonic
	app.DeriveN = 3

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, Run(ctx, Options{App: app, QueriesPath: path, ShowSecrets: true}))
}

func TestRun_StopsOnCancel(t *testing.T) {
	path := queriesFile(t, "queries:\n  - text: zzzzzzzzzzzz\n    begins: true\n")
	app := appcfg.Default()
	app.Cores = 2

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, Run(ctx, Options{App: app, QueriesPath: path}))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRun_BadInputs(t *testing.T) {
	err := Run(context.Background(), Options{QueriesPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	app := appcfg.Default()
	app.Network = "nope"
	err = Run(context.Background(), Options{App: app, QueriesPath: queriesFile(t, "queries:\n  - text: a\n")})
	assert.Error(t, err)

	app = appcfg.Default()
	app.Source = "mnemonic"
	err = Run(context.Background(), Options{App: app, QueriesPath: queriesFile(t, "queries:\n  - text: a\n")})
	assert.ErrorContains(t, err, `unknown key source "mnemonic"`)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "42s", humanDuration(42*time.Second))
	assert.Equal(t, "3m07s", humanDuration(3*time.Minute+7*time.Second))
	assert.Equal(t, "2h05m09s", humanDuration(2*time.Hour+5*time.Minute+9*time.Second))
}
