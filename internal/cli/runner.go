package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"VanityGen/internal/generator"
	"VanityGen/internal/network"
	"VanityGen/pkg/appcfg"
	"VanityGen/pkg/logx"
)

type Runner struct {
	App    *appcfg.Config
	Stderr io.Writer
}

func NewRunner(app *appcfg.Config) *Runner {
	return &Runner{App: app, Stderr: os.Stderr}
}

// Run parses args and runs one search. It returns the process exit code.
func (r *Runner) Run(args []string) int {
	fs := flag.NewFlagSet("vanitygen", flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	queries := fs.String("queries", "configs/queries.yaml", "path to the queries file")
	logs := fs.String("logs", "logs", "base directory for run logs, empty for console only")
	workers := fs.Int("w", r.App.Cores, "number of workers, 0 for all CPUs")
	net := fs.String("network", r.App.Network, "default network: "+fmt.Sprint(network.Names()))
	source := fs.String("source", r.App.Source, "key source: private|mnemonics")
	showSecrets := fs.Bool("show-secrets", !r.App.HideSecretsInConsole, "log WIF and mnemonic of found keys")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	switch *source {
	case appcfg.SourcePrivKey, appcfg.SourceMnemonic:
	default:
		fmt.Fprintf(r.Stderr, "invalid -source %q: want %s or %s\n", *source, appcfg.SourcePrivKey, appcfg.SourceMnemonic)
		return 2
	}

	app := *r.App
	app.Cores = *workers
	app.Network = *net
	app.Source = *source

	opt := generator.Options{
		App:         &app,
		QueriesPath: *queries,
		LogsBase:    *logs,
		ShowSecrets: *showSecrets,
	}
	ctx, stop := withInterrupt(context.Background())
	defer stop()

	logx.S().Infow("start generation", "source", app.Source, "queries", opt.QueriesPath)
	if err := generator.Run(ctx, opt); err != nil {
		logx.S().Errorw("generation error", "err", err)
		return 1
	}
	logx.S().Infow("generation done")
	return 0
}

func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
