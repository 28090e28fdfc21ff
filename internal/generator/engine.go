package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"VanityGen/internal/keys"
	"VanityGen/internal/logsink"
	"VanityGen/internal/metrics"
	"VanityGen/internal/network"
	"VanityGen/internal/query"
	"VanityGen/internal/search"
	"VanityGen/pkg/appcfg"
	"VanityGen/pkg/config"
	"VanityGen/pkg/logx"
)

type foundEvent struct {
	Query    *query.Query
	Address  string
	Network  *network.Network
	WIF      string
	Mnemonic string
	Path     string
	Worker   int
	Attempt  uint64
	Elapsed  time.Duration
}

// Run loads the queries, searches until every single-shot query is found or
// ctx is cancelled, and logs matches and throughput.
func Run(ctx context.Context, opt Options) error {
	app := opt.App
	if app == nil {
		app = appcfg.Default()
	}

	qcfg, err := config.Load(opt.QueriesPath)
	if err != nil {
		return fmt.Errorf("load queries: %w", err)
	}
	queries, err := qcfg.Build()
	if err != nil {
		return fmt.Errorf("build queries: %w", err)
	}
	defNet, err := network.Lookup(app.Network)
	if err != nil {
		return err
	}

	if opt.LogsBase != "" {
		dir, err := logsink.MakeRunDir(opt.LogsBase, "search", time.Now())
		if err != nil {
			return err
		}
		if err := logx.Init(logx.Config{
			Level:                app.LogLevel,
			FilePath:             filepath.Join(dir, "app.log"),
			HideSecretsInConsole: app.HideSecretsInConsole,
		}); err != nil {
			return fmt.Errorf("logx init for search failed: %w", err)
		}
		defer logx.Close()
	}
	log := logx.With("generator")

	for _, q := range queries {
		log.Infow("query",
			"text", q.PlainText(),
			"pattern", q.Pattern().String(),
			"single_shot", q.SingleShot(),
			"network", q.Network().String(),
			"odds", "1 in "+humanize.BigComma(q.Odds()),
		)
	}

	hint := search.SpawnHint{}
	if app.LowPriority {
		hint.Nice = 10
	}

	workers := workerCount(app)
	collector, err := metrics.New(prometheus.NewRegistry(), workers)
	if err != nil {
		return err
	}

	start := time.Now()
	events := make(chan foundEvent, 64)
	sink := search.ObserverFuncs{
		Match: func(m search.Match) error {
			ev, err := newFoundEvent(m, start, opt.ShowSecrets)
			if err != nil {
				return err
			}
			events <- ev
			return nil
		},
		Done: func(r search.Report) error {
			log.Debugw("worker done", "worker", r.WorkerID, "state", r.State.String(), "generated", r.TotalGenerated)
			return nil
		},
	}

	coord, err := search.New(search.Config{
		Workers:      workers,
		UpdateAmount: app.UpdateAmount,
		Network:      defNet,
		Hint:         hint,
		NewProvider:  providerFactory(app, defNet),
	}, search.MultiObserver{collector, sink}, queries...)
	if err != nil {
		return err
	}

	log.Infow("generation started",
		"source", app.Source,
		"network", defNet.Name,
		"queries", len(queries),
		"workers", workers,
	)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for ev := range events {
			logFound(log, ev)
		}
	}()

	statusCtx, stopStatus := context.WithCancel(ctx)
	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		if app.StatusInterval <= 0 {
			return
		}
		ticker := time.NewTicker(app.StatusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-statusCtx.Done():
				return
			case now := <-ticker.C:
				elapsed := now.Sub(start)
				n := coord.Total()
				rate := 0.0
				if elapsed > 0 {
					rate = float64(n) / elapsed.Seconds()
				}
				snap := collector.Snapshot()
				log.Infow("progress",
					"attempts", n,
					"rate_addr_per_sec", fmt.Sprintf("%.2f", rate),
					"matches", snap.Matches,
					"active_queries", coord.Pool().Len(),
					"elapsed", humanDuration(elapsed),
				)
			}
		}
	}()

	runErr := coord.Run(ctx)
	stopStatus()
	close(events)
	<-writerDone
	<-statusDone

	snap := collector.Snapshot()
	log.Infow("stopped",
		"elapsed", humanDuration(time.Since(start)),
		"attempts", coord.Total(),
		"matches", snap.Matches,
		"remaining_queries", coord.Pool().Len(),
	)
	return runErr
}

func workerCount(app *appcfg.Config) int {
	if app.Cores > 0 {
		return app.Cores
	}
	return runtime.NumCPU()
}

func providerFactory(app *appcfg.Config, n *network.Network) func(int) (keys.Provider, error) {
	switch app.Source {
	case appcfg.SourceMnemonic:
		return func(int) (keys.Provider, error) {
			return keys.NewMnemonicProvider(keys.MnemonicOptions{
				Passphrase: app.Passphrase,
				DeriveN:    app.DeriveN,
				CoinType:   n.HDCoinType,
			}), nil
		}
	case appcfg.SourcePrivKey, "":
		return func(int) (keys.Provider, error) { return keys.NewRandomProvider(), nil }
	default:
		return func(int) (keys.Provider, error) {
			return nil, fmt.Errorf("unknown key source %q", app.Source)
		}
	}
}

func newFoundEvent(m search.Match, start time.Time, secrets bool) (foundEvent, error) {
	ev := foundEvent{
		Query:   m.Query,
		Address: m.Address,
		Network: m.Network,
		Worker:  m.WorkerID,
		Attempt: m.Attempt,
		Elapsed: time.Since(start),
	}
	kc, ok := m.Candidate.(*keys.KeyCandidate)
	if !ok || !secrets {
		return ev, nil
	}
	wif, err := kc.WIF(m.Network, m.Compressed)
	if err != nil {
		return ev, err
	}
	ev.WIF = wif
	ev.Mnemonic = kc.Mnemonic
	ev.Path = kc.Path
	return ev, nil
}

func logFound(log *zap.SugaredLogger, ev foundEvent) {
	kv := []any{
		"query", ev.Query.PlainText(),
		"address", ev.Address,
		"network", ev.Network.Name,
		"worker", ev.Worker,
		"attempt", ev.Attempt,
		"elapsed", humanDuration(ev.Elapsed),
	}
	if ev.WIF != "" {
		kv = append(kv, "wif", ev.WIF)
	}
	if ev.Mnemonic != "" {
		kv = append(kv, "mnemonic", ev.Mnemonic, "path", ev.Path)
	}
	log.Infow("FOUND", kv...)
}

// ------------------------------- helpers ------------------------------------

func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}
