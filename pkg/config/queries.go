package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"VanityGen/internal/network"
	"VanityGen/internal/query"
)

// QueriesConfig is the set of queries to search for.
type QueriesConfig struct {
	Queries []QueryEntry `yaml:"queries"`
}

// QueryEntry is one query as written in YAML. Unset booleans take the
// defaults below.
type QueryEntry struct {
	Text          string `yaml:"text"`
	Begins        bool   `yaml:"begins"`         // default false: anywhere
	CaseSensitive *bool  `yaml:"case_sensitive"` // default true
	Unlimited     bool   `yaml:"unlimited"`      // default false: single-shot
	Compressed    *bool  `yaml:"compressed"`     // default true
	P2SH          bool   `yaml:"p2sh"`
	Network       string `yaml:"network"`        // empty: the run's network
}

func Load(path string) (*QueriesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	var cfg QueriesConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml %q: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation %q: %w", path, err)
	}

	return &cfg, nil
}

func validate(c *QueriesConfig) error {
	if c == nil {
		return errors.New("nil config")
	}
	if len(c.Queries) == 0 {
		return errors.New("no queries defined")
	}
	for i, e := range c.Queries {
		if _, err := e.Config(); err != nil {
			return fmt.Errorf("queries[%d]: %w", i, err)
		}
	}
	return nil
}

// Config converts the entry into a query.Config, resolving its network.
func (e QueryEntry) Config() (query.Config, error) {
	if err := query.CheckBase58(e.Text); err != nil {
		return query.Config{}, err
	}
	cfg := query.Config{
		Text:          e.Text,
		AnchorBegin:   e.Begins,
		CaseSensitive: boolOr(e.CaseSensitive, true),
		SingleShot:    !e.Unlimited,
		Compressed:    boolOr(e.Compressed, true),
		ScriptHash:    e.P2SH,
	}
	if e.Network != "" {
		n, err := network.Lookup(e.Network)
		if err != nil {
			return query.Config{}, err
		}
		cfg.Network = n
	}
	return cfg, nil
}

// Build constructs every query of the config.
func (c *QueriesConfig) Build() ([]*query.Query, error) {
	out := make([]*query.Query, 0, len(c.Queries))
	for i, e := range c.Queries {
		qc, err := e.Config()
		if err != nil {
			return nil, fmt.Errorf("queries[%d]: %w", i, err)
		}
		q, err := query.New(qc)
		if err != nil {
			return nil, fmt.Errorf("queries[%d]: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
