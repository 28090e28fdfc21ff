// Package query holds user-defined vanity targets and compiles them into
// address patterns.
package query

import (
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"VanityGen/internal/keys"
	"VanityGen/internal/network"
)

// Config is the validated description of one query.
type Config struct {
	Text          string
	AnchorBegin   bool // match right after the version prefix instead of anywhere
	CaseSensitive bool
	SingleShot    bool // drop from the pool after the first match
	Compressed    bool // encode candidates with compressed public keys
	ScriptHash    bool // encode candidates as P2SH addresses
	// Network pins the query; nil follows the network supplied at
	// evaluation time.
	Network *network.Network
}

// Query is a match target. Its setters may run while workers evaluate it:
// each setter publishes a new state with a freshly compiled pattern before
// returning, and readers always see fields and pattern from the same state.
type Query struct {
	mu    sync.Mutex // serializes setters
	state atomic.Pointer[state]
}

type state struct {
	cfg     Config
	scope   scope
	pattern *Pattern
}

// New validates cfg and compiles its pattern.
func New(cfg Config) (*Query, error) {
	if err := CheckBase58(cfg.Text); err != nil {
		return nil, err
	}
	if cfg.Network != nil {
		if err := cfg.Network.Validate(); err != nil {
			return nil, fmt.Errorf("query %q: %w", cfg.Text, err)
		}
	}
	q := &Query{}
	q.publish(cfg)
	return q, nil
}

// MustNew is New that panics on error.
func MustNew(cfg Config) *Query {
	q, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) publish(cfg Config) {
	sc := scopeOf(cfg.Network)
	q.state.Store(&state{cfg: cfg, scope: sc, pattern: compile(sc, cfg)})
}

func (q *Query) update(fn func(*Config)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	cfg := q.state.Load().cfg
	fn(&cfg)
	q.publish(cfg)
}

// SetText replaces the query text. Invalid text leaves the query unchanged.
func (q *Query) SetText(text string) error {
	if err := CheckBase58(text); err != nil {
		return err
	}
	q.update(func(c *Config) { c.Text = text })
	return nil
}

func (q *Query) SetAnchorBegin(v bool)   { q.update(func(c *Config) { c.AnchorBegin = v }) }
func (q *Query) SetCaseSensitive(v bool) { q.update(func(c *Config) { c.CaseSensitive = v }) }
func (q *Query) SetSingleShot(v bool)    { q.update(func(c *Config) { c.SingleShot = v }) }
func (q *Query) SetCompressed(v bool)    { q.update(func(c *Config) { c.Compressed = v }) }
func (q *Query) SetScriptHash(v bool)    { q.update(func(c *Config) { c.ScriptHash = v }) }

// SetNetwork pins the query to n, or releases it to the default network when
// n is nil.
func (q *Query) SetNetwork(n *network.Network) error {
	if n != nil {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	q.update(func(c *Config) { c.Network = n })
	return nil
}

func (q *Query) Config() Config            { return q.state.Load().cfg }
func (q *Query) PlainText() string         { return q.state.Load().cfg.Text }
func (q *Query) AnchorBegin() bool         { return q.state.Load().cfg.AnchorBegin }
func (q *Query) CaseSensitive() bool       { return q.state.Load().cfg.CaseSensitive }
func (q *Query) SingleShot() bool          { return q.state.Load().cfg.SingleShot }
func (q *Query) Compressed() bool          { return q.state.Load().cfg.Compressed }
func (q *Query) ScriptHash() bool          { return q.state.Load().cfg.ScriptHash }
func (q *Query) Network() *network.Network { return q.state.Load().cfg.Network }
func (q *Query) Pattern() *Pattern         { return q.state.Load().pattern }

// Odds estimates the number of candidates needed for one match.
func (q *Query) Odds() *big.Int {
	cfg := q.Config()
	return Odds(cfg.Text, cfg.AnchorBegin, cfg.CaseSensitive)
}

// Encoding returns the address form candidates are tested in, using def when
// the query carries no network of its own.
func (q *Query) Encoding(def *network.Network) keys.Encoding {
	st := q.state.Load()
	return st.encoding(def)
}

func (st *state) encoding(def *network.Network) keys.Encoding {
	return keys.Encoding{
		Network:    st.scope.target(def),
		Compressed: st.cfg.Compressed,
		ScriptHash: st.cfg.ScriptHash,
	}
}

// Hit describes a candidate that satisfied a query. Every field comes from
// the query state the candidate was tested against.
type Hit struct {
	Address    string
	Encoding   keys.Encoding
	SingleShot bool
}

// Match tests c, encoded the way the query asks, against the pattern.
func (q *Query) Match(c keys.Candidate, def *network.Network) (Hit, bool) {
	st := q.state.Load()
	enc := st.encoding(def)
	addr := c.Address(enc)
	return Hit{Address: addr, Encoding: enc, SingleShot: st.cfg.SingleShot}, st.pattern.MatchString(addr)
}

// Matches reports whether c satisfies the query.
func (q *Query) Matches(c keys.Candidate, def *network.Network) bool {
	_, ok := q.Match(c, def)
	return ok
}

func (q *Query) String() string {
	cfg := q.Config()
	placement := "anywhere"
	if cfg.AnchorBegin {
		placement = "begins"
	}
	return fmt.Sprintf("%s(%s, case=%v, single=%v, net=%s)",
		cfg.Text, placement, cfg.CaseSensitive, cfg.SingleShot, cfg.Network)
}
