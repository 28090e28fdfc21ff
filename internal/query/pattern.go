package query

import (
	"regexp"
	"strings"

	"VanityGen/internal/network"
)

// Pattern is the compiled form of a query's matchable fields.
type Pattern struct {
	re *regexp.Regexp
}

// Compile turns the matchable fields of cfg into a Pattern.
//
// The pattern is ^<prefix><placement><text>.*$ where prefix is an alternation
// of the network's prefixes. A query without a network of its own has a
// single wildcard prefix when begin-anchored and none otherwise. Placement is
// empty for begin-anchored queries and .* otherwise, and text is the quoted query text, wrapped in (?i:...)
// when matching ignores case. Text is always quoted: a query is a literal.
func Compile(cfg Config) *Pattern {
	return compile(scopeOf(cfg.Network), cfg)
}

func compile(sc scope, cfg Config) *Pattern {
	var b strings.Builder
	b.WriteString("^")
	b.WriteString(sc.prefixPattern(cfg))
	if !cfg.AnchorBegin {
		b.WriteString(".*")
	}
	text := regexp.QuoteMeta(cfg.Text)
	if cfg.CaseSensitive {
		b.WriteString(text)
	} else {
		b.WriteString("(?i:")
		b.WriteString(text)
		b.WriteString(")")
	}
	b.WriteString(".*$")
	return &Pattern{re: regexp.MustCompile(b.String())}
}

// MatchString reports whether addr satisfies the pattern.
func (p *Pattern) MatchString(addr string) bool {
	return p.re.MatchString(addr)
}

func (p *Pattern) String() string {
	return p.re.String()
}

func prefixGroup(prefixes []string) string {
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// scope decides which network a query is evaluated against.
type scope interface {
	// target returns the network used to encode the candidate address.
	target(def *network.Network) *network.Network
	prefixPattern(cfg Config) string
}

// plainScope follows the network supplied at evaluation time. A begin-anchored
// query skips a single version character: every built-in network has
// one-character version prefixes. Anywhere queries may match from offset 0.
type plainScope struct{}

func (plainScope) target(def *network.Network) *network.Network { return def }
func (plainScope) prefixPattern(cfg Config) string {
	if cfg.AnchorBegin {
		return "."
	}
	return ""
}

// networkScope pins the query to its own network regardless of the default.
type networkScope struct {
	net *network.Network
}

func (s networkScope) target(*network.Network) *network.Network { return s.net }
func (s networkScope) prefixPattern(cfg Config) string {
	return prefixGroup(s.net.AddressPrefixes(cfg.ScriptHash))
}

func scopeOf(n *network.Network) scope {
	if n == nil {
		return plainScope{}
	}
	return networkScope{net: n}
}
