// Package pool keeps the set of active queries shared by all search workers.
package pool

import (
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"VanityGen/internal/query"
)

// Pool is a concurrency-safe set of queries. Queries live in an append-only
// arena; a roaring bitmap tracks which arena slots are still live. Every
// structural change republishes an immutable snapshot, so readers never see
// a collection modified mid-iteration.
type Pool struct {
	mu    sync.Mutex
	arena []*query.Query
	index map[*query.Query]uint32
	live  *roaring.Bitmap

	snap atomic.Pointer[[]*query.Query]
}

// New returns a pool holding qs, duplicates ignored.
func New(qs ...*query.Query) *Pool {
	p := &Pool{
		index: make(map[*query.Query]uint32),
		live:  roaring.New(),
	}
	p.mu.Lock()
	for _, q := range qs {
		p.addLocked(q)
	}
	p.publishLocked()
	p.mu.Unlock()
	return p
}

// Add inserts q and reports whether it was not already live.
func (p *Pool) Add(q *query.Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.addLocked(q) {
		return false
	}
	p.publishLocked()
	return true
}

func (p *Pool) addLocked(q *query.Query) bool {
	if q == nil {
		return false
	}
	if id, ok := p.index[q]; ok {
		if p.live.Contains(id) {
			return false
		}
		p.live.Add(id)
		return true
	}
	id := uint32(len(p.arena))
	p.arena = append(p.arena, q)
	p.index[q] = id
	p.live.Add(id)
	return true
}

// Remove drops q regardless of its single-shot flag and reports whether q was
// live.
func (p *Pool) Remove(q *query.Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clearLocked(q)
}

// TryRemoveOnMatch removes a matched single-shot query. Of any number of
// concurrent callers for the same query exactly one gets true; the rest, and
// every caller for a query that is not single-shot, get false.
func (p *Pool) TryRemoveOnMatch(q *query.Query) bool {
	return p.TryRemoveHit(q, query.Hit{SingleShot: q.SingleShot()})
}

// TryRemoveHit is TryRemoveOnMatch for a hit already classified by
// query.Match, so the removal follows the state the candidate was tested
// against.
func (p *Pool) TryRemoveHit(q *query.Query, hit query.Hit) bool {
	if !hit.SingleShot {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clearLocked(q)
}

func (p *Pool) clearLocked(q *query.Query) bool {
	id, ok := p.index[q]
	if !ok || !p.live.CheckedRemove(id) {
		return false
	}
	p.publishLocked()
	return true
}

func (p *Pool) publishLocked() {
	out := make([]*query.Query, 0, p.live.GetCardinality())
	it := p.live.Iterator()
	for it.HasNext() {
		out = append(out, p.arena[it.Next()])
	}
	p.snap.Store(&out)
}

// Snapshot returns the live queries in insertion order. The slice is shared
// and must not be modified.
func (p *Pool) Snapshot() []*query.Query {
	return *p.snap.Load()
}

// Contains reports whether q is live.
func (p *Pool) Contains(q *query.Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.index[q]
	return ok && p.live.Contains(id)
}

func (p *Pool) Len() int {
	return len(p.Snapshot())
}

func (p *Pool) IsEmpty() bool {
	return p.Len() == 0
}
