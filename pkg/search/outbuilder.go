// Package search holds the pieces shared by all search pipelines: the
// bounded output builder producers write into, the producer contract, the
// process-wide resource bundle and the error taxonomy.
package search

import (
	"sort"

	"github.com/jcantosz/jotoba/pkg/engine"
)

// OutputBuilder is a bounded, stable, unique max-priority container of result
// items with an arbitrary aggregated side channel OA. It keeps at most limit
// best items, deduplicates by item identity keeping the best-scored copy, and
// breaks relevance ties by first insertion.
type OutputBuilder[I comparable, OA any] struct {
	limit     int
	filterOut func(I) bool
	entries   []builderEntry[I]
	index     map[I]int
	next      int

	// Output is the aggregated side channel producers may fill.
	Output OA
}

type builderEntry[I comparable] struct {
	item engine.ResultItem[I]
	seq  int
}

// NewOutputBuilder creates a builder keeping the limit best items. A nil
// filterOut accepts everything; an item for which filterOut returns true is
// rejected without touching capacity.
func NewOutputBuilder[I comparable, OA any](limit int, filterOut func(I) bool) *OutputBuilder[I, OA] {
	if limit <= 0 {
		limit = 1
	}
	return &OutputBuilder[I, OA]{
		limit:     limit,
		filterOut: filterOut,
		index:     make(map[I]int),
	}
}

// Push implements engine.Pusher. It returns false when the item was filtered
// out; saturation is normal and still counts as accepted.
func (b *OutputBuilder[I, OA]) Push(item engine.ResultItem[I]) bool {
	if b.filterOut != nil && b.filterOut(item.Item) {
		return false
	}

	if pos, ok := b.index[item.Item]; ok {
		if item.Relevance > b.entries[pos].item.Relevance {
			seq := b.entries[pos].seq
			b.entries[pos].item = item
			b.entries[pos].seq = seq
		}
		return true
	}

	b.entries = append(b.entries, builderEntry[I]{item: item, seq: b.next})
	b.index[item.Item] = len(b.entries) - 1
	b.next++

	if len(b.entries) > b.limit {
		b.evictWorst()
	}
	return true
}

// evictWorst drops the lowest-relevance entry; among equals the latest
// insertion goes, so earlier items win ties.
func (b *OutputBuilder[I, OA]) evictWorst() {
	worst := 0
	for i := 1; i < len(b.entries); i++ {
		e, w := b.entries[i], b.entries[worst]
		if e.item.Relevance < w.item.Relevance ||
			(e.item.Relevance == w.item.Relevance && e.seq > w.seq) {
			worst = i
		}
	}

	delete(b.index, b.entries[worst].item.Item)
	last := len(b.entries) - 1
	b.entries[worst] = b.entries[last]
	b.entries = b.entries[:last]
	if worst < len(b.entries) {
		b.index[b.entries[worst].item.Item] = worst
	}
}

// Len returns the number of held items.
func (b *OutputBuilder[I, OA]) Len() int { return len(b.entries) }

// Items returns the held items ordered by descending relevance with stable
// insertion order.
func (b *OutputBuilder[I, OA]) Items() []engine.ResultItem[I] {
	order := make([]int, len(b.entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool {
		ea, ec := b.entries[order[a]], b.entries[order[c]]
		if ea.item.Relevance != ec.item.Relevance {
			return ea.item.Relevance > ec.item.Relevance
		}
		return ea.seq < ec.seq
	})
	out := make([]engine.ResultItem[I], 0, len(order))
	for _, idx := range order {
		out = append(out, b.entries[idx].item)
	}
	return out
}

// Producer writes zero or more results into the shared output builder and may
// fill the aggregated side channel.
type Producer[I comparable, OA any] interface {
	// ShouldRun decides whether the producer applies, given how many items
	// earlier producers already found.
	ShouldRun(alreadyFound int) bool
	// Produce writes the producer's results into out.
	Produce(out *OutputBuilder[I, OA])
}

// RunProducers drives the producers in their deterministic order.
func RunProducers[I comparable, OA any](producers []Producer[I, OA], out *OutputBuilder[I, OA]) {
	for _, p := range producers {
		if !p.ShouldRun(out.Len()) {
			continue
		}
		p.Produce(out)
	}
}
