// Package engine provides the search task abstraction composing a retrieval
// engine with queries, filters, custom ordering and pagination, plus the
// concrete engines backed by the index substrate.
package engine

import (
	"sort"

	"github.com/jcantosz/jotoba/pkg/storage"
)

// ResultItem is one retrieved item with its relevance. Items with equal
// relevance keep their insertion order.
type ResultItem[O comparable] struct {
	Item      O
	Relevance float32
	Language  storage.Language
	HasLang   bool
}

// NewResultItem creates an item without language tagging.
func NewResultItem[O comparable](item O, relevance float32) ResultItem[O] {
	return ResultItem[O]{Item: item, Relevance: relevance}
}

// WithLanguage tags the item with the language it was found in.
func (r ResultItem[O]) WithLanguage(lang storage.Language) ResultItem[O] {
	r.Language = lang
	r.HasLang = true
	return r
}

// Pusher accepts result items. The aggregator's output builder implements it.
type Pusher[O comparable] interface {
	Push(item ResultItem[O]) bool
}

// SearchResult is a ranked, paginated list of result items.
type SearchResult[O comparable] struct {
	Items      []ResultItem[O]
	TotalItems int
}

// Len returns the number of materialized items.
func (r *SearchResult[O]) Len() int { return len(r.Items) }

// Get returns the item at position i.
func (r *SearchResult[O]) Get(i int) (ResultItem[O], bool) {
	if i < 0 || i >= len(r.Items) {
		return ResultItem[O]{}, false
	}
	return r.Items[i], true
}

// collector accumulates items, deduplicating by item identity and keeping the
// best-scored copy; insertion order is preserved for stable ties.
type collector[O comparable] struct {
	items []ResultItem[O]
	seq   []int
	index map[O]int
	next  int
}

func newCollector[O comparable]() *collector[O] {
	return &collector[O]{index: make(map[O]int)}
}

func (c *collector[O]) Push(item ResultItem[O]) bool {
	if pos, ok := c.index[item.Item]; ok {
		if item.Relevance > c.items[pos].Relevance {
			c.items[pos].Relevance = item.Relevance
			c.items[pos].Language = item.Language
			c.items[pos].HasLang = item.HasLang
		}
		return true
	}
	c.index[item.Item] = len(c.items)
	c.items = append(c.items, item)
	c.seq = append(c.seq, c.next)
	c.next++
	return true
}

// result sorts by descending relevance with stable insertion order and
// applies pagination.
func (c *collector[O]) result(offset, limit int) *SearchResult[O] {
	order := make([]int, len(c.items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := c.items[order[a]], c.items[order[b]]
		if ia.Relevance != ib.Relevance {
			return ia.Relevance > ib.Relevance
		}
		return c.seq[order[a]] < c.seq[order[b]]
	})

	total := len(order)
	if offset >= total {
		return &SearchResult[O]{TotalItems: total}
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	items := make([]ResultItem[O], 0, end-offset)
	for _, idx := range order[offset:end] {
		items = append(items, c.items[idx])
	}
	return &SearchResult[O]{Items: items, TotalItems: total}
}
