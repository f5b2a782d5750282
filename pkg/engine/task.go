package engine

import (
	"github.com/jcantosz/jotoba/pkg/storage"
)

// Candidate is one raw retrieval hit after materialization. Doc keeps the
// pre-materialization document id for vector filters.
type Candidate[O comparable] struct {
	Doc    uint32
	Score  float32
	Output O
}

// Engine is the uniform retrieval contract. Implementations are immutable
// and safe for concurrent use.
type Engine[O comparable] interface {
	// Retrieve compiles query and yields scored candidates, applying
	// vectorFilter on raw document ids before materialization. A nil filter
	// accepts everything.
	Retrieve(query string, lang storage.Language, vectorFilter func(uint32) bool) []Candidate[O]
	// HasExact reports whether query exists as an exact term.
	HasExact(query string, lang storage.Language) bool
	// EstimateCount bounds the number of candidate documents for query.
	EstimateCount(query string, lang storage.Language, cap int) int
}

type taskQuery struct {
	text    string
	lang    storage.Language
	hasLang bool
}

// Task composes an engine with queries, filters, ordering and pagination.
// A task is built per request and must not outlive it.
type Task[O comparable] struct {
	engine       Engine[O]
	queries      []taskQuery
	lang         storage.Language
	hasLang      bool
	threshold    float32
	offset       int
	limit        int
	align        bool
	resultFilter func(O) bool
	vectorFilter func(uint32) bool
	customOrder  func(ResultItem[O]) float32
}

// NewTask creates a task for one query without language context.
func NewTask[O comparable](e Engine[O], query string) *Task[O] {
	return &Task[O]{
		engine:  e,
		queries: []taskQuery{{text: query}},
		limit:   10,
	}
}

// NewTaskWithLanguage creates a task searching in the given language.
func NewTaskWithLanguage[O comparable](e Engine[O], query string, lang storage.Language) *Task[O] {
	t := NewTask(e, query)
	t.lang = lang
	t.hasLang = true
	t.queries[0].lang = lang
	t.queries[0].hasLang = true
	return t
}

// AddQuery adds another query sharing the same result pool.
func (t *Task[O]) AddQuery(query string) *Task[O] {
	t.queries = append(t.queries, taskQuery{text: query, lang: t.lang, hasLang: t.hasLang})
	return t
}

// AddLanguageQuery adds a parallel query in another language.
func (t *Task[O]) AddLanguageQuery(query string, lang storage.Language) *Task[O] {
	t.queries = append(t.queries, taskQuery{text: query, lang: lang, hasLang: true})
	return t
}

// Threshold drops candidates scoring below v.
func (t *Task[O]) Threshold(v float32) *Task[O] {
	t.threshold = v
	return t
}

// Offset skips the first n ranked items.
func (t *Task[O]) Offset(n int) *Task[O] {
	t.offset = n
	return t
}

// Limit bounds the number of returned items.
func (t *Task[O]) Limit(n int) *Task[O] {
	if n > 0 {
		t.limit = n
	}
	return t
}

// SetAlign requests alignment in engines that support it.
func (t *Task[O]) SetAlign(align bool) *Task[O] {
	t.align = align
	return t
}

// SetResultFilter installs a predicate on materialized candidates.
func (t *Task[O]) SetResultFilter(f func(O) bool) *Task[O] {
	t.resultFilter = f
	return t
}

// SetVectorFilter installs a predicate on raw document ids.
func (t *Task[O]) SetVectorFilter(f func(uint32) bool) *Task[O] {
	t.vectorFilter = f
	return t
}

// WithCustomOrder replaces the engine similarity with a caller-defined
// relevance function.
func (t *Task[O]) WithCustomOrder(f func(ResultItem[O]) float32) *Task[O] {
	t.customOrder = f
	return t
}

// FindTo runs retrieval and pushes every accepted item into out. Returns
// whether anything was pushed.
func (t *Task[O]) FindTo(out Pusher[O]) bool {
	pushed := false
	for _, q := range t.queries {
		for _, cand := range t.engine.Retrieve(q.text, q.lang, t.vectorFilter) {
			if cand.Score < t.threshold {
				continue
			}
			if t.resultFilter != nil && !t.resultFilter(cand.Output) {
				continue
			}
			item := NewResultItem(cand.Output, cand.Score)
			if q.hasLang {
				item = item.WithLanguage(q.lang)
			}
			if t.customOrder != nil {
				item.Relevance = t.customOrder(item)
			}
			if out.Push(item) {
				pushed = true
			}
		}
	}
	return pushed
}

// Find returns the ranked page of results for the task.
func (t *Task[O]) Find() *SearchResult[O] {
	c := newCollector[O]()
	t.FindTo(c)
	return c.result(t.offset, t.limit)
}

// estimateCap bounds how far count estimation scans.
const estimateCap = 100

// EstimateResultCount guesses the result count without materializing items.
func (t *Task[O]) EstimateResultCount() Guess {
	total := 0
	for _, q := range t.queries {
		total += t.engine.EstimateCount(q.text, q.lang, estimateCap)
		if total >= estimateCap {
			return Guess{Value: estimateCap, Type: GuessMoreThan}
		}
	}
	if total == 0 {
		return Guess{Type: GuessAccurate}
	}
	return Guess{Value: uint32(total), Type: GuessAccurate}
}

// HasTerm probes whether the primary query exists as an exact term.
func (t *Task[O]) HasTerm() bool {
	if len(t.queries) == 0 {
		return false
	}
	q := t.queries[0]
	return t.engine.HasExact(q.text, q.lang)
}
