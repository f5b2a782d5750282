package search

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcantosz/jotoba/pkg/engine"
)

func item(id uint32, rel float32) engine.ResultItem[uint32] {
	return engine.NewResultItem(id, rel)
}

func TestBuilderTopK(t *testing.T) {
	b := NewOutputBuilder[uint32, struct{}](3, nil)
	for i, rel := range []float32{0.1, 0.9, 0.5, 0.7, 0.3} {
		b.Push(item(uint32(i), rel))
	}

	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, uint32(1), items[0].Item)
	assert.Equal(t, uint32(3), items[1].Item)
	assert.Equal(t, uint32(2), items[2].Item)
}

func TestBuilderStableTies(t *testing.T) {
	b := NewOutputBuilder[uint32, struct{}](2, nil)
	b.Push(item(1, 0.5))
	b.Push(item(2, 0.5))
	b.Push(item(3, 0.5))

	items := b.Items()
	require.Len(t, items, 2)
	// Equal relevance: the first inserted wins.
	assert.Equal(t, uint32(1), items[0].Item)
	assert.Equal(t, uint32(2), items[1].Item)
}

func TestBuilderDedup(t *testing.T) {
	b := NewOutputBuilder[uint32, struct{}](5, nil)
	b.Push(item(1, 0.3))
	b.Push(item(1, 0.8))
	b.Push(item(1, 0.5))

	items := b.Items()
	require.Len(t, items, 1)
	assert.InDelta(t, 0.8, items[0].Relevance, 1e-6)
}

func TestBuilderFilter(t *testing.T) {
	b := NewOutputBuilder[uint32, struct{}](5, func(id uint32) bool { return id%2 == 0 })
	assert.True(t, b.Push(item(1, 0.5)))
	assert.False(t, b.Push(item(2, 0.9)))
	assert.Equal(t, 1, b.Len())
}

func TestBuilderDeterminism(t *testing.T) {
	// The same input multiset yields the same result regardless of overflow
	// churn; verify against a reference sort.
	rng := rand.New(rand.NewSource(42))
	type in struct {
		id  uint32
		rel float32
	}
	var inputs []in
	for i := 0; i < 200; i++ {
		inputs = append(inputs, in{id: uint32(i), rel: float32(rng.Intn(50)) / 50})
	}

	run := func() []uint32 {
		b := NewOutputBuilder[uint32, struct{}](10, nil)
		for _, x := range inputs {
			b.Push(item(x.id, x.rel))
		}
		var ids []uint32
		for _, it := range b.Items() {
			ids = append(ids, it.Item)
		}
		return ids
	}

	first := run()
	assert.Equal(t, first, run())

	// Reference: stable sort by relevance desc, insertion order preserved.
	ref := make([]in, len(inputs))
	copy(ref, inputs)
	sort.SliceStable(ref, func(i, j int) bool { return ref[i].rel > ref[j].rel })
	for i := 0; i < 10; i++ {
		assert.Equal(t, ref[i].id, first[i], "position %d", i)
	}
}

type staticProducer struct {
	items []engine.ResultItem[uint32]
	runs  *int
	gate  func(int) bool
}

func (p *staticProducer) ShouldRun(found int) bool {
	if p.gate != nil {
		return p.gate(found)
	}
	return true
}

func (p *staticProducer) Produce(out *OutputBuilder[uint32, struct{}]) {
	*p.runs++
	for _, it := range p.items {
		out.Push(it)
	}
}

func TestRunProducers(t *testing.T) {
	runs := 0
	first := &staticProducer{items: []engine.ResultItem[uint32]{item(1, 0.9)}, runs: &runs}
	gated := &staticProducer{
		items: []engine.ResultItem[uint32]{item(2, 0.1)},
		runs:  &runs,
		gate:  func(found int) bool { return found == 0 },
	}

	b := NewOutputBuilder[uint32, struct{}](5, nil)
	RunProducers([]Producer[uint32, struct{}]{first, gated}, b)
	assert.Equal(t, 1, runs, "gated producer must not run once items exist")
	assert.Equal(t, 1, b.Len())
}
