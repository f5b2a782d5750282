package index

import (
	"github.com/jcantosz/jotoba/pkg/storage"
)

// NativeIndex wraps the n-gram index over written word forms. Every written
// form (kana and kanji) is its own document so exact-form scores stay
// comparable; DocSeqs maps documents back to word sequences.
type NativeIndex struct {
	NGram   *NGramIndex
	DocSeqs []uint32
}

// NewNativeIndex creates an empty native index.
func NewNativeIndex() *NativeIndex {
	return &NativeIndex{NGram: NewNGramIndex(NativeNGram)}
}

// Insert indexes one written form of the word sequence.
func (x *NativeIndex) Insert(seq uint32, form string) {
	doc := uint32(len(x.DocSeqs))
	x.DocSeqs = append(x.DocSeqs, seq)
	x.NGram.Insert(doc, form)
}

// Seq maps a document id back to its word sequence.
func (x *NativeIndex) Seq(doc uint32) uint32 {
	return x.DocSeqs[doc]
}

// BuildNativeWordIndex indexes every written form of the word store.
func BuildNativeWordIndex(words *storage.WordStore) *NativeIndex {
	x := NewNativeIndex()
	words.Iter(func(w *storage.Word) bool {
		x.Insert(w.Sequence, w.Reading.Kana)
		if w.Reading.Kanji != "" {
			x.Insert(w.Sequence, w.Reading.Kanji)
		}
		return true
	})
	return x
}

// BuildNativeNameIndex indexes every written form of the name store.
func BuildNativeNameIndex(names *storage.NameStore) *NativeIndex {
	x := NewNativeIndex()
	names.Iter(func(n *storage.Name) bool {
		x.Insert(n.Sequence, n.Kana)
		if n.Kanji != "" {
			x.Insert(n.Sequence, n.Kanji)
		}
		return true
	})
	return x
}

// BuildForeignWordIndex builds the TF-IDF gloss index of one language.
// Identical gloss texts share one document with merged sequence ids.
func BuildForeignWordIndex(words *storage.WordStore, lang storage.Language) *VectorIndex {
	bySplit := make(map[string][]uint32)
	var order []string
	words.Iter(func(w *storage.Word) bool {
		for _, sense := range w.Senses {
			if sense.Language != lang {
				continue
			}
			for _, g := range sense.Glosses {
				if _, ok := bySplit[g.Gloss]; !ok {
					order = append(order, g.Gloss)
				}
				bySplit[g.Gloss] = append(bySplit[g.Gloss], w.Sequence)
			}
		}
		return true
	})

	x := NewVectorIndex()
	for _, gloss := range order {
		x.Add(gloss, dedupeSeqs(bySplit[gloss]))
	}
	x.Finish()
	return x
}

// BuildForeignNameIndex builds the vector index over name transcriptions.
func BuildForeignNameIndex(names *storage.NameStore) *VectorIndex {
	x := NewVectorIndex()
	names.Iter(func(n *storage.Name) bool {
		if n.Transcribed != "" {
			x.Add(n.Transcribed, []uint32{n.Sequence})
		}
		return true
	})
	x.Finish()
	return x
}

func dedupeSeqs(seqs []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(seqs))
	out := seqs[:0:0]
	for _, s := range seqs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
