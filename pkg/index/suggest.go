package index

import (
	"sort"
	"strings"

	"github.com/jcantosz/jotoba/pkg/storage"
)

// SuggestionEntry is one autocomplete candidate. Primary is the form shown
// and matched first; Secondary is the alternate written form.
type SuggestionEntry struct {
	Primary   string
	Secondary string
	Frequency uint32
}

// SuggestionIndex is a prefix-searchable list of suggestion entries, sorted
// by primary text.
type SuggestionIndex struct {
	Entries []SuggestionEntry
}

// NewSuggestionIndex sorts entries into their search order.
func NewSuggestionIndex(entries []SuggestionEntry) *SuggestionIndex {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Primary != entries[j].Primary {
			return entries[i].Primary < entries[j].Primary
		}
		return entries[i].Secondary < entries[j].Secondary
	})
	return &SuggestionIndex{Entries: entries}
}

// Prefix returns up to limit entries whose primary text starts with prefix,
// most frequent first.
func (s *SuggestionIndex) Prefix(prefix string, limit int) []SuggestionEntry {
	if prefix == "" || limit <= 0 {
		return nil
	}
	start := sort.Search(len(s.Entries), func(i int) bool {
		return s.Entries[i].Primary >= prefix
	})

	var out []SuggestionEntry
	for i := start; i < len(s.Entries); i++ {
		if !strings.HasPrefix(s.Entries[i].Primary, prefix) {
			break
		}
		out = append(out, s.Entries[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len returns the number of entries.
func (s *SuggestionIndex) Len() int { return len(s.Entries) }

// BuildWordSuggestions builds the native suggestion index: one entry per
// word, keyed by kana, with the kanji form as secondary.
func BuildWordSuggestions(words *storage.WordStore) *SuggestionIndex {
	var entries []SuggestionEntry
	words.Iter(func(w *storage.Word) bool {
		freq := uint32(0)
		if w.Common {
			freq = 100
		}
		if jlpt, ok := w.GetJlpt(); ok {
			freq += uint32(jlpt) * 10
		}
		entries = append(entries, SuggestionEntry{
			Primary:   w.Reading.Kana,
			Secondary: w.Reading.Kanji,
			Frequency: freq,
		})
		return true
	})
	return NewSuggestionIndex(entries)
}

// BuildForeignSuggestions builds the suggestion index over the glosses of one
// language, lowercased for prefix matching.
func BuildForeignSuggestions(words *storage.WordStore, lang storage.Language) *SuggestionIndex {
	freqs := make(map[string]uint32)
	var order []string
	words.Iter(func(w *storage.Word) bool {
		for _, sense := range w.Senses {
			if sense.Language != lang {
				continue
			}
			for _, g := range sense.Glosses {
				key := strings.ToLower(g.Gloss)
				if _, ok := freqs[key]; !ok {
					order = append(order, key)
				}
				freqs[key]++
				if w.Common {
					freqs[key] += 10
				}
			}
		}
		return true
	})

	entries := make([]SuggestionEntry, 0, len(order))
	for _, gloss := range order {
		entries = append(entries, SuggestionEntry{Primary: gloss, Frequency: freqs[gloss]})
	}
	return NewSuggestionIndex(entries)
}
