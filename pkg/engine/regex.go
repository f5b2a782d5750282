package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// ErrBadRegex is returned for wildcard queries that cannot be compiled or are
// too cheap to bound.
var ErrBadRegex = errors.New("invalid wildcard query")

// RegexQuery is a compiled wildcard query over written word forms. Only the
// '*' (any run) and '?' (any single character) metacharacters are exposed;
// everything else matches literally.
type RegexQuery struct {
	re  *regexp.Regexp
	raw string
}

// NewRegexQuery validates and compiles a wildcard query. Queries shorter than
// two characters are rejected unless they contain kanji, bounding scan cost.
func NewRegexQuery(query string) (*RegexQuery, error) {
	if japanese.RealLen(query) < 2 && !japanese.HasKanji(query) {
		return nil, ErrBadRegex
	}

	var pattern strings.Builder
	pattern.WriteString("^")
	for _, r := range query {
		switch r {
		case '*':
			pattern.WriteString(".*")
		case '?':
			pattern.WriteString(".")
		default:
			pattern.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	pattern.WriteString("$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, ErrBadRegex
	}
	return &RegexQuery{re: re, raw: query}, nil
}

// Matches reports whether the written form matches the query.
func (q *RegexQuery) Matches(form string) bool {
	return q.re.MatchString(form)
}

// Raw returns the original wildcard query.
func (q *RegexQuery) Raw() string { return q.raw }

// RegexSearch linearly scans the word store for matching written forms. The
// scan is bounded by the store size; every match is collected, ordered by the
// order function, and the returned page holds at most limit items from offset.
func RegexSearch(words *storage.WordStore, q *RegexQuery, order func(*storage.Word) float32, offset, limit int) *SearchResult[*storage.Word] {
	c := newCollector[*storage.Word]()
	words.Iter(func(w *storage.Word) bool {
		matched := q.Matches(w.Reading.Kana) || (w.Reading.Kanji != "" && q.Matches(w.Reading.Kanji))
		if !matched {
			return true
		}
		relevance := float32(0)
		if order != nil {
			relevance = order(w)
		}
		c.Push(NewResultItem(w, relevance))
		return true
	})
	return c.result(offset, limit)
}
