package query

import (
	"strconv"
	"strings"

	"github.com/jcantosz/jotoba/pkg/storage"
)

// TagKind discriminates the supported #tag filters.
type TagKind int

const (
	TagJlpt TagKind = iota
	TagCommon
	TagHidden
	TagPos
	TagMisc
	TagTarget
	TagIrregularIchidan
)

// Tag is one parsed #tag of a query.
type Tag struct {
	Kind   TagKind
	Jlpt   uint8
	Pos    storage.PosSimple
	Misc   string
	Target Target
}

// AllowsEmptyQuery reports whether a query consisting of only this tag is a
// valid search on its own.
func (t Tag) AllowsEmptyQuery() bool {
	return t.Kind == TagJlpt || t.Kind == TagIrregularIchidan
}

// parseTag interprets one #tag token (without the leading '#').
func parseTag(token string) (Tag, bool) {
	lower := strings.ToLower(token)

	if strings.HasPrefix(lower, "n") && len(lower) == 2 {
		if lvl, err := strconv.Atoi(lower[1:]); err == nil && lvl >= 1 && lvl <= 5 {
			return Tag{Kind: TagJlpt, Jlpt: uint8(lvl)}, true
		}
	}
	if strings.HasPrefix(lower, "jlpt") {
		if lvl, err := strconv.Atoi(strings.TrimPrefix(lower, "jlpt")); err == nil && lvl >= 1 && lvl <= 5 {
			return Tag{Kind: TagJlpt, Jlpt: uint8(lvl)}, true
		}
	}

	switch lower {
	case "common":
		return Tag{Kind: TagCommon}, true
	case "hidden":
		return Tag{Kind: TagHidden}, true
	case "irregular-ichidan", "irr-ichidan":
		return Tag{Kind: TagIrregularIchidan}, true
	case "word", "words":
		return Tag{Kind: TagTarget, Target: TargetWords}, true
	case "kanji":
		return Tag{Kind: TagTarget, Target: TargetKanji}, true
	case "name", "names":
		return Tag{Kind: TagTarget, Target: TargetNames}, true
	case "sentence", "sentences":
		return Tag{Kind: TagTarget, Target: TargetSentences}, true
	case "abbreviation", "abbr":
		return Tag{Kind: TagMisc, Misc: "abbr"}, true
	case "archaic", "arch":
		return Tag{Kind: TagMisc, Misc: "arch"}, true
	case "colloquialism", "col":
		return Tag{Kind: TagMisc, Misc: "col"}, true
	case "slang", "sl":
		return Tag{Kind: TagMisc, Misc: "sl"}, true
	}

	if pos, ok := storage.PosFromName(lower); ok {
		return Tag{Kind: TagPos, Pos: pos}, true
	}
	return Tag{}, false
}

// extractTags splits the raw query into its plain text and its parsed tags.
// Unknown tags are dropped from the text but produce no filter.
func extractTags(raw string) (string, []Tag) {
	var tags []Tag
	var rest []string
	for _, field := range strings.Fields(raw) {
		if !strings.HasPrefix(field, "#") || len(field) < 2 {
			rest = append(rest, field)
			continue
		}
		if tag, ok := parseTag(field[1:]); ok {
			tags = append(tags, tag)
		}
	}
	return strings.Join(rest, " "), tags
}
