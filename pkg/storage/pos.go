package storage

import "strings"

// PosSimple is the coarse part-of-speech class used by filters and rankers.
type PosSimple int

const (
	PosUnknown PosSimple = iota
	PosNoun
	PosVerb
	PosAdjective
	PosAdverb
	PosParticle
	PosPronoun
	PosInterjection
	PosConjunction
	PosSuffix
	PosPrefix
	PosAuxVerb
	PosCounter
	PosExpression
)

var posNames = map[string]PosSimple{
	"noun":         PosNoun,
	"verb":         PosVerb,
	"adjective":    PosAdjective,
	"adverb":       PosAdverb,
	"particle":     PosParticle,
	"pronoun":      PosPronoun,
	"interjection": PosInterjection,
	"conjunction":  PosConjunction,
	"suffix":       PosSuffix,
	"prefix":       PosPrefix,
	"aux-verb":     PosAuxVerb,
	"counter":      PosCounter,
	"expression":   PosExpression,
}

// PosFromName parses a simple POS tag name.
func PosFromName(name string) (PosSimple, bool) {
	pos, ok := posNames[strings.ToLower(strings.TrimSpace(name))]
	return pos, ok
}

// Name returns the canonical tag name of the POS class.
func (p PosSimple) Name() string {
	for name, pos := range posNames {
		if pos == p {
			return name
		}
	}
	return "unknown"
}
