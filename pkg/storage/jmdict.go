package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// JMdictEntry matches the structure of jmdict-simplified entries.
type JMdictEntry struct {
	Id    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
	Sense []JMdictSense   `json:"sense"`
}

type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

type JMdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Misc         []string      `json:"misc"`
	Gloss        []JMdictGloss `json:"gloss"`
}

type JMdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"` // defaults to 'eng' if missing
}

// LoadJMdictSimplified reads a jmdict-simplified JSON file, accepting both
// the { "words": [...] } wrapper and a bare array.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Words []JMdictEntry `json:"words"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Words) > 0 {
		return wrapper.Words, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []JMdictEntry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or array: %w", err)
	}
	return entries, nil
}

var jmdictPos = map[string]PosSimple{
	"n": PosNoun, "v1": PosVerb, "v5": PosVerb, "vs": PosVerb, "vk": PosVerb,
	"adj-i": PosAdjective, "adj-na": PosAdjective, "adv": PosAdverb,
	"prt": PosParticle, "pn": PosPronoun, "int": PosInterjection,
	"conj": PosConjunction, "suf": PosSuffix, "pref": PosPrefix,
	"aux-v": PosAuxVerb, "ctr": PosCounter, "exp": PosExpression,
}

var jmdictLangs = map[string]Language{
	"eng": English, "ger": German, "spa": Spanish, "rus": Russian,
	"swe": Swedish, "fre": French, "dut": Dutch, "hun": Hungarian,
	"slv": Slovenian,
}

func jmdictPosSimple(tag string) (PosSimple, bool) {
	if pos, ok := jmdictPos[tag]; ok {
		return pos, true
	}
	// Verb subclasses (v5r, v5u, ...) share their stem tag.
	for prefix, pos := range jmdictPos {
		if strings.HasPrefix(tag, prefix) {
			return pos, true
		}
	}
	return PosUnknown, false
}

// wordFromEntry converts one jmdict-simplified entry into the stored Word
// form. Glosses are grouped per sense and language.
func wordFromEntry(entry JMdictEntry) (Word, bool) {
	seq, err := strconv.ParseUint(entry.Id, 10, 32)
	if err != nil || len(entry.Kana) == 0 {
		return Word{}, false
	}

	w := Word{
		Sequence: uint32(seq),
		Reading:  Reading{Kana: entry.Kana[0].Text},
		Common:   entry.Kana[0].Common,
	}
	if len(entry.Kanji) > 0 {
		w.Reading.Kanji = entry.Kanji[0].Text
		w.Common = w.Common || entry.Kanji[0].Common
	}

	for _, sense := range entry.Sense {
		var pos []PosSimple
		for _, tag := range sense.PartOfSpeech {
			if p, ok := jmdictPosSimple(tag); ok {
				pos = append(pos, p)
			}
		}
		misc := ""
		if len(sense.Misc) > 0 {
			misc = sense.Misc[0]
		}

		// One stored sense per language present in the glosses.
		byLang := map[Language][]Gloss{}
		for _, g := range sense.Gloss {
			lang := English
			if g.Lang != "" {
				if l, ok := jmdictLangs[g.Lang]; ok {
					lang = l
				}
			}
			byLang[lang] = append(byLang[lang], Gloss{Gloss: g.Text})
		}
		for _, lang := range AllLanguages() {
			glosses, ok := byLang[lang]
			if !ok {
				continue
			}
			w.Senses = append(w.Senses, Sense{
				Glosses:  glosses,
				POS:      pos,
				Misc:     misc,
				Language: lang,
			})
		}
	}
	if len(w.Senses) == 0 {
		return Word{}, false
	}
	return w, true
}

// importBatchSize bounds the rows per transaction during import.
const importBatchSize = 500

// ImportJMdict writes jmdict-simplified entries into the words table in
// batched transactions. Returns the number of imported words.
func ImportJMdict(db *sql.DB, entries []JMdictEntry) (int, error) {
	imported := 0
	for start := 0; start < len(entries); start += importBatchSize {
		end := start + importBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		tx, err := db.Begin()
		if err != nil {
			return imported, err
		}
		stmt, err := tx.Prepare(`INSERT INTO words (sequence, kana, kanji, furigana, jlpt, common, senses)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(sequence) DO UPDATE SET
			  kana = excluded.kana,
			  kanji = excluded.kanji,
			  common = excluded.common,
			  senses = excluded.senses`)
		if err != nil {
			_ = tx.Rollback()
			return imported, err
		}

		for _, entry := range entries[start:end] {
			w, ok := wordFromEntry(entry)
			if !ok {
				continue
			}
			senses, err := encodeSenses(w.Senses)
			if err != nil {
				continue
			}
			common := 0
			if w.Common {
				common = 1
			}
			if _, err := stmt.Exec(w.Sequence, w.Reading.Kana, w.Reading.Kanji, w.Furigana, w.JLPT, common, senses); err != nil {
				_ = stmt.Close()
				_ = tx.Rollback()
				return imported, fmt.Errorf("insert word %d: %w", w.Sequence, err)
			}
			imported++
		}

		if err := stmt.Close(); err != nil {
			_ = tx.Rollback()
			return imported, err
		}
		if err := tx.Commit(); err != nil {
			return imported, err
		}
	}
	return imported, nil
}
