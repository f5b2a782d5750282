package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// migrationsSQL is executed as one batch so statement parsing is delegated to
// SQLite rather than naive semicolon splitting.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS words (
    sequence INTEGER PRIMARY KEY,
    kana TEXT NOT NULL,
    kanji TEXT NOT NULL DEFAULT '',
    furigana TEXT NOT NULL DEFAULT '',
    jlpt INTEGER NOT NULL DEFAULT 0,
    common INTEGER NOT NULL DEFAULT 0,
    senses TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_words_kana ON words(kana);
CREATE INDEX IF NOT EXISTS idx_words_kanji ON words(kanji);

CREATE TABLE IF NOT EXISTS kanji (
    literal TEXT PRIMARY KEY,
    onyomi TEXT NOT NULL DEFAULT '[]',
    kunyomi TEXT NOT NULL DEFAULT '[]',
    meanings TEXT NOT NULL DEFAULT '[]',
    radical TEXT NOT NULL DEFAULT '',
    parts TEXT NOT NULL DEFAULT '',
    kun_dicts TEXT NOT NULL DEFAULT '[]',
    on_dicts TEXT NOT NULL DEFAULT '[]',
    jlpt INTEGER NOT NULL DEFAULT 0,
    stroke INTEGER NOT NULL DEFAULT 0,
    korean_h TEXT NOT NULL DEFAULT '[]',
    korean_r TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS names (
    sequence INTEGER PRIMARY KEY,
    kana TEXT NOT NULL,
    kanji TEXT NOT NULL DEFAULT '',
    transcribed TEXT NOT NULL DEFAULT '',
    name_type TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sentences (
    id INTEGER PRIMARY KEY,
    japanese TEXT NOT NULL,
    furigana TEXT NOT NULL DEFAULT '',
    jlpt INTEGER NOT NULL DEFAULT 0,
    translations TEXT NOT NULL DEFAULT '{}'
);
`

// InitDB creates the storage schema on the given connection.
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := db.Exec(migrationsSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// senseRow is the persisted JSON form of a Sense.
type senseRow struct {
	Glosses []string `json:"glosses"`
	POS     []string `json:"pos,omitempty"`
	Misc    string   `json:"misc,omitempty"`
	Lang    string   `json:"lang,omitempty"`
}

func encodeSenses(senses []Sense) (string, error) {
	rows := make([]senseRow, 0, len(senses))
	for _, s := range senses {
		row := senseRow{Misc: s.Misc, Lang: s.Language.Code()}
		for _, g := range s.Glosses {
			row.Glosses = append(row.Glosses, g.Gloss)
		}
		for _, p := range s.POS {
			row.POS = append(row.POS, p.Name())
		}
		rows = append(rows, row)
	}
	data, err := json.Marshal(rows)
	return string(data), err
}

func decodeSenses(data string) ([]Sense, error) {
	var rows []senseRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, err
	}
	senses := make([]Sense, 0, len(rows))
	for _, row := range rows {
		sense := Sense{Misc: row.Misc, Language: LanguageFromCode(row.Lang)}
		for _, g := range row.Glosses {
			sense.Glosses = append(sense.Glosses, Gloss{Gloss: g})
		}
		for _, p := range row.POS {
			if pos, ok := PosFromName(p); ok {
				sense.POS = append(sense.POS, pos)
			}
		}
		senses = append(senses, sense)
	}
	return senses, nil
}

func decodeStrings(data string) []string {
	var out []string
	_ = json.Unmarshal([]byte(data), &out)
	return out
}

func decodeSeqs(data string) []uint32 {
	var out []uint32
	_ = json.Unmarshal([]byte(data), &out)
	return out
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// LoadWords reads the whole words table.
func LoadWords(db *sql.DB) (*WordStore, error) {
	rows, err := db.Query(`SELECT sequence, kana, kanji, furigana, jlpt, common, senses FROM words`)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var words []Word
	for rows.Next() {
		var w Word
		var common int
		var senses string
		if err := rows.Scan(&w.Sequence, &w.Reading.Kana, &w.Reading.Kanji, &w.Furigana, &w.JLPT, &common, &senses); err != nil {
			return nil, err
		}
		w.Common = common != 0
		if w.Senses, err = decodeSenses(senses); err != nil {
			return nil, fmt.Errorf("word %d senses: %w", w.Sequence, err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewWordStore(words), nil
}

// LoadKanji reads the whole kanji table.
func LoadKanji(db *sql.DB) (*KanjiStore, error) {
	rows, err := db.Query(`SELECT literal, onyomi, kunyomi, meanings, radical, parts, kun_dicts, on_dicts, jlpt, stroke, korean_h, korean_r FROM kanji`)
	if err != nil {
		return nil, fmt.Errorf("load kanji: %w", err)
	}
	defer rows.Close()

	var kanji []Kanji
	for rows.Next() {
		var k Kanji
		var literal, onyomi, kunyomi, meanings, radical, parts, kunDicts, onDicts, koreanH, koreanR string
		if err := rows.Scan(&literal, &onyomi, &kunyomi, &meanings, &radical, &parts, &kunDicts, &onDicts, &k.JLPT, &k.Stroke, &koreanH, &koreanR); err != nil {
			return nil, err
		}
		k.Literal = firstRune(literal)
		k.Onyomi = decodeStrings(onyomi)
		k.Kunyomi = decodeStrings(kunyomi)
		k.Meanings = decodeStrings(meanings)
		k.Radical = firstRune(radical)
		k.Parts = []rune(parts)
		k.KunDicts = decodeSeqs(kunDicts)
		k.OnDicts = decodeSeqs(onDicts)
		k.KoreanH = decodeStrings(koreanH)
		k.KoreanR = decodeStrings(koreanR)
		kanji = append(kanji, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewKanjiStore(kanji), nil
}

// LoadNames reads the whole names table.
func LoadNames(db *sql.DB) (*NameStore, error) {
	rows, err := db.Query(`SELECT sequence, kana, kanji, transcribed, name_type FROM names`)
	if err != nil {
		return nil, fmt.Errorf("load names: %w", err)
	}
	defer rows.Close()

	var names []Name
	for rows.Next() {
		var n Name
		if err := rows.Scan(&n.Sequence, &n.Kana, &n.Kanji, &n.Transcribed, &n.NameType); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewNameStore(names), nil
}

// LoadSentences reads the whole sentences table.
func LoadSentences(db *sql.DB) (*SentenceStore, error) {
	rows, err := db.Query(`SELECT id, japanese, furigana, jlpt, translations FROM sentences`)
	if err != nil {
		return nil, fmt.Errorf("load sentences: %w", err)
	}
	defer rows.Close()

	var sentences []Sentence
	for rows.Next() {
		var s Sentence
		var translations string
		if err := rows.Scan(&s.ID, &s.Japanese, &s.Furigana, &s.JLPT, &translations); err != nil {
			return nil, err
		}
		var byCode map[string]string
		if err := json.Unmarshal([]byte(translations), &byCode); err != nil {
			return nil, fmt.Errorf("sentence %d translations: %w", s.ID, err)
		}
		s.Translations = make(map[Language]string, len(byCode))
		for code, text := range byCode {
			s.Translations[LanguageFromCode(code)] = text
		}
		sentences = append(sentences, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewSentenceStore(sentences), nil
}
