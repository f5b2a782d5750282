package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Index file names inside the index source directory.
const (
	FileNativeWords  = "word_native"
	FileNativeNames  = "name_native"
	FileKreadingFreq = "kreading_freq_index"
)

// SaveGob writes an index structure to path, creating parent directories.
func SaveGob(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadGob reads an index structure from path.
func LoadGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadReadingFreq reads the kanji reading frequency index from dir, returning
// an empty index when the file does not exist.
func LoadReadingFreq(dir string) (*ReadingFreq, error) {
	freq := NewReadingFreq()
	path := filepath.Join(dir, FileKreadingFreq)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return freq, nil
	}
	if err := LoadGob(path, freq); err != nil {
		return nil, err
	}
	return freq, nil
}
