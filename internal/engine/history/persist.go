package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// record is the wire form of one persisted entry.
type record struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

// Save writes the store to path as JSON Lines, newest first, one entry
// per line. The file is written to a temporary sibling and renamed into
// place so readers never see a partial history.
func (s *Store) Save(path string) error {
	entries := s.All()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("writing history %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		rec := record{
			ID:         e.ID,
			Expression: e.Expression,
			Result:     e.Result,
			Timestamp:  e.Timestamp.Format(time.RFC3339Nano),
		}
		if err := enc.Encode(rec); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding history entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing history %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing history %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing history %s: %w", path, err)
	}
	return nil
}

// Load replaces the store contents from a JSON Lines file previously
// written by Save. A missing file leaves the store untouched and is not
// an error.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading history %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("reading history %s line %d: %w", path, line, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			return fmt.Errorf("reading history %s line %d: %w", path, line, err)
		}

		entries = append(entries, Entry{
			ID:         rec.ID,
			Expression: rec.Expression,
			Result:     rec.Result,
			Timestamp:  ts,
		})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading history %s: %w", path, err)
	}

	s.replace(entries)
	return nil
}
