package sqlite

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONL files under DataDir. They are the source of truth; tasktree.db is
// rebuilt from them on every Attach.
const (
	categoriesJSONL = "categories.jsonl"
	tasksJSONL      = "tasks.jsonl"
	dbFileName      = "tasktree.db"
)

// categoryRecord is one line of categories.jsonl.
type categoryRecord struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Ordinal    int    `json:"ordinal"`
}

// taskRecord is one line of tasks.jsonl.
type taskRecord struct {
	CategoryID string `json:"category_id"`
	TaskID     string `json:"task_id"`
	Text       string `json:"text"`
	Ordinal    int    `json:"ordinal"`
}

// ensureJSONL creates an empty file at path when none exists.
func ensureJSONL(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// readJSONL decodes each line of path into a new T and passes it to fn.
// Blank and malformed lines are skipped.
func readJSONL[T any](path string, fn func(T) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return nil
}

// writeJSONL replaces path with one JSON line per record. The file is written
// to a temp file in the same directory, synced, and renamed into place so a
// crash never leaves a half-written snapshot.
func writeJSONL[T any](path string, records []T) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
