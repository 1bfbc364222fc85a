package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// loadJSONL reads categories.jsonl and tasks.jsonl from dataDir into the
// database in one transaction. Records that violate a constraint (duplicate
// IDs, tasks whose category is missing) are skipped and logged.
func loadJSONL(db *sql.DB, dataDir string, logger log.FieldLogger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	catStmt, err := tx.Prepare("INSERT INTO categories (category_id, name, ordinal) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing category insert: %w", err)
	}
	defer catStmt.Close()

	known := make(map[string]bool)
	err = readJSONL(filepath.Join(dataDir, categoriesJSONL), func(rec categoryRecord) error {
		if rec.CategoryID == "" {
			logger.WithError(types.ErrInvalidID).Warn("skipping category record")
			return nil
		}
		if _, err := catStmt.Exec(rec.CategoryID, rec.Name, rec.Ordinal); err != nil {
			logger.WithError(err).WithField("category_id", rec.CategoryID).Warn("skipping category record")
			return nil
		}
		known[rec.CategoryID] = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", categoriesJSONL, err)
	}

	taskStmt, err := tx.Prepare("INSERT INTO tasks (category_id, task_id, text, ordinal) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer taskStmt.Close()

	err = readJSONL(filepath.Join(dataDir, tasksJSONL), func(rec taskRecord) error {
		entry := logger.WithField("category_id", rec.CategoryID).WithField("task_id", rec.TaskID)
		switch {
		case rec.TaskID == "":
			entry.WithError(types.ErrInvalidID).Warn("skipping task record")
		case !known[rec.CategoryID]:
			entry.WithError(types.ErrOrphanTask).Warn("skipping task record")
		default:
			if _, err := taskStmt.Exec(rec.CategoryID, rec.TaskID, rec.Text, rec.Ordinal); err != nil {
				entry.WithError(err).Warn("skipping task record")
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", tasksJSONL, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
