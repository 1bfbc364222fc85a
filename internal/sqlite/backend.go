// Package sqlite implements the SQLite snapshot backend for tasktree.
//
// JSONL files in DataDir are the source of truth. Attach rebuilds a fresh
// SQLite database from them; Save writes the State to SQLite in one
// transaction and then rewrites the JSONL files from the database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

var _ types.Snapshotter = (*Backend)(nil)

// Backend implements types.Snapshotter on SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	logger   log.FieldLogger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{logger: log.StandardLogger()}
}

// SetLogger replaces the logger used for attach and save tracing.
func (b *Backend) SetLogger(logger log.FieldLogger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger != nil {
		b.logger = logger
	}
}

// Attach validates config, creates DataDir and empty JSONL files if needed,
// and loads the JSONL files into a fresh database.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	for _, name := range []string{categoriesJSONL, tasksJSONL} {
		if err := ensureJSONL(filepath.Join(dataDir, name)); err != nil {
			return err
		}
	}

	// The database is derived state; start from an empty file every time.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := loadJSONL(db, dataDir, b.logger); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.attached = true

	b.logger.WithField("data_dir", dataDir).Debug("snapshot backend attached")
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Save replaces the stored snapshot with state.
// Returns ErrDetached if the backend is not attached.
func (b *Backend) Save(state types.State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM categories"); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}

	for i, c := range state.Categories {
		if c.ID == "" {
			return fmt.Errorf("category at position %d: %w", i, types.ErrInvalidID)
		}
		if _, err := tx.Exec(
			"INSERT INTO categories (category_id, name, ordinal) VALUES (?, ?, ?)",
			c.ID, c.Name, i,
		); err != nil {
			return fmt.Errorf("saving category %s: %w", c.ID, err)
		}
		for j, t := range c.Tasks {
			if t.ID == "" {
				return fmt.Errorf("task at position %d of category %s: %w", j, c.ID, types.ErrInvalidID)
			}
			if _, err := tx.Exec(
				"INSERT INTO tasks (category_id, task_id, text, ordinal) VALUES (?, ?, ?, ?)",
				c.ID, t.ID, t.Text, j,
			); err != nil {
				return fmt.Errorf("saving task %s: %w", t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	if err := b.persistJSONL(); err != nil {
		return fmt.Errorf("persisting JSONL: %w", err)
	}

	b.logger.WithFields(log.Fields{
		"categories": state.Len(),
		"tasks":      state.TaskCount(),
	}).Debug("snapshot saved")
	return nil
}

// Load returns the stored snapshot in display order.
// Returns ErrDetached if the backend is not attached.
func (b *Backend) Load() (types.State, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.State{}, types.ErrDetached
	}

	cats, err := b.queryCategories()
	if err != nil {
		return types.State{}, err
	}
	tasks, err := b.queryTasks()
	if err != nil {
		return types.State{}, err
	}

	categories := make([]types.Category, 0, len(cats))
	for _, rec := range cats {
		c := types.Category{ID: rec.CategoryID, Name: rec.Name, Tasks: []types.Task{}}
		for _, t := range tasks[rec.CategoryID] {
			c.Tasks = append(c.Tasks, types.Task{ID: t.TaskID, Text: t.Text})
		}
		categories = append(categories, c)
	}
	return types.NewState(categories...), nil
}

func (b *Backend) queryCategories() ([]categoryRecord, error) {
	rows, err := b.db.Query("SELECT category_id, name, ordinal FROM categories ORDER BY ordinal, rowid")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []categoryRecord
	for rows.Next() {
		var rec categoryRecord
		if err := rows.Scan(&rec.CategoryID, &rec.Name, &rec.Ordinal); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// queryTasks returns tasks grouped by category ID, each group in display order.
func (b *Backend) queryTasks() (map[string][]taskRecord, error) {
	rows, err := b.db.Query("SELECT category_id, task_id, text, ordinal FROM tasks ORDER BY category_id, ordinal, rowid")
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]taskRecord)
	for rows.Next() {
		var rec taskRecord
		if err := rows.Scan(&rec.CategoryID, &rec.TaskID, &rec.Text, &rec.Ordinal); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		out[rec.CategoryID] = append(out[rec.CategoryID], rec)
	}
	return out, rows.Err()
}

// persistJSONL rewrites both JSONL files from the database.
// The caller must hold b.mu.
func (b *Backend) persistJSONL() error {
	cats, err := b.queryCategories()
	if err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(b.dataDir, categoriesJSONL), cats); err != nil {
		return fmt.Errorf("writing %s: %w", categoriesJSONL, err)
	}

	grouped, err := b.queryTasks()
	if err != nil {
		return err
	}
	var tasks []taskRecord
	for _, c := range cats {
		tasks = append(tasks, grouped[c.CategoryID]...)
	}
	if err := writeJSONL(filepath.Join(b.dataDir, tasksJSONL), tasks); err != nil {
		return fmt.Errorf("writing %s: %w", tasksJSONL, err)
	}
	return nil
}
