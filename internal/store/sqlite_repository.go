package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tickler/internal/model"
)

// SQLiteRepository is the alternate backend behind `storage = "sqlite"`. It
// stores the same snapshot the file backend does, one row per task, and
// leans on the engine's own journal instead of a backup log.
type SQLiteRepository struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	repo := &SQLiteRepository{db: db}
	if err := repo.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	done INTEGER NOT NULL DEFAULT 0,
	notified INTEGER NOT NULL DEFAULT 0,
	created INTEGER NOT NULL
);`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot in one transaction, matching the
// write-through full-collection contract of Repository.
func (r *SQLiteRepository) Save(tasks []model.Task) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store: clear snapshot: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (id, title, date, time, notes, done, notified, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, t := range tasks {
		if _, err := stmt.Exec(t.ID, t.Title, t.Date, t.Time, t.Notes, boolInt(t.Done), boolInt(t.Notified), t.Created.UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: insert task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Load() ([]model.Task, error) {
	rows, err := r.db.Query(`SELECT id, title, date, time, notes, done, notified, created FROM tasks ORDER BY created`)
	if err != nil {
		return nil, fmt.Errorf("store: load snapshot: %w", err)
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		var done, notified int
		var created int64
		if err := rows.Scan(&t.ID, &t.Title, &t.Date, &t.Time, &t.Notes, &done, &notified, &created); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		t.Done = done == 1
		t.Notified = notified == 1
		t.Created = time.UnixMilli(created)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
