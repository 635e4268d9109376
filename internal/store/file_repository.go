package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tickler/internal/model"
)

const (
	primaryFileName = "tasks.json"
	backupFileName  = "backups.json"
	backupKeep      = 3
)

// taskRecord is the durable shape of a task. Created is epoch millis.
type taskRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Notes    string `json:"notes,omitempty"`
	Done     bool   `json:"done"`
	Notified bool   `json:"notified"`
	Created  int64  `json:"created"`
}

type backupEntry struct {
	TS   int64        `json:"ts"`
	Data []taskRecord `json:"data"`
}

// FileRepository keeps the collection in a primary JSON slot plus a rotating
// log of the three most recent snapshots. The log is the only recovery path
// when the primary slot is lost or corrupted.
type FileRepository struct {
	dir string
	now func() time.Time
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileRepository{dir: dir, now: time.Now}, nil
}

func (r *FileRepository) primaryPath() string { return filepath.Join(r.dir, primaryFileName) }
func (r *FileRepository) backupPath() string  { return filepath.Join(r.dir, backupFileName) }

// Save writes the primary slot, then appends a timestamped snapshot to the
// backup log and evicts the oldest entry beyond three.
func (r *FileRepository) Save(tasks []model.Task) error {
	records := encodeTasks(tasks)
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	if err := writeFileAtomic(r.primaryPath(), data); err != nil {
		return fmt.Errorf("store: write primary slot: %w", err)
	}
	if err := r.appendBackup(records); err != nil {
		return fmt.Errorf("store: rotate backup log: %w", err)
	}
	return nil
}

func (r *FileRepository) appendBackup(records []taskRecord) error {
	log := r.readBackups()
	log = append(log, backupEntry{TS: r.now().UnixMilli(), Data: records})
	if len(log) > backupKeep {
		log = log[len(log)-backupKeep:]
	}
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return writeFileAtomic(r.backupPath(), data)
}

// readBackups tolerates a missing or corrupt log: backups are best-effort
// and must never block a save.
func (r *FileRepository) readBackups() []backupEntry {
	data, err := os.ReadFile(r.backupPath())
	if err != nil {
		return nil
	}
	var log []backupEntry
	if err := json.Unmarshal(data, &log); err != nil {
		return nil
	}
	return log
}

// Load reads the primary slot. An absent, unparsable, or empty slot falls
// back to the newest backup snapshot that still holds at least one task;
// with no usable backup the collection starts empty. Load never fails the
// launch over corrupt state.
func (r *FileRepository) Load() ([]model.Task, error) {
	if data, err := os.ReadFile(r.primaryPath()); err == nil {
		var records []taskRecord
		if err := json.Unmarshal(data, &records); err == nil && len(records) > 0 {
			return decodeTasks(records), nil
		}
	}
	return r.recover(), nil
}

func (r *FileRepository) recover() []model.Task {
	var best *backupEntry
	log := r.readBackups()
	for i := range log {
		entry := &log[i]
		if len(entry.Data) == 0 {
			continue
		}
		if best == nil || entry.TS > best.TS {
			best = entry
		}
	}
	if best == nil {
		return nil
	}
	return decodeTasks(best.Data)
}

func (r *FileRepository) Close() error { return nil }

func encodeTasks(tasks []model.Task) []taskRecord {
	out := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		out[i] = taskRecord{
			ID:       t.ID,
			Title:    t.Title,
			Date:     t.Date,
			Time:     t.Time,
			Notes:    t.Notes,
			Done:     t.Done,
			Notified: t.Notified,
			Created:  t.Created.UnixMilli(),
		}
	}
	return out
}

func decodeTasks(records []taskRecord) []model.Task {
	out := make([]model.Task, len(records))
	for i, rec := range records {
		out[i] = model.Task{
			ID:       rec.ID,
			Title:    rec.Title,
			Date:     rec.Date,
			Time:     rec.Time,
			Notes:    rec.Notes,
			Done:     rec.Done,
			Notified: rec.Notified,
			Created:  time.UnixMilli(rec.Created),
		}
	}
	return out
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tickler-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
