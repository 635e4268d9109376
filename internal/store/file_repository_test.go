package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tickler/internal/model"
)

func newTestFileRepo(t *testing.T) *FileRepository {
	t.Helper()
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	// Deterministic, strictly increasing backup timestamps.
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return repo
}

func sampleTasks(n int) []model.Task {
	out := make([]model.Task, n)
	for i := range out {
		out[i] = model.Task{
			ID:      string(rune('a' + i)),
			Title:   "task",
			Date:    "2026-02-10",
			Time:    "09:00",
			Created: time.UnixMilli(1770000000000 + int64(i)),
		}
	}
	return out
}

func TestFileRepoRoundTrip(t *testing.T) {
	repo := newTestFileRepo(t)
	want := []model.Task{{
		ID:       "t1",
		Title:    "Call bank",
		Date:     "2026-02-10",
		Time:     "09:00",
		Notes:    "ask about fees",
		Notified: true,
		Created:  time.UnixMilli(1770000000000),
	}}
	if err := repo.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one task, got %d", len(got))
	}
	if got[0].ID != "t1" || got[0].Notes != "ask about fees" || !got[0].Notified {
		t.Fatalf("unexpected task: %#v", got[0])
	}
	if !got[0].Created.Equal(want[0].Created) {
		t.Fatalf("created lost precision: %v", got[0].Created)
	}
}

func TestFileRepoLoadEmptyDir(t *testing.T) {
	repo := newTestFileRepo(t)
	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %#v", got)
	}
}

func TestFileRepoBackupRotation(t *testing.T) {
	repo := newTestFileRepo(t)
	for i := 1; i <= 5; i++ {
		if err := repo.Save(sampleTasks(i)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(repo.backupPath())
	if err != nil {
		t.Fatalf("read backup log: %v", err)
	}
	var log []backupEntry
	if err := json.Unmarshal(data, &log); err != nil {
		t.Fatalf("decode backup log: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("expected 3 backup entries after 5 saves, got %d", len(log))
	}
	// The three most recent snapshots, oldest first.
	for i := 0; i < 3; i++ {
		if len(log[i].Data) != i+3 {
			t.Fatalf("entry %d holds %d tasks, want %d", i, len(log[i].Data), i+3)
		}
	}
	if !(log[0].TS < log[1].TS && log[1].TS < log[2].TS) {
		t.Fatalf("backup timestamps out of order: %d %d %d", log[0].TS, log[1].TS, log[2].TS)
	}
}

func TestFileRepoRecoversFromCorruptPrimary(t *testing.T) {
	repo := newTestFileRepo(t)
	if err := repo.Save(sampleTasks(2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(repo.primaryPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recovered tasks, got %d", len(got))
	}
}

func TestFileRepoRecoversNewestNonEmptyBackup(t *testing.T) {
	repo := newTestFileRepo(t)
	log := []backupEntry{
		{TS: 100, Data: encodeTasks(sampleTasks(3))},
		{TS: 200, Data: encodeTasks(sampleTasks(2))},
		{TS: 300, Data: nil},
	}
	data, err := json.Marshal(log)
	if err != nil {
		t.Fatalf("encode log: %v", err)
	}
	if err := os.WriteFile(repo.backupPath(), data, 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected newest non-empty backup (2 tasks), got %d", len(got))
	}
}

func TestFileRepoDegradesToEmptyWithoutUsableBackup(t *testing.T) {
	repo := newTestFileRepo(t)
	if err := os.WriteFile(repo.primaryPath(), []byte("][junk"), 0o644); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}
	if err := os.WriteFile(repo.backupPath(), []byte("also junk"), 0o644); err != nil {
		t.Fatalf("corrupt log: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %#v", got)
	}
}

func TestFileRepoEmptyPrimaryTriggersRecovery(t *testing.T) {
	repo := newTestFileRepo(t)
	if err := repo.Save(sampleTasks(2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Primary holding an empty collection is treated as a storage clear.
	if err := os.WriteFile(repo.primaryPath(), []byte("[]"), 0o644); err != nil {
		t.Fatalf("clear primary: %v", err)
	}

	got, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected recovery from backup, got %d tasks", len(got))
	}
}

func TestFileRepoCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileRepository(dir); err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("data dir missing: %v", err)
	}
}
