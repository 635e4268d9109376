package store

import (
	"sync"
	"time"

	"tickler/internal/model"
	"tickler/internal/scheduler"
)

// Store owns the live collection. Every mutator writes the full snapshot
// through to the repository before returning and then raises the change
// callback so the view re-renders. A failed persist never loses the
// in-memory state; the error is kept for the status bar and the next
// mutation tries again.
type Store struct {
	mu       sync.Mutex
	repo     Repository
	tasks    []model.Task
	now      func() time.Time
	onChange func()
	lastErr  error
}

// Open loads the collection, letting the repository run its recovery path.
func Open(repo Repository) (*Store, error) {
	tasks, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return &Store{repo: repo, tasks: tasks, now: time.Now}, nil
}

// OnChange registers the re-render hook. Must be set before mutations begin.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) Add(title, date, clock, notes string) (model.Task, error) {
	s.mu.Lock()
	task, err := model.New(title, date, clock, notes, s.now())
	if err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	s.persistLocked()
	s.mu.Unlock()

	s.notifyChanged()
	return task, nil
}

// Remove is idempotent; deleting an unknown id changes nothing.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	kept := s.tasks[:0]
	removed := false
	for _, t := range s.tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if removed {
		s.notifyChanged()
	}
}

func (s *Store) Update(id string, fields model.Fields) (model.Task, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, ErrNotFound
	}
	s.tasks[idx] = s.tasks[idx].Apply(fields)
	updated := s.tasks[idx]
	s.persistLocked()
	s.mu.Unlock()

	s.notifyChanged()
	return updated, nil
}

// ToggleDone flips completion. Completing a task also marks it notified so
// the reminder can never fire retroactively; un-completing re-arms it, which
// deliberately re-fires on the next sweep when the due instant has passed.
func (s *Store) ToggleDone(id string) (model.Task, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, ErrNotFound
	}
	s.tasks[idx].Done = !s.tasks[idx].Done
	s.tasks[idx].Notified = s.tasks[idx].Done
	updated := s.tasks[idx]
	s.persistLocked()
	s.mu.Unlock()

	s.notifyChanged()
	return updated, nil
}

// Tasks returns an unordered snapshot of the collection.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Ranked returns the collection in display order as of now.
func (s *Store) Ranked(now time.Time) []model.Task {
	s.mu.Lock()
	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()
	return model.Rank(tasks, now)
}

// Sweep applies the reminder transition, persisting only when something
// fired, and returns the fired tasks for the notification side channel.
func (s *Store) Sweep(now time.Time) []model.Task {
	s.mu.Lock()
	result := scheduler.Sweep(now, s.tasks)
	if len(result.Fired) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.tasks = result.Tasks
	s.persistLocked()
	s.mu.Unlock()

	s.notifyChanged()
	return result.Fired
}

// Persist forces a snapshot write outside a mutation: the safety-net timer,
// focus loss, and shutdown all come through here.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// Err reports the most recent persist failure, nil once a write succeeds.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) Close() error {
	return s.repo.Close()
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() error {
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.lastErr = s.repo.Save(snapshot)
	return s.lastErr
}

func (s *Store) notifyChanged() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
