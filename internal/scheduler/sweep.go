// Package scheduler drives the once-per-second reminder sweep. The state
// transition itself is a pure function over the collection so it can be
// exercised with a fixed clock; the Runner owns the real timers and the
// event channel the UI consumes.
package scheduler

import (
	"time"

	"tickler/internal/model"
)

type Result struct {
	Tasks []model.Task
	Fired []model.Task
}

// Sweep marks every armed task whose due instant has arrived. A task fires
// at most once per arming cycle: the Notified flag stays set until an edit
// or an un-complete resets it. Done and undated tasks are skipped.
func Sweep(now time.Time, tasks []model.Task) Result {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	var fired []model.Task
	for i, t := range out {
		if t.Done || t.Notified {
			continue
		}
		due, ok := t.DueAt()
		if !ok {
			continue
		}
		if now.Before(due) {
			continue
		}
		out[i].Notified = true
		fired = append(fired, out[i])
	}
	return Result{Tasks: out, Fired: fired}
}
