package model

import (
	"sort"
	"time"
)

// Display buckets, compared before the per-bucket tie-break. Undated tasks
// share the not-done bucket but always follow dated ones.
const (
	urgencyOverdue = -1
	urgencyDated   = 0
	urgencyUndated = 1
)

type sortKey struct {
	done    int
	urgency int
	tie     int64
}

func keyFor(t Task, now time.Time) sortKey {
	due, ok := t.DueAt()
	if t.Done {
		return sortKey{done: 1, urgency: urgencyUndated, tie: -t.Created.UnixMilli()}
	}
	if !ok {
		return sortKey{done: 0, urgency: urgencyUndated, tie: -t.Created.UnixMilli()}
	}
	urgency := urgencyDated
	if due.Before(now) {
		urgency = urgencyOverdue
	}
	return sortKey{done: 0, urgency: urgency, tie: due.UnixMilli()}
}

func (a sortKey) less(b sortKey) bool {
	if a.done != b.done {
		return a.done < b.done
	}
	if a.urgency != b.urgency {
		return a.urgency < b.urgency
	}
	return a.tie < b.tie
}

// Rank returns the tasks in display order: overdue first (longest overdue at
// the top), then dated tasks soonest first, then undated tasks newest first,
// then completed tasks newest first. The input slice is not modified.
func Rank(tasks []Task, now time.Time) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return keyFor(out[i], now).less(keyFor(out[j], now))
	})
	return out
}
