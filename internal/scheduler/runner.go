package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tickler/internal/model"
)

const (
	sweepPeriod = time.Second
	flushPeriod = 10 * time.Second
)

// Event announces a fired reminder. Title and Body are ready for the
// notification side channel.
type Event struct {
	Task  model.Task
	Title string
	Body  string
}

func eventFor(t model.Task) Event {
	return Event{
		Task:  t,
		Title: "Reminder: " + t.Title,
		Body:  fmt.Sprintf("%s %s", t.Date, t.Time),
	}
}

// Tasks is the slice of the store the runner drives: the reminder sweep and
// the safety-net persist.
type Tasks interface {
	Sweep(now time.Time) []model.Task
	Persist() error
}

// Runner ticks the reminder sweep once per second for the process lifetime
// and forces a persist every ten seconds as a defense against missed
// synchronous writes. Fired reminders go out on a buffered channel with
// non-blocking sends so a stalled consumer can never stall the tick loop.
type Runner struct {
	mu         sync.Mutex
	store      Tasks
	now        func() time.Time
	out        chan Event
	stopCh     chan struct{}
	doneCh     chan struct{}
	sweepEvery time.Duration
	flushEvery time.Duration
	started    bool
	stopped    bool
	dropped    uint64
}

func NewRunner(store Tasks, bufferSize int) *Runner {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Runner{
		store:      store,
		now:        time.Now,
		out:        make(chan Event, bufferSize),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		sweepEvery: sweepPeriod,
		flushEvery: flushPeriod,
	}
}

func (r *Runner) C() <-chan Event {
	return r.out
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	go r.loop()
}

func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stopCh)
	r.mu.Unlock()
	<-r.doneCh
}

func (r *Runner) Dropped() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

func (r *Runner) loop() {
	defer close(r.doneCh)
	defer close(r.out)

	sweep := time.NewTicker(r.sweepEvery)
	defer sweep.Stop()
	flush := time.NewTicker(r.flushEvery)
	defer flush.Stop()

	for {
		select {
		case <-sweep.C:
			for _, t := range r.store.Sweep(r.now()) {
				select {
				case r.out <- eventFor(t):
				default:
					atomic.AddUint64(&r.dropped, 1)
				}
			}
		case <-flush.C:
			// Best effort; the store keeps the error for the status bar.
			_ = r.store.Persist()
		case <-r.stopCh:
			return
		}
	}
}
