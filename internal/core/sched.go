package core

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task. The zero value is never issued, so it
// can be used as "no task".
type TaskID uint64

type scheduledTask struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler runs callbacks against a simulated clock owned by the game loop.
// Nothing fires on its own: time moves only when the owner calls Advance,
// so every task runs on the caller's goroutine in deterministic order.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  []scheduledTask // sorted by (due, id)
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d.
// Non-positive delays run on the next Advance call.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.nextID++
	task := scheduledTask{id: s.nextID, due: s.now + max(d, 0), fn: fn}

	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].due > task.due
	})
	s.tasks = append(s.tasks, scheduledTask{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = task

	return task.id
}

// Cancel removes a pending task. Returns false if it already ran or was
// never scheduled.
func (s *Scheduler) Cancel(id TaskID) bool {
	if id == 0 {
		return false
	}
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by d, running due tasks in order.
// During a callback Now reports the task's due time, and tasks it schedules
// run in the same call if they fall due before the target time.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + max(d, 0)

	for len(s.tasks) > 0 && s.tasks[0].due <= target {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.now = task.due
		task.fn()
	}

	s.now = target
}
