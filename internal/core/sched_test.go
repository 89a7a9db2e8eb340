package core

import (
	"testing"
	"time"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(200*time.Millisecond, func() { order = append(order, "b") })
	s.After(100*time.Millisecond, func() { order = append(order, "a2") })

	s.Advance(250 * time.Millisecond)

	expected := []string{"a", "a2", "b"}
	if len(order) != len(expected) {
		t.Fatalf("ran %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %q, expected %q", i, order[i], expected[i])
		}
	}

	if s.Now() != 250*time.Millisecond {
		t.Errorf("Now() = %v, expected 250ms", s.Now())
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
}

func TestSchedulerNowDuringCallback(t *testing.T) {
	s := NewScheduler()
	var seen time.Duration

	s.After(120*time.Millisecond, func() { seen = s.Now() })
	s.Advance(time.Second)

	if seen != 120*time.Millisecond {
		t.Errorf("Now() inside callback = %v, expected 120ms", seen)
	}
}

func TestSchedulerRescheduleFromCallback(t *testing.T) {
	s := NewScheduler()
	fires := 0

	var tick func()
	tick = func() {
		fires++
		s.After(100*time.Millisecond, tick)
	}
	s.After(100*time.Millisecond, tick)

	s.Advance(350 * time.Millisecond)
	if fires != 3 {
		t.Errorf("periodic task fired %d times in 350ms, expected 3", fires)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false

	id := s.After(50*time.Millisecond, func() { ran = true })
	if !s.Cancel(id) {
		t.Fatal("Cancel() of pending task should return true")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should return false")
	}
	if s.Cancel(0) {
		t.Error("Cancel(0) should return false")
	}

	s.Advance(time.Second)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler()
	ran := 0
	for i := 1; i <= 5; i++ {
		s.After(time.Duration(i)*time.Millisecond, func() { ran++ })
	}

	s.CancelAll()
	s.Advance(time.Second)

	if ran != 0 {
		t.Errorf("%d tasks ran after CancelAll", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after CancelAll", s.Pending())
	}
}

func TestSchedulerCancelAllFromCallback(t *testing.T) {
	s := NewScheduler()
	later := false

	s.After(10*time.Millisecond, func() { s.CancelAll() })
	s.After(20*time.Millisecond, func() { later = true })
	s.Advance(time.Second)

	if later {
		t.Error("task scheduled after CancelAll callback should not run")
	}
}

func TestSchedulerNegativeAdvance(t *testing.T) {
	s := NewScheduler()
	s.Advance(100 * time.Millisecond)
	s.Advance(-time.Second)

	if s.Now() != 100*time.Millisecond {
		t.Errorf("negative Advance moved the clock to %v", s.Now())
	}
}
