package storage

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// RoundWriter persists finished rounds.
type RoundWriter interface {
	RecordRound(ctx context.Context, rec RoundRecord) error
}

// Recorder writes rounds best-effort: failed writes are retried with a
// linear backoff and the final failure is logged and returned.
type Recorder struct {
	w       RoundWriter
	logger  *log.Logger
	retries uint64
	step    time.Duration
	active  *sync.WaitGroup
}

// NewRecorder creates a recorder with three retries and a 100ms backoff step.
// A nil logger discards log output.
func NewRecorder(w RoundWriter, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		w:       w,
		logger:  logger,
		retries: 3,
		step:    100 * time.Millisecond,
		active:  &sync.WaitGroup{},
	}
}

// WithBackoff returns a copy of the recorder using step as the backoff unit.
// The copy shares in-flight tracking with r.
func (r *Recorder) WithBackoff(step time.Duration) *Recorder {
	cp := *r
	cp.step = step
	return &cp
}

// linearBackOff waits step, 2*step, 3*step, ... between attempts.
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() { b.n = 0 }

// Record writes rec, retrying on failure. Stops early if ctx is cancelled.
func (r *Recorder) Record(ctx context.Context, rec RoundRecord) error {
	r.active.Add(1)
	defer r.active.Done()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: r.step}, r.retries),
		ctx,
	)

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		r.logger.Warn("retrying round write", "round", rec.RoundID, "attempt", attempt, "wait", wait, "error", err)
	}

	err := backoff.RetryNotify(func() error {
		return r.w.RecordRound(ctx, rec)
	}, policy, notify)
	if err != nil {
		r.logger.Error("giving up on round write", "round", rec.RoundID, "player", rec.Player, "error", err)
		return err
	}

	r.logger.Info("round recorded", "round", rec.RoundID, "player", rec.Player, "score", rec.Score)
	return nil
}

// Wait blocks until every Record call in progress has returned.
func (r *Recorder) Wait() {
	r.active.Wait()
}
