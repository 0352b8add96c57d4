package clock

import (
	"context"
	"time"
)

// Timer is a pending delayed callback. Stop reports whether the call
// prevented the callback from running.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay. Production code wires
// SystemScheduler; tests wire ManualScheduler so delays fire only when the
// test advances time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Sleep blocks for d on the given scheduler or until ctx is done. A
// non-positive delay returns immediately.
func Sleep(ctx context.Context, s Scheduler, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	done := make(chan struct{})
	t := s.AfterFunc(d, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}
