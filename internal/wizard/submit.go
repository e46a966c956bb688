package wizard

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultSubmitDelay is how long a simulated transaction takes to confirm.
const DefaultSubmitDelay = 2000 * time.Millisecond

// ErrSimulatedRejection is what injected failures report by default.
var ErrSimulatedRejection = errors.New("transaction rejected by network")

// Receipt describes a confirmed simulated transaction.
type Receipt struct {
	ID          string
	Flow        string
	SubmittedAt time.Time
	ConfirmedAt time.Time
}

// FailureHook decides whether a simulated transaction fails. It is called
// after the delay with the flow name; a non-nil error fails the submission.
type FailureHook func(flow string) error

// AlwaysFail returns a hook that rejects every submission.
func AlwaysFail() FailureHook {
	return func(string) error { return ErrSimulatedRejection }
}

// FailTimes returns a hook that rejects the first n submissions and accepts
// the rest.
func FailTimes(n int) FailureHook {
	var calls atomic.Int64
	return func(string) error {
		if calls.Add(1) <= int64(n) {
			return ErrSimulatedRejection
		}
		return nil
	}
}

// Submitter stands in for broadcasting a transaction and waiting for it to
// confirm. There is no cancellation: once Wait starts it runs to the end.
type Submitter struct {
	delay time.Duration
	sleep func(time.Duration)
	now   func() time.Time
	fail  FailureHook
}

// SubmitOption configures a Submitter.
type SubmitOption func(*Submitter)

// WithFailureHook injects simulated failures.
func WithFailureHook(h FailureHook) SubmitOption {
	return func(s *Submitter) {
		s.fail = h
	}
}

// WithSleep replaces time.Sleep, for tests.
func WithSleep(fn func(time.Duration)) SubmitOption {
	return func(s *Submitter) {
		s.sleep = fn
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(fn func() time.Time) SubmitOption {
	return func(s *Submitter) {
		s.now = fn
	}
}

// NewSubmitter creates a submitter with the given confirmation delay. A
// non-positive delay means DefaultSubmitDelay.
func NewSubmitter(delay time.Duration, opts ...SubmitOption) *Submitter {
	if delay <= 0 {
		delay = DefaultSubmitDelay
	}
	s := &Submitter{
		delay: delay,
		sleep: time.Sleep,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the confirmation delay.
func (s *Submitter) Delay() time.Duration {
	return s.delay
}

// Wait blocks for the confirmation delay and returns the receipt, or the
// injected failure.
func (s *Submitter) Wait(flow string) (Receipt, error) {
	submitted := s.now()
	s.sleep(s.delay)

	if s.fail != nil {
		if err := s.fail(flow); err != nil {
			return Receipt{}, fmt.Errorf("simulated %s transaction failed: %w", flow, err)
		}
	}

	return Receipt{
		ID:          uuid.NewString(),
		Flow:        flow,
		SubmittedAt: submitted,
		ConfirmedAt: s.now(),
	}, nil
}
