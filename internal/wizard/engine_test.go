package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantSubmitter records requested delays instead of sleeping.
func instantSubmitter(slept *[]time.Duration, opts ...SubmitOption) *Submitter {
	opts = append([]SubmitOption{WithSleep(func(d time.Duration) {
		*slept = append(*slept, d)
	})}, opts...)
	return NewSubmitter(DefaultSubmitDelay, opts...)
}

func TestSubmitter_Wait(t *testing.T) {
	var slept []time.Duration
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := base
	s := instantSubmitter(&slept, WithClock(func() time.Time {
		now := clock
		clock = clock.Add(2 * time.Second)
		return now
	}))

	r, err := s.Wait("issuance")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2000 * time.Millisecond}, slept)
	assert.Equal(t, "issuance", r.Flow)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, base, r.SubmittedAt)
	assert.Equal(t, base.Add(2*time.Second), r.ConfirmedAt)
}

func TestSubmitter_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultSubmitDelay, NewSubmitter(0).Delay())
	assert.Equal(t, time.Second, NewSubmitter(time.Second).Delay())
}

func TestSubmitter_FailTimes(t *testing.T) {
	var slept []time.Duration
	s := instantSubmitter(&slept, WithFailureHook(FailTimes(1)))

	_, err := s.Wait("liquidity")
	require.ErrorIs(t, err, ErrSimulatedRejection)
	assert.Contains(t, err.Error(), "liquidity")

	_, err = s.Wait("liquidity")
	require.NoError(t, err)
}

func newTestEngine(t *testing.T, hook FailureHook, validators map[StepID]Validator, opts ...EngineOption) *Engine {
	t.Helper()
	var slept []time.Duration
	sopts := []SubmitOption{}
	if hook != nil {
		sopts = append(sopts, WithFailureHook(hook))
	}
	return NewEngine("issuance", IssuanceSteps(), func(id StepID) Validator {
		return validators[id]
	}, instantSubmitter(&slept, sopts...), opts...)
}

func TestEngine_HappyPath(t *testing.T) {
	var events []EventKind
	completed := 0
	e := newTestEngine(t, nil, nil,
		Observe(func(ev Event) { events = append(events, ev.Kind) }),
		OnComplete(func() { completed++ }),
	)

	tr, err := e.Next()
	require.NoError(t, err)
	assert.Equal(t, TransitionAdvanced, tr)

	tr, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, TransitionAdvanced, tr)
	assert.Equal(t, StepReview, e.Current().ID)

	tr, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, TransitionSubmitting, tr)
	assert.True(t, e.Processing())
	assert.Equal(t, StepProcessing, e.Current().ID)

	r, err := e.Await()
	require.NoError(t, err)
	require.NoError(t, e.Finish(r, nil))
	assert.False(t, e.Processing())
	assert.Equal(t, StepSuccess, e.Current().ID)

	got, ok := e.Receipt()
	require.True(t, ok)
	assert.Equal(t, r.ID, got.ID)

	tr, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, TransitionCompleted, tr)
	require.NoError(t, e.Complete())
	assert.Equal(t, 1, completed, "completion fires once")

	assert.Contains(t, events, EventSubmitted)
	assert.Contains(t, events, EventConfirmed)
	assert.Contains(t, events, EventCompleted)
}

func TestEngine_ValidationBlocksNext(t *testing.T) {
	e := newTestEngine(t, nil, map[StepID]Validator{
		StepBasicInfo: func() error { return Invalid(ErrRequiredField, "name", "name required") },
	})

	tr, err := e.Next()
	assert.Equal(t, TransitionNone, tr)
	assert.True(t, IsValidation(err))
	assert.Equal(t, StepBasicInfo, e.Current().ID)
}

func TestEngine_SubmitStepValidation(t *testing.T) {
	terms := false
	e := newTestEngine(t, nil, map[StepID]Validator{
		StepReview: func() error {
			if !terms {
				return Invalid(ErrNotAcknowledged, "terms", "accept the terms")
			}
			return nil
		},
	})
	_, _ = e.Next()
	_, _ = e.Next()

	_, err := e.Next()
	require.ErrorIs(t, err, ErrNotAcknowledged)
	assert.False(t, e.Processing())
	assert.Equal(t, StepReview, e.Current().ID)

	terms = true
	_, err = e.Submit()
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, e.Current().ID)
}

func TestEngine_FailureRevertsToSubmitStep(t *testing.T) {
	e := newTestEngine(t, FailTimes(1), nil)
	_, _ = e.Next()
	_, _ = e.Next()

	_, err := e.Submit()
	require.ErrorIs(t, err, ErrSimulatedRejection)
	assert.Equal(t, StepReview, e.Current().ID)
	assert.False(t, e.Processing())
	assert.ErrorIs(t, e.LastError(), ErrSimulatedRejection)

	_, err = e.Submit()
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, e.Current().ID)
	assert.NoError(t, e.LastError())
}

func TestEngine_BusyWhileProcessing(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	_, _ = e.Next()
	_, _ = e.Next()
	require.NoError(t, e.Begin())

	_, err := e.Next()
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, e.Back(), ErrBusy)
	assert.ErrorIs(t, e.Begin(), ErrBusy)
	assert.ErrorIs(t, e.Guard(func() error { return nil }), ErrBusy)
	assert.Equal(t, StepProcessing, e.Current().ID)

	require.NoError(t, e.Finish(Receipt{ID: "r1"}, nil))
	assert.ErrorIs(t, e.Finish(Receipt{}, nil), ErrNoSubmission)
}

func TestEngine_BeginOffSubmitStep(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	err := e.Begin()
	assert.ErrorIs(t, err, ErrNotSubmitStep)
	assert.ErrorIs(t, e.Complete(), ErrNotFinished)
}

func TestEngine_BackIsNoOpAfterSuccess(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	_, _ = e.Next()
	_, _ = e.Next()
	_, err := e.Submit()
	require.NoError(t, err)

	require.NoError(t, e.Back())
	assert.Equal(t, StepSuccess, e.Current().ID)
}

func TestEngine_ConcurrentNextDuringAwait(t *testing.T) {
	release := make(chan struct{})
	sub := NewSubmitter(time.Millisecond, WithSleep(func(time.Duration) { <-release }))
	e := NewEngine("liquidity", LiquiditySteps(), nil, sub)
	for i := 0; i < 3; i++ {
		_, err := e.Next()
		require.NoError(t, err)
	}
	require.Equal(t, StepDeposit, e.Current().ID)

	var wg sync.WaitGroup
	var submitErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, submitErr = e.Submit()
	}()

	require.Eventually(t, e.Processing, time.Second, time.Millisecond)
	_, err := e.Next()
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()
	require.NoError(t, submitErr)
	assert.Equal(t, StepSuccess, e.Current().ID)
}

func TestEngine_StepEnterCallback(t *testing.T) {
	var seen []StepID
	e := newTestEngine(t, nil, nil, OnStepEnter(func(st Step) { seen = append(seen, st.ID) }))
	_, _ = e.Next()
	require.NoError(t, e.Back())
	assert.Equal(t, []StepID{StepCapabilities, StepBasicInfo}, seen)
}

func TestEngine_GuardPropagatesError(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	boom := errors.New("boom")
	assert.ErrorIs(t, e.Guard(func() error { return boom }), boom)
}
