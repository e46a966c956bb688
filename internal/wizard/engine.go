package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/tokenforge/internal/logger"
)

// Transition reports what Next did.
type Transition int

const (
	// TransitionNone means the position did not change.
	TransitionNone Transition = iota
	// TransitionAdvanced means the next step is now current.
	TransitionAdvanced
	// TransitionSubmitting means the submit step validated and the
	// submission began; the caller must Await and Finish it.
	TransitionSubmitting
	// TransitionCompleted means the completion callback ran.
	TransitionCompleted
)

// EventKind classifies engine events.
type EventKind string

const (
	EventStepEntered EventKind = "step_entered"
	EventSubmitted   EventKind = "submitted"
	EventConfirmed   EventKind = "confirmed"
	EventFailed      EventKind = "failed"
	EventCompleted   EventKind = "completed"
)

// Event is emitted to observers after each state change.
type Event struct {
	Flow    string
	Kind    EventKind
	Step    StepID
	Err     error
	Receipt *Receipt
}

// Engine drives one wizard instance: it owns the sequencer, the processing
// flag and the completion state, and serializes every mutation of the
// flow's form through Guard. Observers run after the lock is released.
type Engine struct {
	mu         sync.Mutex
	name       string
	seq        *Sequencer
	submitter  *Submitter
	validator  func(StepID) Validator
	submitStep StepID
	processing bool
	lastErr    error
	receipt    *Receipt
	completed  bool
	onComplete func()
	onEnter    []func(Step)
	observers  []func(Event)
	pending    []Event
	log        *logger.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// OnComplete registers the callback run once the user proceeds from
// success.
func OnComplete(fn func()) EngineOption {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// OnStepEnter registers a callback run, under the engine lock, whenever a
// step becomes current. It must not call back into the engine.
func OnStepEnter(fn func(Step)) EngineOption {
	return func(e *Engine) {
		e.onEnter = append(e.onEnter, fn)
	}
}

// Observe registers an event observer. Observers run outside the lock.
func Observe(fn func(Event)) EngineOption {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// NewEngine creates an engine for the named flow. validator maps a step to
// its validator; nil means the step always passes.
func NewEngine(name string, steps []Step, validator func(StepID) Validator, submitter *Submitter, opts ...EngineOption) *Engine {
	e := &Engine{
		name:      name,
		validator: validator,
		submitter: submitter,
		log:       logger.Default.With(name),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.submitter == nil {
		e.submitter = NewSubmitter(DefaultSubmitDelay)
	}
	for _, st := range steps {
		if st.Kind == KindSubmit {
			e.submitStep = st.ID
		}
	}
	e.seq = NewSequencer(steps, WithLogger(e.log), WithOnEnter(e.entered))
	return e
}

// entered runs under e.mu.
func (e *Engine) entered(st Step) {
	for _, fn := range e.onEnter {
		fn(st)
	}
	e.pending = append(e.pending, Event{Flow: e.name, Kind: EventStepEntered, Step: st.ID})
}

func (e *Engine) emit(ev Event) {
	ev.Flow = e.name
	e.pending = append(e.pending, ev)
}

// flush delivers queued events. Call it without holding e.mu.
func (e *Engine) flush() {
	e.mu.Lock()
	events := e.pending
	e.pending = nil
	observers := e.observers
	e.mu.Unlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// Name returns the flow name.
func (e *Engine) Name() string {
	return e.name
}

// Guard runs fn under the engine lock unless a submission is in flight, in
// which case it returns ErrBusy. Forms mutate only inside Guard.
func (e *Engine) Guard(fn func() error) error {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.processing {
		return ErrBusy
	}
	return fn()
}

// Read runs fn under the engine lock, including during submission.
func (e *Engine) Read(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

func (e *Engine) validate(id StepID) error {
	if e.validator == nil {
		return nil
	}
	v := e.validator(id)
	if v == nil {
		return nil
	}
	return v()
}

// Next validates the current step and moves on. On the submit step it
// begins the submission instead; on success it completes the flow.
func (e *Engine) Next() (Transition, error) {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.processing {
		return TransitionNone, ErrBusy
	}

	switch e.seq.Current().Kind {
	case KindSubmit:
		if err := e.begin(); err != nil {
			return TransitionNone, err
		}
		return TransitionSubmitting, nil
	case KindSuccess:
		if err := e.complete(); err != nil {
			return TransitionNone, err
		}
		return TransitionCompleted, nil
	case KindProcessing:
		// Processing is only left through Finish.
		return TransitionNone, ErrBusy
	default:
		id := e.seq.Current().ID
		before := e.seq.Index()
		if err := e.seq.Advance(func() error { return e.validate(id) }); err != nil {
			return TransitionNone, err
		}
		if e.seq.Index() == before {
			return TransitionNone, nil
		}
		return TransitionAdvanced, nil
	}
}

// Back moves to the previous step. It is refused while processing and is a
// no-op once the flow has succeeded.
func (e *Engine) Back() error {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.processing {
		return ErrBusy
	}
	if e.seq.Current().Kind == KindSuccess {
		return nil
	}
	e.seq.Retreat()
	return nil
}

// Begin validates the submit step, raises the processing flag and moves to
// the processing step.
func (e *Engine) Begin() error {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.processing {
		return ErrBusy
	}
	return e.begin()
}

func (e *Engine) begin() error {
	cur := e.seq.Current()
	if cur.Kind != KindSubmit {
		return fmt.Errorf("%w: current step is %s", ErrNotSubmitStep, cur.ID)
	}
	if err := e.validate(cur.ID); err != nil {
		return err
	}
	e.processing = true
	e.lastErr = nil
	e.seq.JumpTo(StepProcessing)
	e.emit(Event{Kind: EventSubmitted, Step: cur.ID})
	e.log.Info("submission started")
	return nil
}

// Await blocks for the simulated confirmation. It holds no lock, so the
// flow stays readable while it runs.
func (e *Engine) Await() (Receipt, error) {
	return e.submitter.Wait(e.name)
}

// Finish records the submission outcome: success moves to the success
// step; failure returns to the submit step so the user can retry.
func (e *Engine) Finish(r Receipt, err error) error {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.processing {
		return ErrNoSubmission
	}
	e.processing = false
	if err != nil {
		e.lastErr = err
		e.seq.JumpTo(e.submitStep)
		e.emit(Event{Kind: EventFailed, Step: e.submitStep, Err: err})
		e.log.Warn("submission failed: %v", err)
		return err
	}

	e.receipt = &r
	e.seq.JumpTo(StepSuccess)
	e.emit(Event{Kind: EventConfirmed, Step: StepSuccess, Receipt: &r})
	e.log.Info("submission confirmed: %s", r.ID)
	return nil
}

// Submit runs Begin, Await and Finish in sequence.
func (e *Engine) Submit() (Receipt, error) {
	if err := e.Begin(); err != nil {
		return Receipt{}, err
	}
	r, err := e.Await()
	if ferr := e.Finish(r, err); ferr != nil {
		return Receipt{}, ferr
	}
	return r, nil
}

// Complete runs the completion callback once the flow has succeeded.
func (e *Engine) Complete() error {
	defer e.flush()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.complete()
}

func (e *Engine) complete() error {
	if e.seq.Current().Kind != KindSuccess {
		return ErrNotFinished
	}
	if e.completed {
		return nil
	}
	e.completed = true
	e.emit(Event{Kind: EventCompleted, Step: StepSuccess})
	if e.onComplete != nil {
		e.onComplete()
	}
	return nil
}

// Processing reports whether a submission is in flight.
func (e *Engine) Processing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.processing
}

// LastError returns the most recent submission failure, cleared when a new
// submission begins.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Receipt returns the confirmed receipt, if any.
func (e *Engine) Receipt() (Receipt, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.receipt == nil {
		return Receipt{}, false
	}
	return *e.receipt, true
}

// Current returns the active step.
func (e *Engine) Current() Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Current()
}

// Steps returns the progress-rail view of every step.
func (e *Engine) Steps() []StepState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Snapshot()
}

// SubmitDelay returns the simulated confirmation delay.
func (e *Engine) SubmitDelay() time.Duration {
	return e.submitter.Delay()
}
