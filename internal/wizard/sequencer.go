package wizard

import (
	"github.com/mark3labs/tokenforge/internal/logger"
)

// Validator checks the active step. A nil error lets the sequencer move on.
type Validator func() error

// Pass is a Validator that always succeeds.
func Pass() error { return nil }

// Sequencer owns the current position of a wizard. It is not safe for
// concurrent use; flows serialize access.
type Sequencer struct {
	steps   []Step
	current int
	onEnter func(Step)
	log     *logger.Logger
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithOnEnter registers a callback fired whenever a step becomes current
// through Advance, Retreat or JumpTo.
func WithOnEnter(fn func(Step)) Option {
	return func(s *Sequencer) {
		s.onEnter = fn
	}
}

// WithLogger sets the logger used for transition and warning output.
func WithLogger(l *logger.Logger) Option {
	return func(s *Sequencer) {
		s.log = l
	}
}

// NewSequencer creates a sequencer positioned on the first step.
func NewSequencer(steps []Step, opts ...Option) *Sequencer {
	s := &Sequencer{
		steps: append([]Step(nil), steps...),
		log:   logger.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Advance runs validate for the current step. On failure the position is
// unchanged and the error is returned for display. On success the position
// moves forward by one, stopping at the last step.
func (s *Sequencer) Advance(validate Validator) error {
	if len(s.steps) == 0 {
		return nil
	}
	if validate != nil {
		if err := validate(); err != nil {
			s.log.Debug("advance from %s rejected: %v", s.steps[s.current].ID, err)
			return err
		}
	}
	if s.current >= len(s.steps)-1 {
		return nil
	}
	s.moveTo(s.current + 1)
	return nil
}

// Retreat moves back one step without validation, stopping at the first.
func (s *Sequencer) Retreat() {
	if s.current == 0 {
		return
	}
	s.moveTo(s.current - 1)
}

// JumpTo positions the sequencer on id. Unknown ids are logged and ignored.
func (s *Sequencer) JumpTo(id StepID) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		s.log.Warn("jump to unknown step %q ignored", id)
		return false
	}
	s.moveTo(idx)
	return true
}

func (s *Sequencer) moveTo(idx int) {
	from := s.steps[s.current].ID
	s.current = idx
	s.log.Debug("step %s -> %s", from, s.steps[idx].ID)
	if s.onEnter != nil {
		s.onEnter(s.steps[idx])
	}
}

// Current returns the active step.
func (s *Sequencer) Current() Step {
	if len(s.steps) == 0 {
		return Step{}
	}
	return s.steps[s.current]
}

// Index returns the zero-based position of the active step.
func (s *Sequencer) Index() int {
	return s.current
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	return len(s.steps)
}

// IndexOf returns the position of id, or -1.
func (s *Sequencer) IndexOf(id StepID) int {
	for i, st := range s.steps {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// Steps returns the ordered step list.
func (s *Sequencer) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Snapshot derives completed, current and disabled flags for every step
// from the current position. A step is disabled while it lies ahead of the
// current one.
func (s *Sequencer) Snapshot() []StepState {
	states := make([]StepState, len(s.steps))
	for i, st := range s.steps {
		states[i] = StepState{
			Step:        st,
			Index:       i,
			IsCompleted: i < s.current,
			IsCurrent:   i == s.current,
			IsDisabled:  i > s.current,
		}
	}
	return states
}
