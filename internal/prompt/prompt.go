// Package prompt asks the user questions and validates the answers, retrying
// a bounded number of times.
package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/merchant-prince/laravel-docker/internal/output"
	"github.com/merchant-prince/laravel-docker/internal/validate"
)

// DefaultMaxTries is the number of attempts a question allows by default.
const DefaultMaxTries = 3

var (
	// ErrTooManyAttempts is returned when every attempt failed validation.
	ErrTooManyAttempts = errors.New("you have entered the wrong input too many times")

	// ErrAborted is returned when the user cancels the input.
	ErrAborted = errors.New("input aborted")
)

// State is the lifecycle state of a Question.
type State int

const (
	// Idle means the question has not been asked yet.
	Idle State = iota
	// Reading means an answer is being read.
	Reading
	// Validating means the validators are running.
	Validating
	// Accepted means an answer passed every validator.
	Accepted
	// Failed means the question gave up.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Validating:
		return "validating"
	case Accepted:
		return "accepted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LineReader reads one answer. When def is non-nil the reader offers it so
// that confirming without edits yields *def.
type LineReader interface {
	ReadLine(question string, def *string) (string, error)
}

// Question is a single question with its validators. A Question is asked at
// most once; create a new one to ask again.
type Question struct {
	Text       string
	Validators []validate.Validator
	Default    *string
	MaxTries   int

	state  State
	answer string
}

// Option configures a Question.
type Option func(*Question)

// WithDefault sets the default answer.
func WithDefault(def string) Option {
	return func(q *Question) {
		q.Default = &def
	}
}

// WithValidators appends validators, which run in order.
func WithValidators(validators ...validate.Validator) Option {
	return func(q *Question) {
		q.Validators = append(q.Validators, validators...)
	}
}

// WithMaxTries sets the number of attempts.
func WithMaxTries(n int) Option {
	return func(q *Question) {
		q.MaxTries = n
	}
}

// NewQuestion creates a question.
func NewQuestion(text string, opts ...Option) *Question {
	q := &Question{Text: text, MaxTries: DefaultMaxTries}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// State returns the current state.
func (q *Question) State() State {
	return q.state
}

// String returns the accepted answer, or "" if none was accepted.
func (q *Question) String() string {
	if q.state != Accepted {
		return ""
	}
	return q.answer
}

// Ask reads answers from r until one passes every validator. Validation
// messages are written to out. After MaxTries rejected answers Ask returns
// ErrTooManyAttempts.
func (q *Question) Ask(r LineReader, out io.Writer) (string, error) {
	if q.state != Idle {
		return "", fmt.Errorf("question %q was already asked", q.Text)
	}
	for i, v := range q.Validators {
		if v == nil {
			q.state = Failed
			return "", fmt.Errorf("question %q: validator %d is nil", q.Text, i)
		}
	}

	tries := q.MaxTries
	if tries <= 0 {
		tries = DefaultMaxTries
	}

	for attempt := 1; attempt <= tries; attempt++ {
		q.state = Reading
		answer, err := r.ReadLine(q.Text, q.Default)
		if err != nil {
			q.state = Failed
			return "", fmt.Errorf("reading answer to %q: %w", q.Text, err)
		}
		if answer == "" && q.Default != nil {
			answer = *q.Default
		}

		q.state = Validating
		if err := q.validate(answer); err != nil {
			if !validate.IsValidationError(err) {
				q.state = Failed
				return "", err
			}
			output.Debug("answer rejected", "question", q.Text, "attempt", attempt, "reason", err)
			fmt.Fprintf(out, "\n%s\n\n", output.StyleWarning.Render(err.Error()))
			continue
		}

		q.answer = answer
		q.state = Accepted
		return answer, nil
	}

	q.state = Failed
	return "", ErrTooManyAttempts
}

func (q *Question) validate(answer string) error {
	for _, v := range q.Validators {
		if err := v(answer); err != nil {
			return err
		}
	}
	return nil
}
