package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchant-prince/laravel-docker/internal/validate"
)

// scriptedReader returns canned answers and records what it was asked.
type scriptedReader struct {
	answers  []string
	defaults []*string
	err      error
}

func (s *scriptedReader) ReadLine(_ string, def *string) (string, error) {
	s.defaults = append(s.defaults, def)
	if s.err != nil {
		return "", s.err
	}
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func shorterThan(n int) validate.Validator {
	return func(answer string) error {
		if len(answer) < n {
			return nil
		}
		return validate.Fail("Oops...")
	}
}

func TestAsk_BareEnterReturnsDefault(t *testing.T) {
	var out bytes.Buffer
	q := NewQuestion("Name", WithDefault("ab"), WithValidators(shorterThan(3)))

	answer, err := q.Ask(NewPlainReader(strings.NewReader("\n"), &out), &out)

	require.NoError(t, err)
	assert.Equal(t, "ab", answer)
	assert.Equal(t, "ab", q.String())
	assert.Equal(t, Accepted, q.State())
	assert.Contains(t, out.String(), "Name [ab]: ")
}

func TestAsk_EmptyAnswerWithoutDefaultIsValidated(t *testing.T) {
	q := NewQuestion("Name", WithValidators(validate.MinLength(1)))
	r := &scriptedReader{answers: []string{"", "", ""}}

	_, err := q.Ask(r, io.Discard)

	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAsk_TooManyAttempts(t *testing.T) {
	var out bytes.Buffer
	q := NewQuestion("Name", WithValidators(shorterThan(3)))
	r := &scriptedReader{answers: []string{"long", "longer", "longest", "ok"}}

	answer, err := q.Ask(r, &out)

	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Empty(t, answer)
	assert.Empty(t, q.String())
	assert.Equal(t, Failed, q.State())
	assert.Equal(t, []string{"ok"}, r.answers, "exactly MaxTries answers are read")
	assert.Equal(t, 3, strings.Count(out.String(), "Oops..."))
}

func TestAsk_RecoversWithinLimit(t *testing.T) {
	var out bytes.Buffer
	q := NewQuestion("Name", WithValidators(shorterThan(3)), WithMaxTries(2))
	r := &scriptedReader{answers: []string{"toolong", "ok"}}

	answer, err := q.Ask(r, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", answer)
	assert.Contains(t, out.String(), "Oops...")
}

func TestAsk_PassesDefaultToReader(t *testing.T) {
	q := NewQuestion("Domain", WithDefault("application.local"))
	r := &scriptedReader{answers: []string{"shop.local"}}

	answer, err := q.Ask(r, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "shop.local", answer)
	require.Len(t, r.defaults, 1)
	require.NotNil(t, r.defaults[0])
	assert.Equal(t, "application.local", *r.defaults[0])
}

func TestAsk_ValidatorsRunInOrder(t *testing.T) {
	var calls []string
	first := func(string) error { calls = append(calls, "first"); return validate.Fail("first failed") }
	second := func(string) error { calls = append(calls, "second"); return nil }

	q := NewQuestion("Name", WithValidators(first, second), WithMaxTries(1))
	_, err := q.Ask(&scriptedReader{answers: []string{"x"}}, io.Discard)

	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, []string{"first"}, calls)
}

func TestAsk_NonValidationErrorIsFatal(t *testing.T) {
	boom := errors.New("disk on fire")
	q := NewQuestion("Name", WithValidators(func(string) error { return boom }))
	r := &scriptedReader{answers: []string{"a", "b", "c"}}

	_, err := q.Ask(r, io.Discard)

	assert.ErrorIs(t, err, boom)
	assert.Len(t, r.answers, 2)
	assert.Equal(t, Failed, q.State())
}

func TestAsk_ReaderError(t *testing.T) {
	q := NewQuestion("Name")
	_, err := q.Ask(&scriptedReader{err: ErrAborted}, io.Discard)

	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, Failed, q.State())
}

func TestAsk_NilValidator(t *testing.T) {
	q := NewQuestion("Name", WithValidators(nil))
	_, err := q.Ask(&scriptedReader{answers: []string{"x"}}, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil")
}

func TestAsk_SingleUse(t *testing.T) {
	q := NewQuestion("Name")
	_, err := q.Ask(&scriptedReader{answers: []string{"x"}}, io.Discard)
	require.NoError(t, err)

	_, err = q.Ask(&scriptedReader{answers: []string{"y"}}, io.Discard)
	assert.Error(t, err)
	assert.Equal(t, "x", q.String())
}

func TestNewQuestion_Defaults(t *testing.T) {
	q := NewQuestion("Name")
	assert.Equal(t, DefaultMaxTries, q.MaxTries)
	assert.Nil(t, q.Default)
	assert.Equal(t, Idle, q.State())
	assert.Equal(t, "idle", q.State().String())
}

func TestAsker(t *testing.T) {
	var out bytes.Buffer
	a := NewTerminalAsker(strings.NewReader("Shop\n\n"), &out, false)

	name, err := a.Ask("Project name", WithValidators(validate.PascalCase))
	require.NoError(t, err)
	domain, err := a.Ask("Domain", WithDefault("application.local"), WithValidators(validate.IsURL))
	require.NoError(t, err)

	assert.Equal(t, "Shop", name)
	assert.Equal(t, "application.local", domain)
}
