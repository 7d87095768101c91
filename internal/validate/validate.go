// Package validate provides the predicates used to check prompt answers.
//
// A Validator accepts an answer silently by returning nil, or rejects it with
// an *Error carrying a message suitable for showing to the user.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator checks a single answer.
type Validator func(answer string) error

// Error is returned by a Validator when the answer is unacceptable.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Fail returns a validation error with the given message.
func Fail(message string) error {
	return &Error{Message: message}
}

// IsValidationError reports whether err is (or wraps) a validation error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var (
	pascalCaseRegex = regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z]+)*$`)

	// urlRegex accepts a scheme, a host (domain labels, localhost or an IPv4
	// address), an optional port and an optional path.
	urlRegex = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
		`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)
)

// PascalCase rejects anything that is not a sequence of capitalized
// alphabetic words, e.g. "MyShop".
func PascalCase(answer string) error {
	if !pascalCaseRegex.MatchString(answer) {
		return Fail("The provided value is not a PascalCased alphabetic string.")
	}
	return nil
}

// DirectoryExists returns a validator that rejects a name when a directory
// with that name exists in base at call time.
func DirectoryExists(base string) Validator {
	return func(answer string) error {
		if answer == "" {
			return nil
		}
		info, err := os.Stat(filepath.Join(base, answer))
		if err == nil && info.IsDir() {
			return Fail("Another directory with the same name already exists in the current directory.")
		}
		return nil
	}
}

// IsURL rejects anything that does not parse as host[:port][/path] once
// prefixed with "https://".
func IsURL(answer string) error {
	if !urlRegex.MatchString("https://" + answer) {
		return Fail("The provided value is not a valid domain.")
	}
	return nil
}

// IsAlphabetic rejects empty answers and answers with non-letter characters.
func IsAlphabetic(answer string) error {
	if !allRunes(answer, unicode.IsLetter) {
		return Fail("The provided value is not alphabetic.")
	}
	return nil
}

// IsAlphanumeric rejects empty answers and answers with characters other
// than letters and digits.
func IsAlphanumeric(answer string) error {
	if !allRunes(answer, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
		return Fail("The provided value is not alphanumeric.")
	}
	return nil
}

// IsDigit rejects empty answers and answers with non-digit characters.
func IsDigit(answer string) error {
	if !allRunes(answer, unicode.IsDigit) {
		return Fail("The provided value does not contain digits only.")
	}
	return nil
}

// IsLowercase rejects answers containing upper case letters.
func IsLowercase(answer string) error {
	if strings.ToLower(answer) != answer {
		return Fail("The provided value is not lowercase.")
	}
	return nil
}

// MinLength returns a validator rejecting answers shorter than n characters.
func MinLength(n int) Validator {
	return func(answer string) error {
		if utf8.RuneCountInString(answer) < n {
			return Fail(fmt.Sprintf("The provided value should be longer than %d characters.", n))
		}
		return nil
	}
}

// MaxLength returns a validator rejecting answers longer than n characters.
func MaxLength(n int) Validator {
	return func(answer string) error {
		if utf8.RuneCountInString(answer) > n {
			return Fail(fmt.Sprintf("The provided value should not be longer than %d characters.", n))
		}
		return nil
	}
}

// Chain runs validators in order and stops at the first failure.
func Chain(validators ...Validator) Validator {
	return func(answer string) error {
		for _, v := range validators {
			if err := v(answer); err != nil {
				return err
			}
		}
		return nil
	}
}

// Optional accepts the empty answer and otherwise applies validators in order.
func Optional(validators ...Validator) Validator {
	chained := Chain(validators...)
	return func(answer string) error {
		if answer == "" {
			return nil
		}
		return chained(answer)
	}
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
