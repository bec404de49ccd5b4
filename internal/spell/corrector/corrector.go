// Package corrector unscrambles misspelled tokens by searching the
// permutations of their letters for a dictionary word.
//
// The search is factorial in the token length. A Corrector refuses tokens
// longer than its maximum length (ErrTooLong) and stops early when its
// context is cancelled.
package corrector

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"
)

// DefaultMaxLength is the longest token searched by default (9! candidates).
const DefaultMaxLength = 9

// cancelCheckInterval is how many candidates are tried between context checks.
const cancelCheckInterval = 1024

// ErrTooLong indicates a token exceeds the configured maximum length.
var ErrTooLong = errors.New("token too long to unscramble")

// Lookup is the dictionary view the corrector needs.
type Lookup interface {
	Contains(word string) bool
}

// Corrector finds dictionary-valid rearrangements of tokens.
// It holds no mutable state and is safe for concurrent use.
type Corrector struct {
	dict      Lookup
	maxLength int
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithMaxLength sets the longest token, in runes, that will be searched.
// Zero removes the limit.
func WithMaxLength(n int) Option {
	return func(c *Corrector) {
		if n >= 0 {
			c.maxLength = n
		}
	}
}

// New creates a corrector backed by dict.
func New(dict Lookup, opts ...Option) *Corrector {
	c := &Corrector{
		dict:      dict,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxLength returns the configured length cap (0 means unlimited).
func (c *Corrector) MaxLength() int {
	return c.maxLength
}

// Correct returns the first permutation of token that is a dictionary word,
// in generation order and with the original letter case. The boolean is
// false when no permutation matches.
func (c *Corrector) Correct(ctx context.Context, token string) (string, bool, error) {
	if n := utf8.RuneCountInString(token); c.maxLength > 0 && n > c.maxLength {
		return "", false, fmt.Errorf("%w: %q has %d letters (max %d)", ErrTooLong, token, n, c.maxLength)
	}

	tried := 0
	for candidate := range Permutations(token) {
		tried++
		if tried%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return "", false, err
			}
		}
		if candidate != "" && c.dict.Contains(candidate) {
			return candidate, true, nil
		}
	}
	return "", false, ctx.Err()
}

// Permutations yields every ordering of the runes of s.
//
// Orderings are produced lexicographically by rune position, so the first
// candidate is s itself. Repeated letters are not de-duplicated: a token of
// n runes always yields n! candidates.
func Permutations(s string) iter.Seq[string] {
	runes := []rune(s)
	return func(yield func(string) bool) {
		n := len(runes)
		used := make([]bool, n)
		out := make([]rune, 0, n)

		var walk func() bool
		walk = func() bool {
			if len(out) == n {
				return yield(string(out))
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				out = append(out, runes[i])
				if !walk() {
					return false
				}
				out = out[:len(out)-1]
				used[i] = false
			}
			return true
		}
		walk()
	}
}
