package version

import (
	"fmt"
	"strconv"
)

// Token is a zero-padded decimal version number such as "007".
//
// A Token carries no width of its own; the [Scheme] that produced it does.
type Token string

func (t Token) String() string {
	return string(t)
}

// Value returns the numeric value of t. Leading zeros are ignored, so "007"
// and "7" have the same value.
//
// Returns [ErrMalformedToken] if t is empty or contains anything other than
// decimal digits.
func (t Token) Value() (uint64, error) {
	if t == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedToken)
	}

	for i := range len(t) {
		if t[i] < '0' || t[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedToken, string(t))
		}
	}

	n, err := strconv.ParseUint(string(t), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedToken, string(t), err)
	}

	return n, nil
}

// MaxWidth is the widest token a [Scheme] supports. 10^18 still fits a uint64.
const MaxWidth = 18

// DefaultWidth is the token width used by [Files] and [Folders].
const DefaultWidth = 3

// limit returns 10^width, the first value that no longer fits.
func limit(width int) uint64 {
	n := uint64(1)
	for range width {
		n *= 10
	}

	return n
}

// Zero returns the all-zero token, which stands for "no version yet".
func (s Scheme) Zero() Token {
	tok, _ := s.Format(0)
	return tok
}

// Format renders n zero-padded to the scheme's width.
//
// Returns [ErrVersionOverflow] if n needs more digits than the width allows.
func (s Scheme) Format(n uint64) (Token, error) {
	if n >= limit(s.Width) {
		return "", fmt.Errorf("%w: %d does not fit %d digits", ErrVersionOverflow, n, s.Width)
	}

	return Token(fmt.Sprintf("%0*d", s.Width, n)), nil
}

// ParseToken validates str as a token of exactly the scheme's width.
func (s Scheme) ParseToken(str string) (Token, error) {
	tok := Token(str)

	if _, err := tok.Value(); err != nil {
		return "", err
	}

	if len(str) != s.Width {
		return "", fmt.Errorf("%w: %q is not %d digits", ErrMalformedToken, str, s.Width)
	}

	return tok, nil
}

// Increment returns the token after t.
//
// Returns [ErrMalformedToken] for an invalid t and [ErrVersionOverflow] when
// t is the largest value of the width.
func (s Scheme) Increment(t Token) (Token, error) {
	n, err := t.Value()
	if err != nil {
		return "", err
	}

	if n >= limit(s.Width)-1 {
		return "", fmt.Errorf("%w: %s is the last %d-digit version", ErrVersionOverflow, t, s.Width)
	}

	return s.Format(n + 1)
}
