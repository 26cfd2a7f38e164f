package version

import (
	"cmp"
	"slices"
)

// Index maps numeric version values to entries. It is built per query and
// never cached.
//
// Put overwrites: the last entry put for a value is the one kept. Values are
// compared numerically, so "007" and "7" are the same version.
type Index struct {
	scheme  Scheme
	byValue map[uint64]Entry
}

// NewIndex returns an empty index for tokens of s.
func NewIndex(s Scheme) *Index {
	return &Index{scheme: s, byValue: make(map[uint64]Entry)}
}

// Put inserts e, replacing any entry with the same version value.
// Returns [ErrMalformedToken] if e.Version is not numeric.
func (x *Index) Put(e Entry) error {
	n, err := e.Version.Value()
	if err != nil {
		return err
	}

	x.byValue[n] = e

	return nil
}

// Len returns the number of distinct versions.
func (x *Index) Len() int {
	return len(x.byValue)
}

// Get returns the entry for t's numeric value.
func (x *Index) Get(t Token) (Entry, bool, error) {
	n, err := t.Value()
	if err != nil {
		return Entry{}, false, err
	}

	e, ok := x.byValue[n]

	return e, ok, nil
}

// Entries returns the entries in descending version order.
func (x *Index) Entries() []Entry {
	values := x.values()

	out := make([]Entry, 0, len(values))
	for _, n := range values {
		out = append(out, x.byValue[n])
	}

	return out
}

// Versions returns the tokens in descending numeric order.
func (x *Index) Versions() []Token {
	entries := x.Entries()

	out := make([]Token, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Version)
	}

	return out
}

// Max returns the largest version, or the all-zero token if x is empty.
// The result is re-rendered at the scheme's width.
func (x *Index) Max() (Token, error) {
	return x.scheme.Format(x.maxValue())
}

// Latest returns the entry holding the largest version.
func (x *Index) Latest() (Entry, bool) {
	e, ok := x.byValue[x.maxValue()]
	return e, ok
}

func (x *Index) maxValue() uint64 {
	var m uint64
	for n := range x.byValue {
		m = max(m, n)
	}

	return m
}

func (x *Index) values() []uint64 {
	values := make([]uint64, 0, len(x.byValue))
	for n := range x.byValue {
		values = append(values, n)
	}

	slices.SortFunc(values, func(a, b uint64) int {
		return cmp.Compare(b, a)
	})

	return values
}
