package version

import "errors"

// Sentinel errors returned by version operations. Use [errors.Is] to match.
//
// Absence (missing directory, unknown version, no entries) is never an
// error: it is reported as an empty result.
var (
	// ErrMalformedToken indicates a token that is not a run of decimal
	// digits of the scheme's width. Scanned names cannot produce one, so
	// seeing it from a query means the index was fed bad data.
	ErrMalformedToken = errors.New("version: malformed token")

	// ErrVersionOverflow indicates the next version does not fit the
	// scheme's width (e.g. "999" + 1 with width 3). Tokens never wrap.
	ErrVersionOverflow = errors.New("version: overflow")

	// ErrInvalidFilter indicates the name filter is not a valid regular
	// expression.
	ErrInvalidFilter = errors.New("version: invalid name filter")

	// ErrInvalidScheme indicates an unusable [Scheme] (unknown kind, or
	// width outside 1..[MaxWidth]).
	ErrInvalidScheme = errors.New("version: invalid scheme")

	// ErrReserveConflict indicates [Reserver] could not claim a free name
	// within its attempt budget.
	ErrReserveConflict = errors.New("version: reserve conflict")

	// ErrUnsupportedKind indicates an operation that only applies to one
	// entity kind, such as [Reserver.Bump] on folders.
	ErrUnsupportedKind = errors.New("version: unsupported kind")
)
