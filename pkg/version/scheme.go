package version

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/calvinalkan/vnext/internal/fs"
)

// Kind selects what a [Scheme] versions: files or folders.
type Kind int

const (
	// KindFile matches regular files named like "base_v001.ext".
	KindFile Kind = iota + 1
	// KindFolder matches directories whose name ends in "v001".
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "file"/"files" or "folder"/"folders"/"dir".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "file", "files":
		return KindFile, nil
	case "folder", "folders", "dir", "dirs":
		return KindFolder, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidScheme, s)
	}
}

// Default naming template for an empty directory.
const (
	DefaultBase = "Name"
	DefaultExt  = "ma"
)

// Scheme describes how versions are embedded in names and where to look.
//
// The zero value is not usable; start from [Files] or [Folders] and adjust.
// A Scheme is a plain value and safe for concurrent use.
type Scheme struct {
	Kind Kind

	// Width is the number of digits in a token.
	Width int

	// DefaultBase and DefaultExt build the first file name
	// ("<DefaultBase>_v001.<DefaultExt>") when a directory has no versions.
	// Folders ignore both: the first folder is just "v001".
	DefaultBase string
	DefaultExt  string

	// FS is the filesystem to scan. Nil means the real filesystem.
	FS fs.FS
}

// Files returns the default scheme for versioned files.
func Files() Scheme {
	return Scheme{
		Kind:        KindFile,
		Width:       DefaultWidth,
		DefaultBase: DefaultBase,
		DefaultExt:  DefaultExt,
	}
}

// Folders returns the default scheme for versioned folders.
func Folders() Scheme {
	return Scheme{
		Kind:  KindFolder,
		Width: DefaultWidth,
	}
}

// Validate reports whether the scheme can be used.
func (s Scheme) Validate() error {
	if s.Kind != KindFile && s.Kind != KindFolder {
		return fmt.Errorf("%w: kind %s", ErrInvalidScheme, s.Kind)
	}

	if s.Width < 1 || s.Width > MaxWidth {
		return fmt.Errorf("%w: width %d not in 1..%d", ErrInvalidScheme, s.Width, MaxWidth)
	}

	return nil
}

func (s Scheme) fsys() fs.FS {
	if s.FS == nil {
		return fs.NewReal()
	}

	return s.FS
}

type patternKey struct {
	kind  Kind
	width int
}

var patterns sync.Map // patternKey -> *regexp.Regexp

// pattern returns the token regexp. Submatch 1 is the digit run.
//
// Files: "v" + W digits + ".". Folders: "v" + W digits at end of name.
// Requiring the "v" right before and the terminator right after makes the
// width exact: "v1234." never matches width 3.
func (s Scheme) pattern() *regexp.Regexp {
	key := patternKey{kind: s.Kind, width: s.Width}
	if re, ok := patterns.Load(key); ok {
		return re.(*regexp.Regexp)
	}

	expr := fmt.Sprintf(`v([0-9]{%d})\.`, s.Width)
	if s.Kind == KindFolder {
		expr = fmt.Sprintf(`v([0-9]{%d})$`, s.Width)
	}

	re, _ := patterns.LoadOrStore(key, regexp.MustCompile(expr))

	return re.(*regexp.Regexp)
}

// tokenSpan returns the byte offsets of the first token in name, or ok=false.
func (s Scheme) tokenSpan(name string) (start, end int, ok bool) {
	loc := s.pattern().FindStringSubmatchIndex(name)
	if loc == nil {
		return 0, 0, false
	}

	return loc[2], loc[3], true
}

// ParseVersion extracts the token from the base name of name. Only the
// leftmost match counts.
func (s Scheme) ParseVersion(name string) (Token, bool) {
	if s.Validate() != nil {
		return "", false
	}

	base := filepath.Base(name)

	start, end, ok := s.tokenSpan(base)
	if !ok {
		return "", false
	}

	return Token(base[start:end]), true
}

// Rename replaces the token in name with t, keeping everything else. It
// replaces the same (leftmost) token [Scheme.ParseVersion] reads, so
// ParseVersion(Rename(name, t)) == t.
func (s Scheme) Rename(name string, t Token) (string, bool) {
	start, end, ok := s.tokenSpan(name)
	if !ok {
		return "", false
	}

	return name[:start] + string(t) + name[end:], true
}

// FirstName returns the name for token t in a directory with no versions.
//
// Files use the filter's extension if set, else the scheme's DefaultExt,
// else the package [DefaultExt]; a leading "." on any of them is tolerated.
// An empty DefaultBase likewise falls back to the package [DefaultBase].
func (s Scheme) FirstName(t Token, f Filter) string {
	if s.Kind == KindFolder {
		return "v" + string(t)
	}

	ext := strings.TrimPrefix(f.Ext, ".")
	if ext == "" {
		ext = strings.TrimPrefix(s.DefaultExt, ".")
	}

	if ext == "" {
		ext = DefaultExt
	}

	base := s.DefaultBase
	if base == "" {
		base = DefaultBase
	}

	return base + "_v" + string(t) + "." + ext
}
