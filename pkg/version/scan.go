package version

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// Filter narrows which names a scan considers. Empty fields disable the
// corresponding check.
type Filter struct {
	// Name is a regular expression searched anywhere in the name (not
	// anchored).
	Name string

	// Ext must be a suffix of the name. Ignored for folders.
	Ext string
}

// Entry is a versioned file or folder found by a scan.
type Entry struct {
	Version Token
	// Path is absolute and cleaned.
	Path string
}

// Snapshot is the result of listing a directory once.
//
// Iterating a Snapshot never touches the directory listing again, so it can
// be iterated any number of times and always yields the same candidates.
// Mutations made to the directory after the snapshot was taken are not
// listed; whether a symlinked child that changes during iteration is seen as
// a file or a folder depends on the platform.
type Snapshot struct {
	scheme   Scheme
	dir      string
	children []os.DirEntry
	name     *regexp.Regexp
	ext      string
}

// All yields the matching entries in listing order.
func (sn *Snapshot) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, child := range sn.children {
			entry, ok := sn.match(child)
			if !ok {
				continue
			}

			if !yield(entry) {
				return
			}
		}
	}
}

// Entries collects [Snapshot.All] into a slice.
func (sn *Snapshot) Entries() []Entry {
	var out []Entry
	for e := range sn.All() {
		out = append(out, e)
	}

	return out
}

// Index builds a fresh [Index] from the snapshot, later entries overwriting
// earlier ones with the same version.
func (sn *Snapshot) Index() (*Index, error) {
	idx := NewIndex(sn.scheme)
	for e := range sn.All() {
		if err := idx.Put(e); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (sn *Snapshot) match(child os.DirEntry) (Entry, bool) {
	name := child.Name()

	if sn.name != nil && !sn.name.MatchString(name) {
		return Entry{}, false
	}

	if sn.scheme.Kind == KindFile && sn.ext != "" && !strings.HasSuffix(name, sn.ext) {
		return Entry{}, false
	}

	tok, ok := sn.scheme.ParseVersion(name)
	if !ok {
		return Entry{}, false
	}

	path := filepath.Join(sn.dir, name)

	if sn.isDir(child, path) != (sn.scheme.Kind == KindFolder) {
		return Entry{}, false
	}

	return Entry{Version: tok, Path: path}, true
}

// isDir follows symlinks so a link to a folder counts as a folder. A link
// that cannot be resolved counts as a file.
func (sn *Snapshot) isDir(child os.DirEntry, path string) bool {
	if child.Type()&os.ModeSymlink == 0 {
		return child.IsDir()
	}

	info, err := sn.scheme.fsys().Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// Scan lists dir once and returns a [Snapshot] of its immediate children.
//
// A missing dir, or a path that is not a directory, yields an empty snapshot
// and no error. Other listing errors (permissions, I/O) are returned.
// An invalid [Filter.Name] returns [ErrInvalidFilter] before dir is read.
func (s Scheme) Scan(dir string, f Filter) (*Snapshot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sn := &Snapshot{scheme: s, ext: f.Ext}

	if f.Name != "" {
		re, err := regexp.Compile(f.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}

		sn.name = re
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	sn.dir = abs

	fsys := s.fsys()

	info, err := fsys.Stat(abs)
	if err != nil {
		if isAbsent(err) {
			return sn, nil
		}

		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	if !info.IsDir() {
		return sn, nil
	}

	children, err := fsys.ReadDir(abs)
	if err != nil {
		// The directory can vanish between Stat and ReadDir.
		if isAbsent(err) {
			return sn, nil
		}

		return nil, fmt.Errorf("listing %s: %w", abs, err)
	}

	sn.children = children

	return sn, nil
}

// ScanEntries is [Scheme.Scan] as a plain sequence. Errors, including an
// invalid filter, yield an empty sequence; use Scan to see them.
func (s Scheme) ScanEntries(dir string, f Filter) iter.Seq[Entry] {
	sn, err := s.Scan(dir, f)
	if err != nil {
		return func(func(Entry) bool) {}
	}

	return sn.All()
}

func isAbsent(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
