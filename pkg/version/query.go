package version

import (
	"fmt"
	"path/filepath"
)

// Index scans dir and builds a fresh [Index].
func (s Scheme) Index(dir string, f Filter) (*Index, error) {
	sn, err := s.Scan(dir, f)
	if err != nil {
		return nil, err
	}

	return sn.Index()
}

// ListVersions returns the versions in dir, newest first.
func (s Scheme) ListVersions(dir string, f Filter) ([]Token, error) {
	idx, err := s.Index(dir, f)
	if err != nil {
		return nil, err
	}

	return idx.Versions(), nil
}

// MaxVersion returns the newest version in dir, or the all-zero token when
// there is none.
func (s Scheme) MaxVersion(dir string, f Filter) (Token, error) {
	idx, err := s.Index(dir, f)
	if err != nil {
		return "", err
	}

	return idx.Max()
}

// NextVersion returns MaxVersion + 1. Returns [ErrVersionOverflow] when the
// newest version is already the largest the width allows.
func (s Scheme) NextVersion(dir string, f Filter) (Token, error) {
	maxTok, err := s.MaxVersion(dir, f)
	if err != nil {
		return "", err
	}

	return s.Increment(maxTok)
}

// EntryForVersion returns the path of version v in dir, or "" if absent.
// v is matched by numeric value. A v that is not a run of digits can never
// name an entry, so it is reported as absent too.
func (s Scheme) EntryForVersion(dir string, v Token, f Filter) (string, error) {
	if _, err := v.Value(); err != nil {
		return "", nil
	}

	idx, err := s.Index(dir, f)
	if err != nil {
		return "", err
	}

	e, ok, err := idx.Get(v)
	if err != nil || !ok {
		return "", err
	}

	return e.Path, nil
}

// LatestEntry returns the path of the newest version in dir, or "" if
// there is none.
func (s Scheme) LatestEntry(dir string, f Filter) (string, error) {
	idx, err := s.Index(dir, f)
	if err != nil {
		return "", err
	}

	e, ok := idx.Latest()
	if !ok {
		return "", nil
	}

	return e.Path, nil
}

// NextEntry returns the path the next version should use. Nothing is
// created; see [Reserver] for that.
//
// With existing entries the newest entry's name is reused with the token
// bumped ("shot_v007.ma" -> "shot_v008.ma"). In an empty dir the name comes
// from [Scheme.FirstName] with version 1.
func (s Scheme) NextEntry(dir string, f Filter) (string, error) {
	sn, err := s.Scan(dir, f)
	if err != nil {
		return "", err
	}

	e, err := s.plan(sn, 0)
	if err != nil {
		return "", err
	}

	return e.Path, nil
}

// plan computes the next entry from a snapshot. floor is a version value the
// result must exceed even if the snapshot does not show it; zero means no
// floor.
func (s Scheme) plan(sn *Snapshot, floor uint64) (Entry, error) {
	idx, err := sn.Index()
	if err != nil {
		return Entry{}, err
	}

	last := max(idx.maxValue(), floor)
	if last >= limit(s.Width)-1 {
		return Entry{}, fmt.Errorf("%w: no %d-digit version after %d", ErrVersionOverflow, s.Width, last)
	}

	next, err := s.Format(last + 1)
	if err != nil {
		return Entry{}, err
	}

	name := s.FirstName(next, Filter{Ext: sn.ext})

	if latest, ok := idx.Latest(); ok {
		renamed, ok := s.Rename(filepath.Base(latest.Path), next)
		if !ok {
			return Entry{}, fmt.Errorf("%w: %s has no token", ErrMalformedToken, latest.Path)
		}

		name = renamed
	}

	return Entry{Version: next, Path: filepath.Join(sn.dir, name)}, nil
}
