package version

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calvinalkan/vnext/internal/fs"
)

// LockFileName is the advisory lock file [Reserver] creates inside a
// versioned directory. It never matches a version token.
const LockFileName = ".vnext.lock"

// Reserver defaults.
const (
	DefaultLockTimeout = 5 * time.Second
	DefaultMaxAttempts = 8
)

const (
	reservedFilePerm = 0o644
	reservedDirPerm  = 0o755
)

// Reserver claims the next version by creating it.
//
// Reservations made through Reserver are serialized per directory with an
// exclusive flock on [LockFileName], and the entry is created with
// create-if-absent semantics (O_EXCL for files, mkdir for folders). Writers
// that do not use Reserver are not blocked, but a name they already took is
// detected and skipped.
type Reserver struct {
	Scheme Scheme

	// LockTimeout bounds the wait for the directory lock. Zero means
	// [DefaultLockTimeout].
	LockTimeout time.Duration

	// MaxAttempts bounds how many names are tried after collisions. Zero
	// means [DefaultMaxAttempts].
	MaxAttempts int
}

// NewReserver returns a Reserver for s with default limits.
func NewReserver(s Scheme) *Reserver {
	return &Reserver{Scheme: s}
}

// Reserve creates the next version in dir and returns it. dir is created if
// missing.
//
// Returns [ErrReserveConflict] if every attempt hit an existing name,
// [fs.ErrWouldBlock] (wrapped) if the lock could not be taken in time, and
// ctx.Err() if ctx is done between attempts.
func (r *Reserver) Reserve(ctx context.Context, dir string, f Filter) (Entry, error) {
	var out Entry

	err := r.withLock(dir, func(abs string) error {
		e, err := r.reserveLocked(ctx, abs, f)
		out = e

		return err
	})

	return out, err
}

// Bump reserves the next file in dir and fills it with the content of the
// newest existing version. It returns the new entry and the path it was
// copied from ("" when dir had no versions, leaving the new file empty).
//
// The copy is written atomically; on failure the reserved file is removed.
// Only valid for [KindFile].
func (r *Reserver) Bump(ctx context.Context, dir string, f Filter) (Entry, string, error) {
	if r.Scheme.Kind != KindFile {
		return Entry{}, "", fmt.Errorf("%w: bump needs files, scheme is %s", ErrUnsupportedKind, r.Scheme.Kind)
	}

	var (
		out  Entry
		from string
	)

	err := r.withLock(dir, func(abs string) error {
		latest, err := r.Scheme.LatestEntry(abs, f)
		if err != nil {
			return err
		}

		e, err := r.reserveLocked(ctx, abs, f)
		if err != nil {
			return err
		}

		if latest != "" {
			if err := r.copyInto(latest, e.Path); err != nil {
				if removeErr := r.Scheme.fsys().Remove(e.Path); removeErr != nil {
					err = errors.Join(err, fmt.Errorf("removing reserved %s: %w", e.Path, removeErr))
				}

				return err
			}
		}

		out, from = e, latest

		return nil
	})

	return out, from, err
}

func (r *Reserver) copyInto(src, dst string) error {
	fsys := r.Scheme.fsys()

	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	perm := os.FileMode(reservedFilePerm)
	if info, err := fsys.Stat(src); err == nil {
		perm = info.Mode().Perm()
	}

	if err := fsys.WriteFileAtomic(dst, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	return nil
}

func (r *Reserver) withLock(dir string, fn func(abs string) error) error {
	if err := r.Scheme.Validate(); err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	timeout := r.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}

	locker := fs.NewLocker(r.Scheme.fsys())

	lock, err := locker.LockWithTimeout(filepath.Join(abs, LockFileName), timeout)
	if err != nil {
		return fmt.Errorf("locking %s: %w", abs, err)
	}

	fnErr := fn(abs)
	closeErr := lock.Close()

	if fnErr != nil {
		return fnErr
	}

	if closeErr != nil {
		return fmt.Errorf("unlocking %s: %w", abs, closeErr)
	}

	return nil
}

func (r *Reserver) reserveLocked(ctx context.Context, abs string, f Filter) (Entry, error) {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var floor uint64

	for range attempts {
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}

		sn, err := r.Scheme.Scan(abs, f)
		if err != nil {
			return Entry{}, err
		}

		e, err := r.Scheme.plan(sn, floor)
		if err != nil {
			return Entry{}, err
		}

		err = r.create(e.Path)
		if err == nil {
			return e, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return Entry{}, fmt.Errorf("creating %s: %w", e.Path, err)
		}

		// Taken by something the scan does not see (another kind, a
		// filtered name, or a writer that raced us). Skip past it.
		floor, _ = e.Version.Value()
	}

	return Entry{}, fmt.Errorf("%w: %d attempts in %s", ErrReserveConflict, attempts, abs)
}

func (r *Reserver) create(path string) error {
	fsys := r.Scheme.fsys()

	if r.Scheme.Kind == KindFolder {
		return fsys.Mkdir(path, reservedDirPerm)
	}

	file, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, reservedFilePerm)
	if err != nil {
		return err
	}

	return file.Close()
}
