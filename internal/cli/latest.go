package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"
	"github.com/calvinalkan/vnext/pkg/version"

	flag "github.com/spf13/pflag"
)

// LatestCmd returns the latest command.
func LatestCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("latest", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "latest [flags] [dir]",
		Short: "Print the path of the newest version",
		Long: `Print the path of the newest versioned file (or folder) in dir.

Exits 1 with a warning when dir has no versions.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			path, err := sc.scheme.LatestEntry(sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("latest: %w", err)
			}

			if path == "" {
				io.Warn("no versions in "+sc.dir, "run 'vn next-path' for the first name")
				return nil
			}

			io.Println(path)

			return nil
		},
	}
}

// PathCmd returns the path command.
func PathCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("path", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "path <version> [flags] [dir]",
		Short: "Print the path of a specific version",
		Long: `Print the path of the given version in dir.

The version is compared numerically, so "7" finds v007. Exits 1 with a
warning when the version does not exist.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if len(args) == 0 {
				return errVersionRequired
			}

			sc, err := resolveScope(cfg, fsys, flags, args, 1)
			if err != nil {
				return err
			}

			path, err := sc.scheme.EntryForVersion(sc.dir, version.Token(args[0]), sc.filter)
			if err != nil {
				return fmt.Errorf("path: %w", err)
			}

			if path == "" {
				io.Warn(fmt.Sprintf("version %s not found in %s", args[0], sc.dir), "run 'vn ls' to see existing versions")
				return nil
			}

			io.Println(path)

			return nil
		},
	}
}
