package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"
	"github.com/calvinalkan/vnext/pkg/version"

	flag "github.com/spf13/pflag"
)

var errBadBaseName = errors.New("base name must not contain path separators")

// ReserveCmd returns the reserve command.
func ReserveCmd(cfg *config.Config, fsys fs.FS, prompter Prompter) *Command {
	flags := flag.NewFlagSet("reserve", flag.ContinueOnError)
	addScopeFlags(flags)
	flags.BoolP("prompt", "p", false, "Ask for the base name when dir has no versions")

	return &Command{
		Flags: flags,
		Usage: "reserve [flags] [dir]",
		Short: "Create the next version and print its path",
		Long: `Create the next version (an empty file, or a folder) and print its path.

Concurrent 'vn reserve' calls on the same dir never return the same name:
they serialize on dir/` + version.LockFileName + ` and create with
create-if-absent semantics. dir is created if missing.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			if ask, _ := flags.GetBool("prompt"); ask {
				sc, err = promptBaseName(sc, prompter)
				if err != nil {
					return err
				}
			}

			e, err := cfg.Reserver(sc.scheme).Reserve(ctx, sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("reserve: %w", err)
			}

			io.Println(e.Path)

			return nil
		},
	}
}

// promptBaseName asks for the first file's base name when the directory has
// no versions yet. Existing versions keep their own base name.
func promptBaseName(sc scope, prompter Prompter) (scope, error) {
	if sc.scheme.Kind != version.KindFile || prompter == nil {
		return sc, nil
	}

	latest, err := sc.scheme.LatestEntry(sc.dir, sc.filter)
	if err != nil {
		return sc, err
	}

	if latest != "" {
		return sc, nil
	}

	base, err := prompter.Prompt("Base name for "+sc.dir, sc.scheme.DefaultBase)
	if err != nil {
		return sc, err
	}

	if strings.ContainsAny(base, `/\`) {
		return sc, fmt.Errorf("%w: %q", errBadBaseName, base)
	}

	sc.scheme.DefaultBase = base

	return sc, nil
}

// BumpCmd returns the bump command.
func BumpCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("bump", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "bump [flags] [dir]",
		Short: "Copy the newest file to the next version",
		Long: `Reserve the next file version and fill it with the newest version's content.

Prints the new path. With no existing versions the new file is empty and a
warning is printed.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			e, from, err := cfg.Reserver(sc.scheme).Bump(ctx, sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("bump: %w", err)
			}

			if from == "" {
				io.Warn("no previous version to copy, created empty "+e.Path, "fill it in or use 'vn reserve' next time")
			}

			io.Println(e.Path)

			return nil
		},
	}
}
