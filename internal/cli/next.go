package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"

	flag "github.com/spf13/pflag"
)

// MaxCmd returns the max command.
func MaxCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("max", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "max [flags] [dir]",
		Short: "Print the newest version token",
		Long:  "Print the newest version token in dir, or all zeros (\"000\") when there is none.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			tok, err := sc.scheme.MaxVersion(sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("max: %w", err)
			}

			io.Println(tok)

			return nil
		},
	}
}

// NextCmd returns the next command.
func NextCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("next", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "next [flags] [dir]",
		Short: "Print the next version token",
		Long: `Print the version token after the newest one in dir ("001" when empty).

Fails when the next version does not fit the configured width.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			tok, err := sc.scheme.NextVersion(sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("next: %w", err)
			}

			io.Println(tok)

			return nil
		},
	}
}

// NextPathCmd returns the next-path command.
func NextPathCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("next-path", flag.ContinueOnError)
	addScopeFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "next-path [flags] [dir]",
		Short: "Print the path the next version should use",
		Long: `Print the path the next version should use. Nothing is created.

The newest entry's name is reused with its version bumped; an empty dir
gets "<base_name>_v001.<ext>" (or "v001" for folders).

Another process can take the same name before you create it. Use
'vn reserve' when several writers share a directory.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			sc, err := resolveScope(cfg, fsys, flags, args, 0)
			if err != nil {
				return err
			}

			path, err := sc.scheme.NextEntry(sc.dir, sc.filter)
			if err != nil {
				return fmt.Errorf("next-path: %w", err)
			}

			io.Println(path)

			return nil
		},
	}
}
