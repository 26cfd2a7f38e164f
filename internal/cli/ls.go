package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	addScopeFlags(flags)
	flags.BoolP("quiet", "q", false, "Print only version tokens")

	return &Command{
		Flags: flags,
		Usage: "ls [flags] [dir]",
		Short: "List versions, newest first",
		Long: `List the versioned files (or folders) in dir, newest first.

Each line is "<version>\t<path>". When two entries share a version only one
is listed. A missing directory lists nothing.

Examples:
  vn ls                       # versioned files in the current directory
  vn ls --ext ma shots/sh010  # only .ma files
  vn ls --folders -q publish  # version tokens of publish/v001, publish/v002...`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execLs(io, cfg, fsys, flags, args)
		},
	}
}

func execLs(io *IO, cfg *config.Config, fsys fs.FS, flags *flag.FlagSet, args []string) error {
	sc, err := resolveScope(cfg, fsys, flags, args, 0)
	if err != nil {
		return err
	}

	idx, err := sc.scheme.Index(sc.dir, sc.filter)
	if err != nil {
		return fmt.Errorf("list versions: %w", err)
	}

	quiet, _ := flags.GetBool("quiet")

	for _, e := range idx.Entries() {
		if quiet {
			io.Println(e.Version)
			continue
		}

		io.Printf("%s\t%s\n", e.Version, e.Path)
	}

	return nil
}
