package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"

	flag "github.com/spf13/pflag"
)

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal on it cancels the running command's context.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	globals := flag.NewFlagSet("vn", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	width := globals.Int("width", 0, "Version token width (default from config, 3)")
	baseName := globals.String("base-name", "", "Base name for the first file in an empty directory")
	ext := globals.String("default-ext", "", "Extension for the first file in an empty directory")

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	helpRequested := false

	if err := globals.Parse(rest); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			o.Error(err)
			printUsage(errOut, globals, nil)

			return 1
		}

		helpRequested = true
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		Overrides:       config.Config{Width: *width, BaseName: *baseName, Ext: *ext},
		Env:             env,
	})
	if err != nil {
		o.Error(err)
		return 1
	}

	fsys := fs.NewReal()

	commands := []*Command{
		LsCmd(&cfg, fsys),
		LatestCmd(&cfg, fsys),
		MaxCmd(&cfg, fsys),
		NextCmd(&cfg, fsys),
		PathCmd(&cfg, fsys),
		NextPathCmd(&cfg, fsys),
		ReserveCmd(&cfg, fsys, newPrompter(in, out, errOut)),
		BumpCmd(&cfg, fsys),
		PrintConfigCmd(&cfg),
	}

	cmdArgs := globals.Args()
	if helpRequested || len(cmdArgs) == 0 {
		printUsage(out, globals, commands)
		return 0
	}

	name := cmdArgs[0]
	if name == "help" {
		printUsage(out, globals, commands)
		return 0
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c
			break
		}
	}

	if cmd == nil {
		o.Error(errors.New("unknown command: " + name))
		printUsage(errOut, globals, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return cmd.Run(ctx, o, cmdArgs[1:])
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `vn - find and name versioned files and folders

Usage: vn [options] <command> [args]

Global flags:`)
	_, _ = fmt.Fprint(w, globals.FlagUsages())
	fprintln(w, "  -h, --help                 Show help")

	if len(commands) == 0 {
		return
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'vn <command> --help' for command flags.")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
