package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/vnext/internal/config"
	"github.com/calvinalkan/vnext/internal/fs"
	"github.com/calvinalkan/vnext/pkg/version"

	flag "github.com/spf13/pflag"
)

var (
	errTooManyArgs     = errors.New("too many arguments")
	errVersionRequired = errors.New("version argument is required")
)

// addScopeFlags registers the flags every directory query shares.
func addScopeFlags(flags *flag.FlagSet) {
	flags.Bool("folders", false, "Version sub-folders instead of files")
	flags.String("kind", "", "Entity kind: file or folder (default from config)")
	flags.StringP("name", "n", "", "Only consider names matching this regular expression")
	flags.StringP("ext", "e", "", "Only consider files ending in this extension")
}

// scope is a resolved directory query.
type scope struct {
	scheme version.Scheme
	filter version.Filter
	dir    string
}

// resolveScope reads the shared flags and the optional [dir] argument.
// extra is how many positional args precede [dir].
func resolveScope(cfg *config.Config, fsys fs.FS, flags *flag.FlagSet, args []string, extra int) (scope, error) {
	if len(args) > extra+1 {
		return scope{}, fmt.Errorf("%w: %v", errTooManyArgs, args[extra+1:])
	}

	kind, _ := flags.GetString("kind")
	if folders, _ := flags.GetBool("folders"); folders {
		if kind != "" && kind != version.KindFolder.String() {
			return scope{}, errors.New("--folders conflicts with --kind=" + kind)
		}

		kind = version.KindFolder.String()
	}

	scheme, err := cfg.Scheme(kind, fsys)
	if err != nil {
		return scope{}, err
	}

	name, _ := flags.GetString("name")
	ext, _ := flags.GetString("ext")

	dir := cfg.EffectiveCwd
	if len(args) == extra+1 {
		dir = args[extra]
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.EffectiveCwd, dir)
		}
	}

	return scope{
		scheme: scheme,
		filter: version.Filter{Name: name, Ext: ext},
		dir:    filepath.Clean(dir),
	}, nil
}
