package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/vnext/pkg/version"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup MkdirAll: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup WriteFile(%q): %v", path, err)
	}
}

var ignoreResolved = cmpopts.IgnoreFields(Config{}, "EffectiveCwd", "Sources")

func Test_Load_Returns_Defaults_When_No_Config_Files_Exist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(Default(), cfg, ignoreResolved); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	if cfg.EffectiveCwd != dir {
		t.Fatalf("EffectiveCwd=%q, want %q", cfg.EffectiveCwd, dir)
	}

	if cfg.Sources != (Sources{}) {
		t.Fatalf("Sources=%+v, want none", cfg.Sources)
	}
}

func Test_Load_Applies_Precedence_Global_Project_Overrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	globalFile := filepath.Join(xdg, "vn", "config.json")
	writeFile(t, globalFile, `{
		// global defaults
		"width": 4,
		"base_name": "global",
		"ext": "mb",
	}`)
	writeFile(t, filepath.Join(dir, FileName), `{"base_name": "project", "lock_timeout": "250ms"}`)

	cfg, err := Load(LoadInput{
		WorkDirOverride: dir,
		Overrides:       Config{Ext: "usd"},
		Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{
		Kind:        "file",
		Width:       4,
		BaseName:    "project",
		Ext:         "usd",
		LockTimeout: "250ms",
		MaxAttempts: version.DefaultMaxAttempts,
	}

	if diff := cmp.Diff(want, cfg, ignoreResolved); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	wantSources := Sources{Global: globalFile, Project: filepath.Join(dir, FileName)}
	if diff := cmp.Diff(wantSources, cfg.Sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func Test_Load_Uses_Home_Config_When_XDG_Is_Unset(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "vn", "config.json"), `{"kind": "folder"}`)

	cfg, err := Load(LoadInput{WorkDirOverride: t.TempDir(), Env: map[string]string{"HOME": home}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Kind != "folder" {
		t.Fatalf("Kind=%q, want folder", cfg.Kind)
	}
}

func Test_Load_Returns_Error_When_Explicit_Config_Is_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadInput{WorkDirOverride: t.TempDir(), ConfigPath: "nope.json"})
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Fatalf("Load: err=%v, want %v", err, ErrConfigFileNotFound)
	}
}

func Test_Load_Uses_Explicit_Config_Instead_Of_Project_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"base_name": "project"}`)
	writeFile(t, filepath.Join(dir, "alt.json"), `{"base_name": "alt"}`)

	cfg, err := Load(LoadInput{WorkDirOverride: dir, ConfigPath: "alt.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseName != "alt" || cfg.Sources.Project != filepath.Join(dir, "alt.json") {
		t.Fatalf("BaseName=%q Project=%q, want alt from alt.json", cfg.BaseName, cfg.Sources.Project)
	}
}

func Test_Load_Rejects_Invalid_Files_And_Values(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    error
	}{
		{name: "BrokenJSON", content: `{"width": `, want: ErrConfigInvalid},
		{name: "ExplicitEmptyBase", content: `{"base_name": ""}`, want: ErrBaseNameEmpty},
		{name: "WidthTooLarge", content: `{"width": 19}`, want: ErrWidthOutOfRange},
		{name: "NegativeWidth", content: `{"width": -1}`, want: ErrWidthOutOfRange},
		{name: "BadKind", content: `{"kind": "blob"}`, want: ErrInvalidKind},
		{name: "BadTimeout", content: `{"lock_timeout": "soon"}`, want: ErrInvalidLockTimeout},
		{name: "NegativeTimeout", content: `{"lock_timeout": "-1s"}`, want: ErrInvalidLockTimeout},
		{name: "NegativeAttempts", content: `{"max_attempts": -3}`, want: ErrInvalidMaxAttempts},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), tc.content)

			_, err := Load(LoadInput{WorkDirOverride: dir})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load: err=%v, want %v", err, tc.want)
			}
		})
	}
}

func Test_Scheme_And_Reserver_Reflect_Config(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Width = 4
	cfg.BaseName = "lay"
	cfg.LockTimeout = "2s"
	cfg.MaxAttempts = 3

	s, err := cfg.Scheme("folders", nil)
	if err != nil {
		t.Fatalf("Scheme: %v", err)
	}

	want := version.Scheme{Kind: version.KindFolder, Width: 4, DefaultBase: "lay", DefaultExt: "ma"}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("scheme mismatch (-want +got):\n%s", diff)
	}

	r := cfg.Reserver(s)
	if r.LockTimeout != 2*time.Second || r.MaxAttempts != 3 {
		t.Fatalf("reserver=%+v, want timeout 2s attempts 3", r)
	}

	if _, err := cfg.Scheme("blob", nil); !errors.Is(err, version.ErrInvalidScheme) {
		t.Fatalf("Scheme(blob): err=%v, want %v", err, version.ErrInvalidScheme)
	}
}
