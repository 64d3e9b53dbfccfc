// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buzzedword/puppet/internal/issue"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Modulepath != DefaultModulepath() {
		t.Errorf("Modulepath = %q, want default", cfg.Modulepath)
	}
	if cfg.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", cfg.Environment, DefaultEnvironment)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
modulepath:        "/srv/puppet/modules"
module_repository: "/srv/puppet/releases"
environment:       "dev"

ui: {
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Modulepath != "/srv/puppet/modules" {
		t.Errorf("Modulepath = %q", cfg.Modulepath)
	}
	if cfg.ModuleRepository != "/srv/puppet/releases" {
		t.Errorf("ModuleRepository = %q", cfg.ModuleRepository)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
	// Unset fields keep their defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want default auto", cfg.UI.ColorScheme)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `modulepath: "/opt/modules"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Modulepath != "/opt/modules" {
		t.Errorf("Modulepath = %q", cfg.Modulepath)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("want error for missing explicit config file")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	if !actionable.HasSuggestions() {
		t.Error("error should carry suggestions")
	}
}

func TestLoadInvalidSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `modulepath: "unterminated`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("want error for invalid CUE syntax")
	}
}

func TestLoadSchemaViolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `ui: color_scheme: "purple"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("want error for schema violation")
	}
	if !strings.Contains(err.Error(), "color_scheme") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `modserver: "https://forge.example.com"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("want error for unknown field")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
modulepath: "/etc/puppet/modules"

environments: {
	dev: {
		modulepath: "/srv/puppet/dev/modules"
	}
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := cfg.EffectiveModulepath("dev")
	if len(got) != 1 || got[0] != "/srv/puppet/dev/modules" {
		t.Errorf("EffectiveModulepath(dev) = %v", got)
	}

	got = cfg.EffectiveModulepath("production")
	if len(got) != 1 || got[0] != "/etc/puppet/modules" {
		t.Errorf("EffectiveModulepath(production) = %v", got)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("want error for canceled context")
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want override %q", got, dir)
	}
}
