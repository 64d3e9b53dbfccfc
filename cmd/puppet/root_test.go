// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/buzzedword/puppet/internal/config"
	"github.com/buzzedword/puppet/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-08-01T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-08-01T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestInitRootConfigFallsBackToDefaults(t *testing.T) {
	// Not parallel: mutates package-level cfgFile and loadedConfig.

	origCfgFile, origLoaded := cfgFile, loadedConfig
	t.Cleanup(func() {
		cfgFile, loadedConfig = origCfgFile, origLoaded
	})

	broken := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(broken, []byte("modulepath: {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile = broken
	loadedConfig = nil

	initRootConfig()

	if loadedConfig == nil {
		t.Fatal("loadedConfig should hold defaults after a failed load")
	}
	if loadedConfig.Environment != config.DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", loadedConfig.Environment, config.DefaultEnvironment)
	}

	// Commands must see the same fallback instead of re-running the
	// failing load.
	cfg, err := activeConfig(context.Background())
	if err != nil {
		t.Fatalf("activeConfig() error = %v", err)
	}
	if cfg != loadedConfig {
		t.Error("activeConfig should return the cached fallback config")
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("plain error = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("install module").
		WithSuggestion("Check the module name").
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if got == actionable.Error() {
		t.Error("actionable errors should be formatted with suggestions")
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: 1}
	if got := bare.Error(); got != "exit status 1" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("boom")
	wrapped := &ExitError{Code: 2, Err: cause}
	if wrapped.Error() != "boom" || !errors.Is(wrapped, cause) {
		t.Errorf("wrapped = %q", wrapped.Error())
	}
}
