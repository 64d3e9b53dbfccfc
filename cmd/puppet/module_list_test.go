// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buzzedword/puppet/internal/config"
	"github.com/buzzedword/puppet/internal/searchpath"
)

// writeInstalledModule places an installed module under dir.
func writeInstalledModule(t *testing.T, dir, fullName, version string, depJSON ...string) {
	t.Helper()

	modName := fullName[strings.IndexByte(fullName, '-')+1:]
	modDir := filepath.Join(dir, modName)
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := fmt.Sprintf(`{"name": %q, "version": %q, "dependencies": [%s]}`,
		fullName, version, strings.Join(depJSON, ", "))
	if err := os.WriteFile(filepath.Join(modDir, "metadata.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestModuleListTwoDirs(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeInstalledModule(t, first, "puppetlabs-apache", "0.0.3")
	writeInstalledModule(t, first, "puppetlabs-stdlib", "2.2.1")

	resetCommandState(t, &config.Config{
		Modulepath: searchpath.Join([]string{first, second}),
	})

	stdout, _, err := runCommand(t, "module", "list")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := first + "\n" +
		"├── puppetlabs-apache (v0.0.3)\n" +
		"└── puppetlabs-stdlib (v2.2.1)\n" +
		"\n" +
		second + "\n" +
		"(no modules installed)\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestModuleListUnreadableMetadata(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "broken"), 0o755); err != nil {
		t.Fatal(err)
	}

	resetCommandState(t, &config.Config{Modulepath: dir})

	stdout, _, err := runCommand(t, "module", "list")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stdout, "broken (???)") {
		t.Errorf("stdout should list the module with an unknown version:\n%s", stdout)
	}
}

func TestModuleListModulepathFlag(t *testing.T) {
	dir := t.TempDir()
	writeInstalledModule(t, dir, "acme-thing", "1.0.0")

	resetCommandState(t, &config.Config{Modulepath: "/nonexistent/default"})

	stdout, _, err := runCommand(t, "module", "list", "--modulepath", dir)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.Contains(stdout, "/nonexistent/default") {
		t.Errorf("configured path should be overridden:\n%s", stdout)
	}
	if !strings.Contains(stdout, "acme-thing (v1.0.0)") {
		t.Errorf("stdout missing module:\n%s", stdout)
	}
}

func TestModuleListEmptySearchPath(t *testing.T) {
	resetCommandState(t, &config.Config{})

	_, _, err := runCommand(t, "module", "list")
	if err == nil {
		t.Fatal("want error for empty search path")
	}
}
