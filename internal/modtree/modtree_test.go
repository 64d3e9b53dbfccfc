// SPDX-License-Identifier: MPL-2.0

package modtree

import (
	"strings"
	"testing"

	"github.com/buzzedword/puppet/internal/installer"
)

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare version", input: "0.0.4", want: "v0.0.4"},
		{name: "already prefixed", input: "v0.0.4", want: "v0.0.4"},
		{name: "prerelease", input: "1.0.0-rc1", want: "v1.0.0-rc1"},
		{name: "unknown placeholder", input: "???", want: "???"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeVersion(tt.input); got != tt.want {
				t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeVersionIdempotent(t *testing.T) {
	t.Parallel()

	once := NormalizeVersion("0.0.4")
	if twice := NormalizeVersion(once); twice != once {
		t.Errorf("NormalizeVersion not idempotent: %q -> %q", once, twice)
	}
}

func TestRenderSingleInstall(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{
			Name:    "vcsrepo",
			Version: "0.0.4",
			Action:  installer.ActionInstall,
			Path:    "/etc/puppet/modules",
		},
	}, "/etc/puppet/modules")

	want := "└── vcsrepo (v0.0.4)\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderUpgradeLabel(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{
			Name:            "puppetlabs-stdlib",
			Version:         "0.0.4",
			PreviousVersion: "0.0.3",
			Action:          installer.ActionUpgrade,
			Path:            "/etc/puppet/modules",
		},
	}, "/etc/puppet/modules")

	if !strings.Contains(got, "puppetlabs-stdlib (v0.0.3 -> v0.0.4)") {
		t.Errorf("Render() = %q, want upgrade label", got)
	}
}

func TestRenderPathSuffix(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{
			Name:    "puppetlabs-stdlib",
			Version: "2.2.1",
			Action:  installer.ActionInstall,
			Path:    "/usr/share/puppet/modules",
		},
	}, "/etc/puppet/modules")

	want := "└── puppetlabs-stdlib (v2.2.1) [/usr/share/puppet/modules]\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if strings.Count(got, "[/usr/share/puppet/modules]") != 1 {
		t.Errorf("path suffix should appear exactly once: %q", got)
	}
}

func TestRenderPreservesChildOrder(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{
			Name:    "acme-app",
			Version: "1.0.0",
			Action:  installer.ActionInstall,
			Path:    "/mods",
			Dependencies: []installer.InstalledModule{
				{Name: "acme-b", Version: "1.0.0", Action: installer.ActionInstall, Path: "/mods"},
				{Name: "acme-a", Version: "1.0.0", Action: installer.ActionInstall, Path: "/mods"},
			},
		},
	}, "/mods")

	bIdx := strings.Index(got, "acme-b (")
	aIdx := strings.Index(got, "acme-a (")
	if bIdx < 0 || aIdx < 0 {
		t.Fatalf("Render() = %q, missing dependencies", got)
	}
	if bIdx > aIdx {
		t.Errorf("child order not preserved (b after a): %q", got)
	}
}

func TestRenderNestedTree(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{
			Name:    "puppetlabs-apache",
			Version: "0.0.3",
			Action:  installer.ActionInstall,
			Path:    "/etc/puppet/modules",
			Dependencies: []installer.InstalledModule{
				{
					Name:    "puppetlabs-stdlib",
					Version: "2.2.1",
					Action:  installer.ActionInstall,
					Path:    "/etc/puppet/modules",
				},
			},
		},
	}, "/etc/puppet/modules")

	want := "└─┬ puppetlabs-apache (v0.0.3)\n" +
		"  └── puppetlabs-stdlib (v2.2.1)\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSiblingConnectors(t *testing.T) {
	t.Parallel()

	got := Render([]installer.InstalledModule{
		{Name: "acme-a", Version: "1.0.0", Action: installer.ActionInstall, Path: "/mods"},
		{Name: "acme-b", Version: "1.0.0", Action: installer.ActionInstall, Path: "/mods"},
	}, "/mods")

	want := "├── acme-a (v1.0.0)\n" +
		"└── acme-b (v1.0.0)\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	if got := Render(nil, "/mods"); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []installer.InstalledModule{
		{Name: "acme-a", Version: "1.0.0", Action: installer.ActionInstall, Path: "/mods"},
	}
	Render(input, "/mods")
	if input[0].Version != "1.0.0" {
		t.Errorf("input version mutated to %q", input[0].Version)
	}
}
