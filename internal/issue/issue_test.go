// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGetKnownIds(t *testing.T) {
	t.Parallel()

	ids := []Id{
		ConfigLoadFailedId,
		ModuleNotFoundId,
		ModuleAlreadyInstalledId,
		InvalidModuleNameId,
		MetadataParseErrorId,
		EmptyModulePathId,
		UninstallBlockedId,
	}

	for _, id := range ids {
		got := Get(id)
		if got == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
		if strings.TrimSpace(string(got.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", id)
		}
	}
}

func TestGetUnknownId(t *testing.T) {
	t.Parallel()

	if got := Get(Id(9999)); got != nil {
		t.Errorf("Get(9999) = %v, want nil", got)
	}
}

func TestValuesCoversCatalog(t *testing.T) {
	t.Parallel()

	if got := len(Values()); got != len(issues) {
		t.Errorf("Values() = %d issues, want %d", got, len(issues))
	}
}

func TestRenderIncludesLinks(t *testing.T) {
	t.Parallel()

	orig := render
	t.Cleanup(func() { render = orig })
	render = func(in, _ string) (string, error) { return in, nil }

	i := &Issue{
		id:       ModuleNotFoundId,
		mdMsg:    "# broken",
		docLinks: []HttpLink{"https://example.com/docs"},
	}

	got, err := i.Render("dark")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "See also") || !strings.Contains(got, "https://example.com/docs") {
		t.Errorf("Render output missing links:\n%s", got)
	}
}

func TestLinkAccessorsClone(t *testing.T) {
	t.Parallel()

	i := &Issue{
		id:       ModuleNotFoundId,
		docLinks: []HttpLink{"https://example.com/a"},
		extLinks: []HttpLink{"https://example.com/b"},
	}

	docs := i.DocLinks()
	docs[0] = "mutated"
	if i.docLinks[0] != "https://example.com/a" {
		t.Error("DocLinks should return a copy")
	}

	exts := i.ExtLinks()
	exts[0] = "mutated"
	if i.extLinks[0] != "https://example.com/b" {
		t.Error("ExtLinks should return a copy")
	}
}
