package discover

import (
	"strings"
	"testing"

	"github.com/kalambet/onyxpen/internal/registry"
)

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestSuggestStructuredPackage(t *testing.T) {
	got := Suggest("com.myapp.package")

	if len(got) == 0 || len(got) > maxSuggestions {
		t.Fatalf("got %d suggestions, want 1..%d", len(got), maxSuggestions)
	}
	for _, want := range []string{
		"com.myapp.DrawView",
		"com.myapp.package.DrawView",
		"com.myapp.ui.DrawView",
		"com.myapp.view.DrawView",
	} {
		if !contains(got, want) {
			t.Errorf("suggestions %v missing %q", got, want)
		}
	}
}

func TestSuggestTwoSegmentPackage(t *testing.T) {
	got := Suggest("md.obsidian")

	if !contains(got, "md.obsidian.DrawView") {
		t.Errorf("suggestions %v missing md.obsidian.DrawView", got)
	}
	for _, s := range got {
		if strings.Contains(s, "..") {
			t.Errorf("malformed suggestion %q", s)
		}
	}
}

func TestSuggestDegradesGracefully(t *testing.T) {
	for _, pkg := range []string{"", "myapp"} {
		got := Suggest(pkg)
		if len(got) == 0 {
			t.Fatalf("Suggest(%q) returned nothing", pkg)
		}
		if got[0] != "*DrawView" {
			t.Errorf("Suggest(%q)[0] = %q, want *DrawView", pkg, got[0])
		}
	}
}

func TestSuggestNoDuplicates(t *testing.T) {
	got := Suggest("com.myapp.package")
	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate suggestion %q", s)
		}
		seen[s] = true
	}
}

func TestPatternsGroupsByClassName(t *testing.T) {
	groups := Patterns(registry.All())
	if len(groups) == 0 {
		t.Fatal("no pattern groups from built-in registry")
	}

	var canvas *PatternGroup
	for i := range groups {
		if groups[i].ClassName == "CanvasView" {
			canvas = &groups[i]
		}
	}
	if canvas == nil {
		t.Fatal("CanvasView group missing")
	}
	// MediBang and OneNote both end in CanvasView.
	if len(canvas.Apps) != 2 {
		t.Errorf("CanvasView group has %d apps, want 2", len(canvas.Apps))
	}
}
