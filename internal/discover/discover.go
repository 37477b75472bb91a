// Package discover derives draw-view-key candidates for apps the registry
// does not know. Output is advisory: an ordered list of class names for the
// user to try on-device, nothing more.
package discover

import (
	"sort"
	"strings"

	"github.com/kalambet/onyxpen/internal/registry"
)

// Suffixes are the view class name endings that show up repeatedly across
// apps with working handwriting support, most common first.
var Suffixes = []string{
	"DrawView", "CanvasView", "PaintView", "DrawingView",
	"PDFViewCtrl", "WebView", "RenderView", "EditorView",
	"NoteView", "SketchView", "InkView", "PenView",
}

// maxSuggestions caps Suggest output; beyond that the candidates are noise.
const maxSuggestions = 10

// Suggest combines the package's segments with the known suffix patterns
// into an ordered, finite candidate list. There is no correctness guarantee.
// Identifiers without reverse-domain structure degrade to generic
// "*Suffix" patterns; Suggest never fails and never returns an empty list.
func Suggest(pkg string) []string {
	parts := strings.Split(pkg, ".")
	if pkg == "" || len(parts) < 2 {
		generic := make([]string, 0, maxSuggestions)
		for _, suffix := range Suffixes {
			if len(generic) == maxSuggestions {
				break
			}
			generic = append(generic, "*"+suffix)
		}
		return generic
	}

	base := pkg
	if len(parts) > 2 {
		base = strings.Join(parts[:len(parts)-1], ".")
	}

	var out []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		if len(out) < maxSuggestions && !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	for _, suffix := range Suffixes {
		add(base + "." + suffix)
		add(pkg + "." + suffix)
		if len(parts) >= 3 {
			prefix := parts[0] + "." + parts[1]
			add(prefix + ".ui." + suffix)
			add(prefix + ".view." + suffix)
		}
	}
	return out
}

// PatternGroup associates one terminal view class name with the known apps
// that use it.
type PatternGroup struct {
	ClassName string
	Apps      []string
}

// Patterns groups the registry's draw view keys by terminal class name, for
// the discovery report. Groups are sorted by class name.
func Patterns(apps []registry.App) []PatternGroup {
	byClass := make(map[string][]string)
	for _, app := range apps {
		key := app.DrawViewKey
		if !strings.Contains(key, "View") {
			continue
		}
		segs := strings.Split(key, ".")
		cls := segs[len(segs)-1]
		byClass[cls] = append(byClass[cls], app.Name)
	}

	groups := make([]PatternGroup, 0, len(byClass))
	for cls, names := range byClass {
		groups = append(groups, PatternGroup{ClassName: cls, Apps: names})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ClassName < groups[j].ClassName })
	return groups
}
