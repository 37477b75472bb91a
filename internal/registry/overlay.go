package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// overlayFile is the on-disk shape of a user registry overlay:
//
//	apps:
//	  - package: com.example.notes
//	    name: Example Notes
//	    drawViewKey: com.example.notes.ui.SketchView
//	    activities:
//	      - com.example.notes.MainActivity
type overlayFile struct {
	Apps []App `yaml:"apps"`
}

// Set is a lookup view over the built-in table plus an optional user
// overlay. Overlay entries shadow built-ins with the same package.
type Set struct {
	overlay map[string]App
}

// Builtin returns the registry without any overlay applied.
func Builtin() *Set {
	return &Set{}
}

// LoadOverlay reads a YAML overlay file and returns a registry view that
// includes it. Every overlay entry must carry a package and a draw view key.
func LoadOverlay(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry overlay: %w", err)
	}

	var f overlayFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry overlay %s: %w", path, err)
	}

	overlay := make(map[string]App, len(f.Apps))
	for i, app := range f.Apps {
		if app.Package == "" {
			return nil, fmt.Errorf("registry overlay %s: entry %d has no package", path, i+1)
		}
		if app.DrawViewKey == "" {
			return nil, fmt.Errorf("registry overlay %s: %s has no drawViewKey", path, app.Package)
		}
		overlay[app.Package] = app
	}
	return &Set{overlay: overlay}, nil
}

// Lookup finds a record by package, preferring overlay entries.
func (s *Set) Lookup(pkg string) (App, bool) {
	if app, ok := s.overlay[pkg]; ok {
		return app, true
	}
	return Lookup(pkg)
}

// All returns built-in and overlay records merged, sorted by package.
func (s *Set) All() []App {
	merged := make(map[string]App, len(known)+len(s.overlay))
	for pkg, app := range known {
		merged[pkg] = app
	}
	for pkg, app := range s.overlay {
		merged[pkg] = app
	}

	apps := make([]App, 0, len(merged))
	for _, app := range merged {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Package < apps[j].Package })
	return apps
}
