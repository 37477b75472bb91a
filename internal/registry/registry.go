// Package registry holds the table of apps with community-verified draw view
// keys, so common apps can be optimized without any discovery work.
package registry

import "sort"

// App describes one known application: its package, a display name, the view
// class the device's pen input stack should latch onto, and the activities
// the optimization is usually scoped to (first one is the default).
type App struct {
	Package     string   `yaml:"package"`
	Name        string   `yaml:"name"`
	DrawViewKey string   `yaml:"drawViewKey"`
	Activities  []string `yaml:"activities"`
}

// DefaultActivity returns the activity an optimization should target when
// the user does not pick one, or "" when none is known.
func (a App) DefaultActivity() string {
	if len(a.Activities) == 0 {
		return ""
	}
	return a.Activities[0]
}

// known is process-wide immutable data; entries are community verified.
var known = map[string]App{
	"com.xodo.pdf.reader": {
		Package:     "com.xodo.pdf.reader",
		Name:        "Xodo PDF Reader",
		DrawViewKey: "com.pdftron.pdf.PDFViewCtrl",
		Activities: []string{
			"com.xodo.presentation.activity.TabletReaderActivity",
			"com.xodo.presentation.activity.ReaderActivity",
		},
	},
	"com.steadfastinnovation.android.projectpapyrus": {
		Package:     "com.steadfastinnovation.android.projectpapyrus",
		Name:        "Squid",
		DrawViewKey: "com.steadfastinnovation.android.projectpapyrus.ui.widget.PageViewContainer",
		Activities: []string{
			"com.steadfastinnovation.android.projectpapyrus.ui.MainActivity",
		},
	},
	"md.obsidian": {
		Package:     "md.obsidian",
		Name:        "Obsidian (Excalidraw/Ink)",
		DrawViewKey: "com.getcapacitor.CapacitorWebView",
		Activities:  []string{"md.obsidian.MainActivity"},
	},
	"com.penly.penly": {
		Package:     "com.penly.penly",
		Name:        "Penly",
		DrawViewKey: "com.penly.penly.editor.views.EditorView",
		Activities:  []string{"com.penly.penly.editor.EditorActivity"},
	},
	"jp.ne.ibis.ibispaintx": {
		Package:     "jp.ne.ibis.ibispaintx",
		Name:        "Ibis Paint X",
		DrawViewKey: "jp.ne.ibis.ibispaintx.app.glwtk.IbisPaintView",
		Activities:  []string{"jp.ne.ibis.ibispaintx.app.MainActivity"},
	},
	"com.medibang.android.paint.tablet": {
		Package:     "com.medibang.android.paint.tablet",
		Name:        "MediBang Paint",
		DrawViewKey: "com.medibang.android.paint.tablet.ui.widget.CanvasView",
		Activities:  []string{"com.medibang.android.paint.tablet.MainActivity"},
	},
	"org.joplin.react": {
		Package:     "org.joplin.react",
		Name:        "Joplin (Drawing plugin)",
		DrawViewKey: "com.reactnativecommunity.webview.RNCWebView",
		Activities:  []string{"org.joplin.react.MainActivity"},
	},
	"com.easyinnovation.notebook.gfree": {
		Package:     "com.easyinnovation.notebook.gfree",
		Name:        "DrawNote",
		DrawViewKey: "com.dragonnest.app.view.DrawingContainerView",
		Activities:  []string{"com.easyinnovation.notebook.gfree.MainActivity"},
	},
	"com.microsoft.office.onenote": {
		Package:     "com.microsoft.office.onenote",
		Name:        "Microsoft OneNote",
		DrawViewKey: "com.microsoft.office.onenote.drawing.CanvasView",
		Activities:  []string{"com.microsoft.office.onenote.ui.main.MainActivity"},
	},
}

// Lookup finds a built-in record by package. A miss is a normal outcome: it
// means the user has to discover the draw view key themselves.
func Lookup(pkg string) (App, bool) {
	app, ok := known[pkg]
	return app, ok
}

// All returns the built-in records sorted by package.
func All() []App {
	apps := make([]App, 0, len(known))
	for _, app := range known {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Package < apps[j].Package })
	return apps
}
