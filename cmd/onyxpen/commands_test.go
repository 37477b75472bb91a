package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/spf13/pflag"

	"github.com/kalambet/onyxpen/internal/store"
)

// newTestDatabase lays out a device database containing one app blob and a
// valid checksum sidecar, then closes it so commands can take the lock.
func newTestDatabase(t *testing.T, pkg, blob string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "onyx_config")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("creating database file: %v", err)
	}
	if err := os.WriteFile(path+".crc", []byte{0, 0, 0, 0}, 0o600); err != nil {
		t.Fatalf("creating checksum file: %v", err)
	}

	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("opening fixture store: %v", err)
	}
	if pkg != "" {
		if err := st.SetAppConfig(pkg, []byte(blob)); err != nil {
			t.Fatalf("seeding fixture: %v", err)
		}
	}
	if err := st.RefreshChecksum(); err != nil {
		t.Fatalf("fixture checksum: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("closing fixture store: %v", err)
	}
	return path
}

func readAppConfig(t *testing.T, path, pkg string) []byte {
	t.Helper()
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer st.Close()

	blob, ok, err := st.AppConfig(pkg)
	if err != nil {
		t.Fatalf("AppConfig: %v", err)
	}
	if !ok {
		t.Fatalf("no stored config for %s", pkg)
	}
	return blob
}

// resetFlags clears flag values set by a previous Execute so tests do not
// inherit each other's --activity and friends (package-level cobra commands
// keep flag state between runs).
func resetFlags() {
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestQuickKnownApp(t *testing.T) {
	path := newTestDatabase(t, "com.xodo.pdf.reader", `{"activityConfigMap":{}}`)

	if err := execute(t, "quick", "--app", "com.xodo.pdf.reader", "--database", path); err != nil {
		t.Fatalf("quick failed: %v", err)
	}

	blob := readAppConfig(t, path, "com.xodo.pdf.reader")

	entries := 0
	var drawView string
	err := jsonparser.ObjectEach(blob, func(_, value []byte, _ jsonparser.ValueType, _ int) error {
		entries++
		drawView, _ = jsonparser.GetString(value, "noteConfig", "drawViewKey")
		return nil
	}, "activityConfigMap")
	if err != nil {
		t.Fatalf("reading activityConfigMap: %v", err)
	}

	if entries != 1 {
		t.Fatalf("got %d activity entries, want 1", entries)
	}
	if drawView != "com.pdftron.pdf.PDFViewCtrl" {
		t.Errorf("drawViewKey = %q, want %q", drawView, "com.pdftron.pdf.PDFViewCtrl")
	}
}

func TestQuickUnknownApp(t *testing.T) {
	path := newTestDatabase(t, "", "")

	err := execute(t, "quick", "--app", "com.example.unknown", "--database", path)
	if err == nil {
		t.Fatal("expected error for unknown app")
	}
	if !strings.Contains(err.Error(), "unknown app") {
		t.Errorf("error = %q, want it to mention 'unknown app'", err.Error())
	}
	if _, statErr := os.Stat(path + ".backup"); !os.IsNotExist(statErr) {
		t.Error("backup file written despite registry miss")
	}
}

func TestMutatingCommandMissingChecksum(t *testing.T) {
	// Database present, sidecar missing: the incomplete-copy case.
	path := filepath.Join(t.TempDir(), "onyx_config")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "enable",
		"--app", "com.example.app",
		"--draw-view", "com.example.app.DrawView",
		"--database", path)
	if err == nil {
		t.Fatal("expected error for missing checksum file")
	}
	if !strings.Contains(err.Error(), "checksum file not found") {
		t.Errorf("error = %q, want missing-checksum", err.Error())
	}
	if _, statErr := os.Stat(path + ".backup"); !os.IsNotExist(statErr) {
		t.Error("backup file written despite failed open")
	}
}

func TestEnableSynthesizesConfig(t *testing.T) {
	path := newTestDatabase(t, "", "")

	err := execute(t, "enable",
		"--app", "com.example.app",
		"--draw-view", "com.example.app.ui.DrawView",
		"--activity", "com.example.app.MainActivity",
		"--database", path)
	if err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	blob := readAppConfig(t, path, "com.example.app")
	got, err := jsonparser.GetString(blob, "activityConfigMap", "com.example.app.MainActivity", "noteConfig", "drawViewKey")
	if err != nil {
		t.Fatalf("reading drawViewKey: %v", err)
	}
	if got != "com.example.app.ui.DrawView" {
		t.Errorf("drawViewKey = %q, want %q", got, "com.example.app.ui.DrawView")
	}

	for _, suffix := range []string{".backup", ".crc.backup"} {
		if _, err := os.Stat(path + suffix); err != nil {
			t.Errorf("expected backup file %s: %v", path+suffix, err)
		}
	}
}

func TestCorruptBlobLeavesFilesUntouched(t *testing.T) {
	path := newTestDatabase(t, "com.example.app", `{"activityConfigMap":`)

	err := execute(t, "enable",
		"--app", "com.example.app",
		"--draw-view", "com.example.app.DrawView",
		"--database", path)
	if err == nil {
		t.Fatal("expected error for corrupt blob")
	}
	if !strings.Contains(err.Error(), "corrupt") {
		t.Errorf("error = %q, want corrupt-config", err.Error())
	}
	if _, statErr := os.Stat(path + ".backup"); !os.IsNotExist(statErr) {
		t.Error("backup file written despite corrupt blob")
	}

	if got := readAppConfig(t, path, "com.example.app"); string(got) != `{"activityConfigMap":` {
		t.Errorf("stored blob changed to %s", got)
	}
}

func TestDisableNamedActivity(t *testing.T) {
	path := newTestDatabase(t, "com.example.app", `{"activityConfigMap":{}}`)

	if err := execute(t, "enable",
		"--app", "com.example.app",
		"--draw-view", "com.example.app.DrawView",
		"--activity", "com.example.app.MainActivity",
		"--database", path); err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	if err := execute(t, "disable",
		"--app", "com.example.app",
		"--activity", "com.example.app.MainActivity",
		"--database", path); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	blob := readAppConfig(t, path, "com.example.app")
	if string(blob) != `{"activityConfigMap":{}}` {
		t.Errorf("blob = %s, want the entry removed", blob)
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "hello")
	if strings.Contains(result, "\033") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	result = colorize(colorGreen, "hello")
	if !strings.Contains(result, "\033") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}
