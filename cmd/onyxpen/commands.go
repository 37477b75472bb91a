package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalambet/onyxpen/internal/discover"
	"github.com/kalambet/onyxpen/internal/eac"
	"github.com/kalambet/onyxpen/internal/registry"
	"github.com/kalambet/onyxpen/internal/store"
)

// loadRegistry returns the built-in table, extended by --registry if given.
func loadRegistry() (*registry.Set, error) {
	if registryPath == "" {
		return registry.Builtin(), nil
	}
	return registry.LoadOverlay(registryPath)
}

// applyOptimization runs the full mutating flow for one app: read, merge,
// back up, write, refresh the checksum sidecar. Merge failures happen before
// the backup so a corrupt blob leaves the disk completely untouched.
func applyOptimization(dbPath, pkg, drawViewKey, activity string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	blob, _, err := st.AppConfig(pkg)
	if err != nil {
		return err
	}

	merged, err := eac.Enable(blob, drawViewKey, activity)
	if err != nil {
		return fmt.Errorf("config for %s: %w", pkg, err)
	}

	dbBackup, crcBackup, err := st.Backup()
	if err != nil {
		return err
	}
	printStep("Created backups: %s, %s", dbBackup, crcBackup)

	if err := st.SetAppConfig(pkg, merged); err != nil {
		return err
	}
	return st.RefreshChecksum()
}

// --- known ---

var knownCmd = &cobra.Command{
	Use:   "known",
	Short: "List apps with pre-verified draw view keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		if app != "" {
			rec, ok := reg.Lookup(app)
			if !ok {
				printWarning("%s is not in the known apps table", app)
				fmt.Fprintln(os.Stderr, "Run 'onyxpen known' to see all known apps, or 'onyxpen discover --app "+app+"' for suggestions.")
				return fmt.Errorf("unknown app: %s", app)
			}
			fmt.Printf("%s\n", colorize(colorBold, rec.Name))
			printStatus("Package", "%s", rec.Package)
			printStatus("DrawViewKey", "%s", rec.DrawViewKey)
			for _, act := range rec.Activities {
				printStatus("Activity", "%s", act)
			}
			return nil
		}

		apps := reg.All()
		fmt.Printf("Known apps with pre-verified draw view keys (%d):\n", len(apps))
		for _, rec := range apps {
			fmt.Printf("  %s\n", colorize(colorBold, rec.Package))
			fmt.Printf("    Name: %s\n", rec.Name)
			fmt.Printf("    DrawViewKey: %s\n", rec.DrawViewKey)
		}
		return nil
	},
}

func init() {
	knownCmd.Flags().String("app", "", "show details for one known app")
}

// --- quick ---

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Enable optimization for a known app in one step",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")
		dbPath, _ := cmd.Flags().GetString("database")
		activity, _ := cmd.Flags().GetString("activity")

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		rec, ok := reg.Lookup(app)
		if !ok {
			printError("%s is not in the known apps table", app)
			fmt.Fprintln(os.Stderr, "Open the app's own optimization menu on the device once first, then use")
			fmt.Fprintln(os.Stderr, "'onyxpen enable' with an explicit --draw-view, or 'onyxpen discover' for suggestions.")
			return fmt.Errorf("unknown app: %s", app)
		}

		if activity == "" {
			activity = rec.DefaultActivity()
		}

		if err := applyOptimization(dbPath, app, rec.DrawViewKey, activity); err != nil {
			return err
		}

		printSuccess("Enabled handwriting optimization for %s", rec.Name)
		printStatus("Package", "%s", app)
		printStatus("Activity", "%s", displayActivity(activity))
		printStatus("Draw View", "%s", rec.DrawViewKey)
		return nil
	},
}

func init() {
	quickCmd.Flags().String("app", "", "app package name (must be a known app)")
	quickCmd.Flags().String("database", "", "path to the device config database")
	quickCmd.Flags().String("activity", "", "activity to scope to (default: the app's usual one)")
	quickCmd.MarkFlagRequired("app")
	quickCmd.MarkFlagRequired("database")
}

// --- enable ---

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable handwriting optimization with an explicit draw view key",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")
		drawView, _ := cmd.Flags().GetString("draw-view")
		activity, _ := cmd.Flags().GetString("activity")
		dbPath, _ := cmd.Flags().GetString("database")

		if err := applyOptimization(dbPath, app, drawView, activity); err != nil {
			return err
		}

		printSuccess("Enabled handwriting optimization for %s", app)
		printStatus("Activity", "%s", displayActivity(activity))
		printStatus("Draw View", "%s", drawView)
		return nil
	},
}

func init() {
	enableCmd.Flags().String("app", "", "app package name")
	enableCmd.Flags().String("draw-view", "", "view class that should receive pen input")
	enableCmd.Flags().String("activity", "", "activity to scope to (default: any activity)")
	enableCmd.Flags().String("database", "", "path to the device config database")
	enableCmd.MarkFlagRequired("app")
	enableCmd.MarkFlagRequired("draw-view")
	enableCmd.MarkFlagRequired("database")
}

// --- disable ---

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable handwriting optimization",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")
		activity, _ := cmd.Flags().GetString("activity")
		dbPath, _ := cmd.Flags().GetString("database")

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		blob, ok, err := st.AppConfig(app)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("app %s has no stored configuration", app)
		}

		if activity == "" {
			// Nothing to remove means nothing to write; don't touch the files.
			infos, err := eac.Activities(blob)
			if err != nil {
				return fmt.Errorf("config for %s: %w", app, err)
			}
			optimized := 0
			for _, info := range infos {
				if info.Enabled && info.DrawViewKey != "" {
					optimized++
				}
			}
			if optimized == 0 {
				printWarning("No handwriting optimizations found for %s", app)
				return nil
			}
		}

		merged, err := eac.Disable(blob, activity)
		if err != nil {
			return fmt.Errorf("config for %s: %w", app, err)
		}

		dbBackup, crcBackup, err := st.Backup()
		if err != nil {
			return err
		}
		printStep("Created backups: %s, %s", dbBackup, crcBackup)

		if err := st.SetAppConfig(app, merged); err != nil {
			return err
		}
		if err := st.RefreshChecksum(); err != nil {
			return err
		}

		printSuccess("Disabled handwriting optimization for %s", app)
		return nil
	},
}

func init() {
	disableCmd.Flags().String("app", "", "app package name")
	disableCmd.Flags().String("activity", "", "only remove this activity's entry")
	disableCmd.Flags().String("database", "", "path to the device config database")
	disableCmd.MarkFlagRequired("app")
	disableCmd.MarkFlagRequired("database")
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps with handwriting optimization enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("database")
		all, _ := cmd.Flags().GetBool("all")

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		pkgs, err := st.Apps()
		if err != nil {
			return err
		}

		if all {
			fmt.Printf("All apps in database (%d):\n", len(pkgs))
			for _, pkg := range pkgs {
				fmt.Printf("  %s\n", pkg)
			}
			return nil
		}

		count := 0
		for _, pkg := range pkgs {
			blob, ok, err := st.AppConfig(pkg)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			infos, err := eac.Activities(blob)
			if err != nil {
				printWarning("skipping %s: %v", pkg, err)
				continue
			}
			var lines []string
			for _, info := range infos {
				if info.Enabled && info.DrawViewKey != "" {
					lines = append(lines, fmt.Sprintf("    - %s (view: %s)", info.Activity, info.DrawViewKey))
				}
			}
			if len(lines) == 0 {
				continue
			}
			count++
			fmt.Printf("  %s:\n", colorize(colorBold, pkg))
			for _, line := range lines {
				fmt.Println(line)
			}
		}
		if count == 0 {
			fmt.Println("No apps with handwriting optimization.")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("database", "", "path to the device config database")
	listCmd.Flags().Bool("all", false, "list every app in the database")
	listCmd.MarkFlagRequired("database")
}

// --- show ---

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored configuration for one app",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")
		dbPath, _ := cmd.Flags().GetString("database")
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		blob, ok, err := st.AppConfig(app)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("app %s not found in database", app)
		}

		if asJSON {
			var pretty json.RawMessage = blob
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(pretty)
		}

		infos, err := eac.Activities(blob)
		if err != nil {
			return fmt.Errorf("config for %s: %w", app, err)
		}

		fmt.Printf("Configuration for %s:\n", app)
		if len(infos) == 0 {
			fmt.Println("  No activity configurations.")
			return nil
		}
		for _, info := range infos {
			if info.Enabled && info.DrawViewKey != "" {
				fmt.Printf("  %s %s\n", colorize(colorGreen, "✓"), info.Activity)
				fmt.Printf("      Draw View: %s\n", info.DrawViewKey)
			} else {
				fmt.Printf("  - %s (no handwriting)\n", info.Activity)
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().String("app", "", "app package name")
	showCmd.Flags().String("database", "", "path to the device config database")
	showCmd.Flags().Bool("json", false, "dump the raw stored blob")
	showCmd.MarkFlagRequired("app")
	showCmd.MarkFlagRequired("database")
}

// --- discover ---

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Suggest draw view keys for an unknown app",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		fmt.Println("Draw view key patterns seen across known apps:")
		for _, group := range discover.Patterns(reg.All()) {
			fmt.Printf("  %s: ", colorize(colorBold, group.ClassName))
			for i, name := range group.Apps {
				if i > 0 {
					fmt.Print(", ")
				}
				fmt.Print(name)
			}
			fmt.Println()
		}

		fmt.Println("\nCommon view class suffixes to try:")
		for _, suffix := range discover.Suffixes {
			fmt.Printf("  *%s\n", suffix)
		}

		if app != "" {
			fmt.Printf("\nSuggestions for %s:\n", app)
			for i, candidate := range discover.Suggest(app) {
				fmt.Printf("  %2d. %s\n", i+1, candidate)
			}
			fmt.Println("\nTry one with:")
			fmt.Printf("  onyxpen test --app %s --draw-view <DrawViewKey> --database ./onyx_config\n", app)
		}

		fmt.Println("\nDiscovery methods:")
		fmt.Println("1. Android debugging: adb shell dumpsys activity top")
		fmt.Println("2. APK analysis: search for *View classes in decompiled code")
		fmt.Println("3. Inspect the app's view hierarchy while drawing")
		fmt.Println("4. Check similar apps' patterns")
		fmt.Println("5. Community forums: MobileRead, Reddit r/Onyx_Boox")
		return nil
	},
}

func init() {
	discoverCmd.Flags().String("app", "", "app package name to analyze")
}

// --- test ---

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Try a candidate draw view key and print verification steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _ := cmd.Flags().GetString("app")
		drawView, _ := cmd.Flags().GetString("draw-view")
		activity, _ := cmd.Flags().GetString("activity")
		dbPath, _ := cmd.Flags().GetString("database")
		label, _ := cmd.Flags().GetString("name")

		if label == "" {
			label = app
		}

		printStep("Testing draw view key for %s", label)
		printStatus("Package", "%s", app)
		printStatus("DrawViewKey", "%s", drawView)
		printStatus("Activity", "%s", displayActivity(activity))

		if err := applyOptimization(dbPath, app, drawView, activity); err != nil {
			return err
		}

		printSuccess("Test configuration applied")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Verification steps:")
		fmt.Fprintln(os.Stderr, "1. Copy the modified database and its .crc companion back to the device")
		fmt.Fprintln(os.Stderr, "2. Restart the target app")
		fmt.Fprintln(os.Stderr, "3. Draw with the stylus in the app")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "If handwriting works, this draw view key is correct for %s.\n", label)
		fmt.Fprintf(os.Stderr, "Consider sharing: %s -> %s\n", app, drawView)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "If it does not, try another candidate from 'onyxpen discover'")
		fmt.Fprintln(os.Stderr, "and restore the .backup pair before copying files to the device.")
		return nil
	},
}

func init() {
	testCmd.Flags().String("app", "", "app package name")
	testCmd.Flags().String("draw-view", "", "candidate draw view key")
	testCmd.Flags().String("activity", "", "activity to scope to (default: any activity)")
	testCmd.Flags().String("database", "", "path to the device config database")
	testCmd.Flags().String("name", "", "friendly app name for the output")
	testCmd.MarkFlagRequired("app")
	testCmd.MarkFlagRequired("draw-view")
	testCmd.MarkFlagRequired("database")
}

func displayActivity(activity string) string {
	if activity == "" {
		return eac.AnyActivity + " (any activity)"
	}
	return activity
}
