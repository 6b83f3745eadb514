package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/document"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/tui"
	"github.com/studiowebux/openapi-tui/internal/version"
)

var (
	appVersion = "0.1.0"
)

const defaultDocument = "openapi.json"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "openapi-tui [openapi_path]",
	Short: "Interactive terminal client for OpenAPI APIs",
	Long: `openapi-tui browses an OpenAPI 3 document and calls its operations from the terminal.

The document can be a local JSON/YAML file or an http(s) URL.

Examples:
  openapi-tui                                  # Load ./openapi.json
  openapi-tui petstore.yaml                    # Load a local file
  openapi-tui https://example.com/openapi.json # Load from a URL
  openapi-tui api.yaml --base-url http://localhost:8080
  openapi-tui keybinds                         # Show the effective key bindings`,
	Version:      appVersion,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logging.Close()

		source := flagFile
		if len(args) > 0 {
			source = args[0]
		}
		return runTUI(cmd.Context(), source, settings)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Print the effective key bindings and validate keybinds.jsonc",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(cmd); err != nil {
			return err
		}
		defer logging.Close()
		return printKeybinds(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "openapi-tui %s\n", appVersion)
		if !flagCheck {
			return nil
		}
		release, newer, err := version.Check(cmd.Context(), version.ReleasesURL, appVersion)
		if err != nil {
			return err
		}
		if newer {
			fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s (%s)\n", release.Version(), release.HTMLURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Up to date")
		}
		return nil
	},
}

// Flags for the root command
var (
	flagFile       string
	flagBaseURL    string
	flagTimeout    time.Duration
	flagWorkers    int
	flagHistoryCap int
	flagInsecure   bool
	flagLogLevel   string
	flagKeybinds   string
)

// Flags for version
var (
	flagCheck bool
)

func init() {
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", defaultDocument, "OpenAPI document path or URL")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Server URL requests are sent to (overrides the document)")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent requests in flight")
	rootCmd.Flags().IntVar(&flagHistoryCap, "history-cap", 0, "Suspended calls kept for resume")
	rootCmd.Flags().BoolVar(&flagInsecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&flagKeybinds, "keybinds", "", "Keybinds override file (default ~/.openapi-tui/keybinds.jsonc)")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")

	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup initializes the config directory, loads settings, applies flag
// overrides and opens the log file
func setup(cmd *cobra.Command) (config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize config: %w", err)
	}
	settings, err := config.Load(config.SettingsFile)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		settings.BaseURL = flagBaseURL
	}
	if flags.Changed("timeout") && flagTimeout > 0 {
		settings.Timeout = flagTimeout
	}
	if flags.Changed("workers") && flagWorkers > 0 {
		settings.Workers = flagWorkers
	}
	if flags.Changed("history-cap") && flagHistoryCap > 0 {
		settings.HistoryCapacity = flagHistoryCap
	}
	if flags.Changed("insecure") {
		settings.InsecureSkipVerify = flagInsecure
	}
	if flagLogLevel != "" {
		settings.LogLevel = flagLogLevel
	}

	if err := logging.Configure(config.LogFile, settings.LogLevel); err != nil {
		return settings, err
	}
	return settings, nil
}

func keybindsPath() string {
	if flagKeybinds != "" {
		return flagKeybinds
	}
	return keybinds.GetDefaultConfigPath()
}

// loadKeybinds returns the effective registry, logging override warnings
func loadKeybinds() (*keybinds.Registry, *keybinds.ValidationResult, error) {
	registry, result, err := keybinds.LoadOrDefault(keybindsPath())
	if err != nil {
		return nil, result, err
	}
	for _, w := range result.Warnings {
		logging.Warn("keybinds.warning", "context", string(w.Context), "key", w.Key, "message", w.Message)
	}
	return registry, result, nil
}

// runTUI loads the document and blocks in the interactive UI
func runTUI(ctx context.Context, source string, settings config.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}

	registry, _, err := loadKeybinds()
	if err != nil {
		return err
	}

	doc, err := document.Load(ctx, source)
	if err != nil {
		return err
	}
	logging.Info("document.loaded", "source", doc.Source, "title", doc.Title(), "paths", len(doc.Paths), "webhooks", len(doc.Webhooks))

	return tui.Run(ctx, doc, settings, registry)
}

// printKeybinds writes every binding per context, then any warnings
func printKeybinds(cmd *cobra.Command) error {
	registry, result, err := loadKeybinds()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keybinds file: %s\n", keybindsPath())
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, ctx := range keybinds.Contexts {
		bindings := registry.ListBindings(ctx)
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n[%s]\n", ctx)
		for _, b := range bindings {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", b.Key, b.Action, keybinds.GetActionInfo(b.Action).Description)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if result.HasWarnings() {
		fmt.Fprintf(out, "\n%d warning(s):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, "  %s\n", warning.Error())
		}
	}
	return nil
}
