// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for ZWS using the Cobra
// library. It defines the root command, subcommands (like build, serve,
// deploy), flags, and the main entry point for execution.

package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/logging"
	"github.com/zuhairmbj123/zws/ui/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// configDefaults are the values used when neither the config file, the
// environment, nor the flags provide one.
var configDefaults = map[string]any{
	"database.type":   "sqlite",
	"database.dsn":    "./zws.db",
	"language":        "en",
	"paths.content":   "content",
	"paths.static":    "static",
	"paths.output":    "public",
	"server.host":     "127.0.0.1",
	"server.port_min": 8000,
	"server.port_max": 8100,
}

// setupDefaultServices loads the configuration, initializes i18n and opens
// the content index database. It runs as PersistentPreRunE for every
// command so subcommands can assume a working environment.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, configDefaults, optionalConfigPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// First run: no config file anywhere yet, so persist the defaults to
	// the user config path for subsequent runs to inspect and edit.
	if optionalConfigPath == nil && !configFileExists() {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// Log a warning but don't fail, as the app can run on defaults.
			log.Warnf("Warning: could not write default config file: %v", writeErr)
		} else {
			log.Info("Wrote default config to user config path")
		}
	}

	// Post-process config to ensure critical values are not empty, falling
	// back to defaults. This handles config files with empty values.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = configDefaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = configDefaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = configDefaults["language"].(string)
	}

	if err := appConfig.Validate(); err != nil {
		return err
	}

	// Initialize i18n
	i18n.Init(appConfig.Language)

	// Initialize the database if not already initialized by tests or
	// earlier setup.
	if !db.IsInitialized() {
		if _, err := db.New(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return fmt.Errorf(i18n.T("config.error_init_db"), err)
		}
	}

	return nil
}

// configFileExists reports whether a zws.yaml exists in any of the
// standard search locations.
func configFileExists() bool {
	if userPath, err := config.GetConfigPath(false); err == nil {
		if _, err := os.Stat(userPath); err == nil {
			return true
		}
	}
	if systemPath, err := config.GetConfigPath(true); err == nil {
		if _, err := os.Stat(systemPath); err == nil {
			return true
		}
	}
	if _, err := os.Stat("zws.yaml"); err == nil {
		return true
	}
	return false
}

// Execute runs the CLI entrypoint. The root main package should call this
// function and handle process exit.
func Execute() error {
	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// applyDefaultFlags registers the database flags on a command. pflag
// panics on duplicate flag definitions, so check first; NewRootCmd may be
// called multiple times in tests while subcommands are package-level.
func applyDefaultFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (e.g., sqlite, postgres)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./zws.db", "Database connection string (DSN)")
	}
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zws",
		Short: "ZWS generates and ships static marketing sites.",
		Long: `ZWS turns a tree of markdown files into a complete static site:
rendered HTML pages, an index, sitemap.xml, robots.txt and an RSS feed.
A database tracks source hashes so rebuilds only touch what changed,
and the built tree can be deployed to a remote web root over SFTP.

Running without a subcommand will launch the interactive TUI.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Printf("%s\n", compositeVersion())
				os.Exit(0)
			}
			if verbose {
				logging.SetDebug(true)
				db.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			// The database is already initialized by PersistentPreRunE.
			// i18n is also initialized, so we can just run the TUI.
			tui.Run(appConfig)
		},
	}

	cmd.Version = compositeVersion()

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets -v for DB logs)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `UI language ("en", "de")`)
	applyDefaultFlags(cmd)

	// Add subcommand flags
	applyDefaultFlags(buildCmd)
	applyDefaultFlags(serveCmd)
	applyDefaultFlags(deployCmd)
	applyDefaultFlags(contentCmd)
	applyDefaultFlags(trustHostCmd)
	applyDefaultFlags(dbMaintainCmd)
	applyDefaultFlags(dbLogCmd)
	registerBuildFlags(buildCmd)
	registerServeFlags(serveCmd)
	registerDeployFlags(deployCmd)
	registerContentFlags()
	if dbLogCmd.Flags().Lookup("limit") == nil {
		dbLogCmd.Flags().IntP("limit", "n", 20, "Number of audit log entries to show (0 for all)")
	}

	// Add a lightweight `version` subcommand so users and CI can run `zws version`.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			fmt.Printf("version: %s\n", v)
			fmt.Printf("commit: %s\n", c)
			if d != "" {
				fmt.Printf("built: %s\n", d)
			}
		},
	}

	// Add subcommands to the newly created root command.
	cmd.AddCommand(
		buildCmd,
		serveCmd,
		deployCmd,
		contentCmd,
		trustHostCmd,
		dbMaintainCmd,
		dbLogCmd,
		versionCmd,
	)

	return cmd
}

// compositeVersion builds the single-line version string shown by -V and
// cobra's --version.
func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/zuhairmbj123/zws" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort, if no version was discovered, but a gitCommit was
	// provided via ldflags, show that to aid support.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
