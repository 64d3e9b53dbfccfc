// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/buzzedword/puppet/internal/config"
	"github.com/buzzedword/puppet/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig caches the configuration loaded by initRootConfig.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "puppet",
		Short: "Manage modules on this node",
		Long: TitleStyle.Render("puppet") + SubtitleStyle.Render(" - module management for this node") + `

puppet installs, lists, and removes modules on the local system.
Modules are directories of manifests and support files described by a
metadata.json file, installed from a local release repository onto the
module search path.

` + SubtitleStyle.Render("Examples:") + `
  puppet module install puppetlabs-vcsrepo
  puppet module install puppetlabs/apache --version 0.0.3
  puppet module list
  puppet module uninstall puppetlabs-vcsrepo`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/puppet/config.cue)")

	rootCmd.AddCommand(moduleCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the configuration before any command runs.
func initRootConfig() {
	if loadedConfig != nil {
		return
	}

	cfg, err := loadConfigNow()
	if err != nil {
		// A broken config file should not hide the command output, so
		// warn and continue on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loadedConfig = config.DefaultConfig()
		return
	}

	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// activeConfig returns the configuration for the current invocation,
// loading it on demand when initRootConfig has not run.
func activeConfig(ctx context.Context) (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}

	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

func loadConfigNow() (*config.Config, error) {
	return config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: cfgFile})
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
