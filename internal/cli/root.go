package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wsgen-labs/wsgen/internal/branding"
	"github.com/wsgen-labs/wsgen/internal/config"
	"github.com/wsgen-labs/wsgen/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel string
	noColor  bool
	logger   = logging.Nop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a workspace whose repositories are git submodules.
It registers the submodule URLs, checks that each one is reachable, and generates
.env, .env.example, .gitmodules.template, setup-submodules.sh and a VS Code
workspace that all describe the same set of submodules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := logLevel
		if level == "" {
			level = config.Get(config.KeyLogLevel)
		}
		logger = logging.Init(logging.Options{Level: level, NoColor: noColor})
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
