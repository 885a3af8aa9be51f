package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wsgen-labs/wsgen/internal/branding"
	"github.com/wsgen-labs/wsgen/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: fmt.Sprintf(`Read and write %s configuration stored at ~/%s/config.yaml.

Keys:
  %-22s env key prefix (default SGM)
  %-22s host used in .env.example placeholders
  %-22s organization used in .env.example placeholders
  %-22s branch checked out in every submodule
  %-22s branch tried when the primary one is missing
  %-22s reachability check: git or go-git
  %-22s template tree replacing the built-in one
  %-22s glob patterns skipped when copying templates
  %-22s minimum git version reported by doctor
  %-22s log level`,
		branding.DisplayName(), branding.HomeDir(),
		config.KeyPrefix, config.KeyPlaceholderHost, config.KeyPlaceholderOrg,
		config.KeyPrimaryBranch, config.KeyFallbackBranch, config.KeyReachability,
		config.KeyTemplateDir, config.KeyTemplateExclude, config.KeyGitMinVersion,
		config.KeyLogLevel),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		if _, err := config.Current(); err != nil {
			logger.Warn().Err(err).Msg("configuration is now invalid")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
