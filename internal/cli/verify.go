package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wsgen-labs/wsgen/internal/verify"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check that a workspace's generated files agree",
	Long: `Re-read setup-submodules.sh, .env, .env.example, .gitmodules.template and the
.code-workspace file of an existing workspace and report submodules that are
missing from, or extra in, any of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		root, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}

		report, err := verify.Project(cmd.Context(), root)
		if err != nil {
			return err
		}
		report.Print(cmd.OutOrStdout())
		if report.Failed() {
			return fmt.Errorf("workspace %s is inconsistent", root)
		}
		return nil
	},
}
