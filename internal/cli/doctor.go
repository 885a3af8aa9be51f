package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/wsgen-labs/wsgen/internal/config"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/manifest"
)

var (
	checkGit    bool
	checkConfig bool
	checkList   string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkGit, "check-git", false, "Verify git is installed and recent enough")
	doctorCmd.Flags().BoolVar(&checkConfig, "check-config", false, "Validate the configuration file")
	doctorCmd.Flags().StringVar(&checkList, "check-list", "", "Validate a submodule list file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment used to create workspaces",
	Long:  `Run diagnostic checks on git, the configuration file and submodule list files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		anyFlag := checkGit || checkConfig || checkList != ""

		if !anyFlag || checkGit {
			runGitCheck(cmd.Context(), out)
		}
		if !anyFlag || checkConfig {
			runConfigCheck(out)
		}
		if checkList != "" {
			if err := runListCheck(out, checkList); err != nil {
				return err
			}
		}
		return nil
	},
}

func runGitCheck(ctx context.Context, out io.Writer) {
	fmt.Fprintln(out, "Git check:")
	path, err := exec.LookPath("git")
	if err != nil {
		fmt.Fprintln(out, "  [MISS] git not found; submodule access checks and repository setup will be skipped")
		return
	}
	fmt.Fprintf(out, "  [ OK ] git found at %s\n", path)

	v, err := gitx.Version(ctx)
	if err != nil {
		fmt.Fprintf(out, "  [WARN] Could not read git version: %v\n", err)
		return
	}
	minimum := config.Get(config.KeyGitMinVersion)
	ok, err := gitx.AtLeast(v, minimum)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [WARN] Invalid %s %q: %v\n", config.KeyGitMinVersion, minimum, err)
	case ok:
		fmt.Fprintf(out, "  [ OK ] git %s (minimum %s)\n", v, minimum)
	default:
		fmt.Fprintf(out, "  [FAIL] git %s is older than %s\n", v, minimum)
	}
}

func runConfigCheck(out io.Writer) {
	fmt.Fprintf(out, "Config check (%s):\n", config.FilePath())
	s, err := config.Current()
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return
	}
	fmt.Fprintf(out, "  [ OK ] key prefix %s, branches %s/%s, reachability via %s\n",
		s.KeyPrefix, s.Branches.Primary, s.Branches.Fallback, s.Reachability.Backend)
}

func runListCheck(out io.Writer, path string) error {
	fmt.Fprintf(out, "Submodule list validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("submodule list validation failed: %w", err)
	}

	if result.Valid {
		list, err := manifest.ParseFile(path)
		if err != nil {
			fmt.Fprintln(out, "  [ OK ] Valid submodule list")
			return nil
		}
		fmt.Fprintf(out, "  [ OK ] Valid submodule list with %d URL(s)\n", len(list.Submodules))
		return nil
	}

	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(out, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("submodule list %s has %d validation issue(s)", path, len(result.Issues))
}
