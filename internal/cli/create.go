package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wsgen-labs/wsgen/internal/artifact"
	"github.com/wsgen-labs/wsgen/internal/config"
	"github.com/wsgen-labs/wsgen/internal/gitx"
	"github.com/wsgen-labs/wsgen/internal/manifest"
	"github.com/wsgen-labs/wsgen/internal/project"
	"github.com/wsgen-labs/wsgen/internal/prompt"
	"github.com/wsgen-labs/wsgen/internal/register"
	"github.com/wsgen-labs/wsgen/internal/scaffold"
)

const defaultProjectName = "my-app"

var (
	createOutputDir    string
	createSubmodules   []string
	createFromFile     string
	createNoGit        bool
	createNoSubmodules bool
	createTemplateDir  string
)

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Parent directory of the project (default: current directory)")
	createCmd.Flags().StringArrayVar(&createSubmodules, "submodule", nil, "Submodule URL to register without prompting (repeatable)")
	createCmd.Flags().StringVar(&createFromFile, "from-file", "", "YAML file listing the submodule URLs")
	createCmd.Flags().BoolVar(&createNoGit, "no-git", false, "Do not initialize a git repository")
	createCmd.Flags().BoolVar(&createNoSubmodules, "no-submodules", false, "Create the workspace without registering submodules")
	createCmd.Flags().StringVar(&createTemplateDir, "template-dir", "", "Template tree to copy instead of the built-in one")
	createCmd.MarkFlagsMutuallyExclusive("no-submodules", "submodule")
	createCmd.MarkFlagsMutuallyExclusive("no-submodules", "from-file")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new workspace backed by git submodules",
	Long: `Create a new workspace directory, register its submodules and generate the
files that add them: .env, .env.example, .gitmodules.template,
setup-submodules.sh and <name>.code-workspace.

Without --submodule or --from-file the submodule URLs are asked for
interactively and each one is checked with git before it is accepted.

Examples:
  wsgen create my-app
  wsgen create my-app --submodule git@github.com:org/api.git --submodule https://github.com/org/web.git
  wsgen create --from-file submodules.yaml --no-git`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	prompter := prompt.New(os.Stdin, os.Stdout)

	urls := append([]string(nil), createSubmodules...)
	var listName string
	if createFromFile != "" {
		list, err := manifest.ParseFile(createFromFile)
		if err != nil {
			return err
		}
		urls = append(urls, list.URLs()...)
		listName = list.Project
	}

	name, err := projectName(ctx, prompter, args, listName)
	if errors.Is(err, prompt.ErrInterrupted) {
		fmt.Fprintln(out, "Project creation cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	templateDir := settings.Template.Dir
	if createTemplateDir != "" {
		templateDir = createTemplateDir
	}

	creator := &project.Creator{
		Prompter: prompter,
		Checker:  gitx.NewChecker(settings.Reachability.Backend),
		Logger:   logger,
	}
	res, err := creator.Create(ctx, project.Options{
		Path:         filepath.Join(createOutputDir, name),
		URLs:         urls,
		NoSubmodules: createNoSubmodules,
		NoGit:        createNoGit,
		Scaffold: scaffold.Options{
			Dir:     templateDir,
			Exclude: settings.Template.Exclude,
		},
		Artifact: artifact.Options{
			KeyPrefix:       settings.KeyPrefix,
			PlaceholderHost: settings.Placeholder.Host,
			PlaceholderOrg:  settings.Placeholder.Org,
			PrimaryBranch:   settings.Branches.Primary,
			FallbackBranch:  settings.Branches.Fallback,
		},
	})
	if errors.Is(err, register.ErrCancelled) || err != nil && errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(out, "Project creation cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = res.Path
	}
	project.PrintSummary(out, res, cwd)
	return nil
}

// projectName returns the name argument, the name from the submodule list,
// or asks for one.
func projectName(ctx context.Context, p prompt.Prompter, args []string, fromList string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if fromList != "" {
		return fromList, nil
	}
	name, err := p.Text(ctx, "What is your project named?", defaultProjectName, func(s string) error {
		return project.ValidateName(filepath.Base(s))
	})
	if errors.Is(err, prompt.ErrDismissed) {
		return defaultProjectName, nil
	}
	return name, err
}
