// Package main provides the trytravis CLI: submit uncommitted local changes
// to a scratch repository on GitHub and watch the resulting Travis build from
// the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trytravis/src/config"
	"trytravis/src/git"
	"trytravis/src/logger"
	"trytravis/src/travis"
	"trytravis/src/tui"
)

// newRootCmd builds the command tree. The config store is threaded in
// explicitly so tests can point it at a scratch directory.
func newRootCmd(store *config.Store) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trytravis",
		Short: "Send local git changes to Travis CI without commits or pushes",
		Long: `Running with no arguments submits your uncommitted changes to your
configured trytravis repository and watches the resulting build.

If you're still having trouble feel free to open an issue at our issue
tracker: https://github.com/sethmlarson/trytravis/issues`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			noWait, _ := cmd.Flags().GetBool("no-wait")
			return runSubmit(cmd, store, noWait)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().Bool("no-wait", false, "Don't wait for the build's jobs to end")

	repoCmd := &cobra.Command{
		Use:   "repo [url]",
		Short: "Configure the scratch repository that changes are pushed to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			}
			return store.SaveRepo(url)
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token [token]",
		Short: "Configure the Travis API token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			return store.SaveToken(token)
		},
	}

	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(tokenCmd)
	return rootCmd
}

// runSubmit pushes the working tree to the scratch repository, resolves the
// resulting Travis build, and (unless noWait) watches it until every job
// finishes.
func runSubmit(cmd *cobra.Command, store *config.Store, noWait bool) error {
	url, err := store.Repo()
	if err != nil {
		return err
	}
	token, err := store.Token()
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not determine working directory: %w", err)
	}
	repo, err := git.Open(cwd, log)
	if err != nil {
		return err
	}

	sha, committedAt, err := repo.Submit(cmd.Context(), url)
	if err != nil {
		return err
	}

	client := travis.NewClient(token)
	buildID, err := travis.NewLocator(client, log).Locate(cmd.Context(), url, sha, committedAt)
	if err != nil {
		return err
	}

	if noWait {
		return nil
	}
	return tui.Watch(client, buildID)
}

// normalizeArgs rewrites the original tool's single-dash command spellings
// onto the cobra command tree.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "-r", "--repo", "-R":
		args[0] = "repo"
	case "-t", "--token", "-T":
		args[0] = "token"
	case "-nw":
		args[0] = "--no-wait"
	case "-V":
		args[0] = "--version"
	case "-H":
		args[0] = "--help"
	}
	return args
}

func main() {
	dir, err := config.DefaultDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("ERROR: %v", err))
		os.Exit(1)
	}

	rootCmd := newRootCmd(config.NewStore(dir))
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("ERROR: %v", err))
		os.Exit(1)
	}
}
