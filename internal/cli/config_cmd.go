package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kompass-sh/sjq/internal/config"
	"github.com/kompass-sh/sjq/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use: "config",
	Short: "Inspect and initialize sjq configuration",
}

var configShowCmd = &cobra.Command{
	Use: "show",
	Short: "Print the fully resolved profile, annotated with each field's source layer",
	RunE: runConfigShow,
}

var configExplainCmd = &cobra.Command{
	Use: "explain QUERY",
	Short: "Compile QUERY and print its Filter tree and Stage plan without running it",
	Args: cobra.ExactArgs(1),
	RunE: runConfigExplain,
}

var configInitCmd = &cobra.Command{
	Use: "init",
	Short: "Write a starter .sjq.toml",
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().String("profile", "default", "profile name to resolve and display")
	configInitCmd.Flags().String("template", "", "project name substituted into the starter profile")

	configCmd.AddCommand(configShowCmd, configExplainCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	profileName, _ := cmd.Flags().GetString("profile")

	resolved, err := config.Resolve(config.ResolveOptions{ProfileName: profileName})
	if err != nil {
		return pipeline.NewInitError("config resolution failed", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), config.ShowProfile(config.ShowOptions{
				Profile: resolved.Profile,
				Sources: resolved.Sources,
				ProfileName: resolved.ProfileName,
	}))
	return nil
}

func runConfigExplain(cmd *cobra.Command, args []string) error {
	maxTextLength := config.DefaultProfile().MaxTextLength
	out, err := config.ExplainQuery(args[0], maxTextLength)
	if err != nil {
		return pipeline.NewInitError("query does not compile", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("template")
	if name == "" {
		name = "myproject"
	}

	path := config.RepoConfigFilePath(".")
	if _, err := os.Stat(path); err == nil {
		return pipeline.NewInitError("config already exists", fmt.Errorf("%s already exists; remove it first", path))
	}

	if err := os.WriteFile(path, []byte(config.RenderInitTemplate(name)), 0o644); err != nil {
		return pipeline.NewInitError("cannot write config", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
