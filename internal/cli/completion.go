// Package cli implements the Cobra command hierarchy for the sjq CLI tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use: "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: completionLongHelp,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

const completionLongHelp = `Generate shell completion scripts for sjq.

To load completions:

Bash:
 $ source <(sjq completion bash)
 $ sjq completion bash > /etc/bash_completion.d/sjq

Zsh:
 $ echo "autoload -U compinit; compinit" >> ~/.zshrc
 $ sjq completion zsh > "${fpath[1]}/_sjq"

Fish:
 $ sjq completion fish > ~/.config/fish/completions/sjq.fish

PowerShell:
 PS> sjq completion powershell | Out-String | Invoke-Expression
 PS> sjq completion powershell >> $PROFILE
`

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	out := cmd.OutOrStdout()

	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletionV2(out, true)
	case "zsh":
		return cmd.Root().GenZshCompletion(out)
	case "fish":
		return cmd.Root().GenFishCompletion(out, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell: %s", args[0])
	}
}
