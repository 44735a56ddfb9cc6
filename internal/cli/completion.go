package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphplace.

To load completions:

Bash:
  $ source <(graphplace completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ graphplace completion bash > /etc/bash_completion.d/graphplace
  # macOS:
  $ graphplace completion bash > $(brew --prefix)/etc/bash_completion.d/graphplace

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ graphplace completion zsh > "${fpath[1]}/_graphplace"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ graphplace completion fish | source

  # To load completions for each session, execute once:
  $ graphplace completion fish > ~/.config/fish/completions/graphplace.fish

PowerShell:
  PS> graphplace completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> graphplace completion powershell > graphplace.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
