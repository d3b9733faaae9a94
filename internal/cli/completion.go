package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for regexrail on stdout.

Bash:
  $ source <(regexrail completion bash)

Zsh:
  $ regexrail completion zsh > "${fpath[1]}/_regexrail"

Fish:
  $ regexrail completion fish > ~/.config/fish/completions/regexrail.fish

PowerShell:
  PS> regexrail completion powershell | Out-String | Invoke-Expression

Completions include the --format values each command accepts.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes a comma-separated --format value: the entries
// already typed are kept and the last one is completed from allowed,
// skipping formats listed earlier.
func completeFormats(allowed []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix, last := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix, last = toComplete[:i+1], toComplete[i+1:]
		}
		seen := make(map[string]bool)
		for _, f := range strings.Split(prefix, ",") {
			seen[strings.ToLower(strings.TrimSpace(f))] = true
		}

		var out []string
		for _, f := range allowed {
			if !seen[f] && strings.HasPrefix(f, strings.ToLower(last)) {
				out = append(out, prefix+f)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
