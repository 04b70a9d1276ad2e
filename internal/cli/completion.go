package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/metadata"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for polaroid.

Bash:
  $ source <(polaroid completion bash)

Zsh:
  $ polaroid completion zsh > "${fpath[1]}/_polaroid"

Fish:
  $ polaroid completion fish > ~/.config/fish/completions/polaroid.fish

PowerShell:
  PS> polaroid completion powershell | Out-String | Invoke-Expression

Field names complete for --hide and --set, font families for --font.
`,
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

// completeFields completes metadata field names.
func completeFields(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range metadata.Fields() {
		out = append(out, f.String()+"\t"+f.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeAssignments completes the "key=" part of --set.
func completeAssignments(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.Contains(toComplete, "=") {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, f := range metadata.Fields() {
		out = append(out, f.String()+"=")
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFonts completes font family names.
func completeFonts(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range fonts.Families() {
		out = append(out, string(f))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// familyList renders the font families for flag help.
func familyList() string {
	var names []string
	for _, f := range fonts.Families() {
		name := string(f)
		if f == fonts.Default {
			name += " (default)"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
