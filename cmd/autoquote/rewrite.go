package main

import (
	"github.com/aretw0/autoquote/internal/cli"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [text...]",
	Short: "Rewrite chat input as it would be sent",
	Long: `Quotes speech and handles *actions* in the given text, or in stdin when no
text is given. "//aq" toggles the extension instead.`,
	Example: `  autoquote rewrite hello '*waves*' there
  echo 'hi *sits*' | autoquote rewrite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunRewrite(ctx, globalOptions(cmd), args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}
