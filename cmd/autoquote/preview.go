package main

import (
	"os"

	"github.com/aretw0/autoquote/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Type messages and see them as the chat would show them",
	RunE: func(cmd *cobra.Command, args []string) error {
		markdown, _ := cmd.Flags().GetBool("markdown")
		style, _ := cmd.Flags().GetString("style")

		popts := cli.PreviewOptions{
			Markdown:    markdown,
			Style:       style,
			Interactive: cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())),
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunPreview(ctx, globalOptions(cmd), popts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolP("markdown", "m", false, "Render through the markdown renderer")
	previewCmd.Flags().String("style", "", "Markdown style (dark, light, notty); detected by default")
}
