package main

import (
	"github.com/aretw0/autoquote/internal/cli"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file...]",
	Short: "Color speaker names and quotations in paragraph markup",
	Long: `Annotates chat paragraph HTML read from the given files or stdin.
Without --variant the stored settings select the styling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, _ := cmd.Flags().GetString("variant")
		undo, _ := cmd.Flags().GetBool("undo")
		inPlace, _ := cmd.Flags().GetBool("in-place")
		nameColor, _ := cmd.Flags().GetString("name-color")
		textColor, _ := cmd.Flags().GetString("text-color")
		quoteColor, _ := cmd.Flags().GetString("quote-color")

		aopts := cli.AnnotateOptions{
			Variant:    variant,
			Undo:       undo,
			InPlace:    inPlace,
			NameColor:  nameColor,
			TextColor:  textColor,
			QuoteColor: quoteColor,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunAnnotate(ctx, globalOptions(cmd), aopts, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().String("variant", "", "Styling: names, full or none (default from settings)")
	annotateCmd.Flags().Bool("undo", false, "Remove every annotation instead")
	annotateCmd.Flags().BoolP("in-place", "i", false, "Rewrite the given files")
	annotateCmd.Flags().String("name-color", "", "Speaker name color")
	annotateCmd.Flags().String("text-color", "", "Paragraph text color (full styling)")
	annotateCmd.Flags().String("quote-color", "", "Quotation color (full styling)")
}
