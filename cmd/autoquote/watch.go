package main

import (
	"time"

	"github.com/aretw0/autoquote/internal/cli"
	"github.com/aretw0/autoquote/pkg/adapters/fswatch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Decorate the .html paragraph files of a directory as they appear",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settle, _ := cmd.Flags().GetDuration("settle")
		reload, _ := cmd.Flags().GetDuration("reload")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		wopts := cli.WatchOptions{Settle: settle, Reload: reload, Quiet: quiet}
		return cli.RunWatch(ctx, globalOptions(cmd), wopts, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("settle", fswatch.DefaultSettle, "How long new files are collected before decorating")
	watchCmd.Flags().Duration("reload", 2*time.Second, "How often settings changed elsewhere are picked up")
	watchCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and status messages")
}
