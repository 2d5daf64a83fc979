package main

import (
	"github.com/aretw0/autoquote/internal/cli"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change the stored settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		return cli.RunSettingsGet(cmd.Context(), globalOptions(cmd), format, cmd.OutOrStdout())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Change one setting",
	Example: `  autoquote settings set highlightNamesEnabled true`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSettingsSet(cmd.Context(), globalOptions(cmd), args[0], args[1], cmd.OutOrStdout())
	},
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Turn the extension on or off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSettingsToggle(cmd.Context(), globalOptions(cmd), cmd.OutOrStdout())
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSettingsReset(cmd.Context(), globalOptions(cmd), cmd.OutOrStdout())
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the names with stored settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSettingsList(cmd.Context(), globalOptions(cmd), cmd.OutOrStdout())
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings with a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSettingsImport(cmd.Context(), globalOptions(cmd), args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsToggleCmd, settingsResetCmd, settingsListCmd, settingsImportCmd)

	settingsGetCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
}
