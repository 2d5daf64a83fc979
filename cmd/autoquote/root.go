package main

import (
	"fmt"
	"os"

	"github.com/aretw0/autoquote/internal/cli"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoquote",
	Short: "AutoQuote rewrites roleplay chat input and colors chat messages",
	Long: `AutoQuote wraps speech in double quotes, keeps *actions* between asterisks
and decorates rendered chat paragraphs with speaker name and quotation colors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", cli.StoreFile, "Settings store: memory, file, loam, bunt or redis")
	rootCmd.PersistentFlags().String("store-path", "", "Directory of the file or loam store, or database file of the bunt store")
	rootCmd.PersistentFlags().String("store-format", "yaml", "Encoding of the file store: yaml or json")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Address of the redis store")
	rootCmd.PersistentFlags().String("name", domain.ExtensionName, "Key the settings are stored under")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	store, _ := cmd.Flags().GetString("store")
	storePath, _ := cmd.Flags().GetString("store-path")
	storeFormat, _ := cmd.Flags().GetString("store-format")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	name, _ := cmd.Flags().GetString("name")
	debug, _ := cmd.Flags().GetBool("debug")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	return cli.Options{
		Store:       store,
		StorePath:   storePath,
		StoreFormat: storeFormat,
		RedisAddr:   redisAddr,
		Name:        name,
		Debug:       debug,
		MetricsFile: metricsFile,
	}
}
