package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"socrataexport/config"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "socrataexport",
	Short: "Bulk CSV export tool for the NYC 311 dataset",
	Long: `socrataexport streams the full NYC 311 service-request dataset from the
Socrata bulk CSV export endpoint to local disk, and can inspect dataset
metadata or archive a finished export to an S3 bucket.
Configuration is loaded from .env file or environment variables`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(uploadCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// operationContext builds the context for a command's --timeout flag.
// A zero timeout means no overall deadline; the transfer is then bounded
// only by the connect and read-inactivity timeouts.
func operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
}
