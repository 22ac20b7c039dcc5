package cmd

import (
	"github.com/spf13/cobra"
	"socrataexport/internal/socrata"
	"socrataexport/pkg/utils"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Stream the full dataset to disk via the bulk CSV export",
	Long: `Download the entire dataset through the Socrata bulk CSV export endpoint.

The response body is streamed to disk in fixed-size chunks, so the dataset is
never held in memory. If no output path is given, a timestamped filename is
derived from the dataset's last update (or from the current time when the
metadata lookup fails).`,
	Example: `  # Download with an automatically derived filename
  socrataexport download

  # Download to an explicit path
  socrataexport download --output exports/311.csv

  # Larger chunks, with progress output
  socrataexport download --chunk-size 4194304 --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd)
	},
}

func runDownload(cmd *cobra.Command) error {
	output, _ := cmd.Flags().GetString("output")
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")

	client, err := socrata.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := operationContext(cmd)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Starting bulk export download...\n")
		if output != "" {
			cmd.Printf("  Output: %s\n", output)
		}
	}

	result, err := client.DownloadBulkCSV(ctx, output, chunkSize, isVerbose(cmd))
	if err != nil {
		return err
	}

	return utils.PrintJSON(result)
}

func init() {
	downloadCmd.Flags().StringP("output", "o", "", "Destination file path (default: timestamped name from dataset metadata)")
	downloadCmd.Flags().Int("chunk-size", socrata.DefaultChunkSize, "Chunk size in bytes for the streaming download")
	downloadCmd.Flags().Int("timeout", 0, "Overall timeout in seconds for the operation (0 = no limit; stalls are caught by the read-inactivity timeout)")
}
