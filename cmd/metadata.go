package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"socrataexport/internal/socrata"
	"socrataexport/pkg/utils"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Fetch and print the dataset metadata",
	Long: `Fetch the dataset metadata document from the Socrata API and print it as
indented JSON. With --verbose the normalized last-update stamp used for
generated filenames is printed as well.`,
	Example: `  # Print the raw metadata document
  socrataexport metadata

  # Also show the derived update stamp
  socrataexport metadata --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetadata(cmd)
	},
}

func runMetadata(cmd *cobra.Command) error {
	client, err := socrata.New(cfg)
	if err != nil {
		return err
	}

	metadata, err := client.FetchMetadata(context.Background())
	if err != nil {
		return err
	}

	if err := utils.PrintJSON(metadata); err != nil {
		return err
	}

	if isVerbose(cmd) {
		if stamp := metadata.UpdateStamp(); stamp != "" {
			cmd.Printf("Last update stamp: %s\n", stamp)
		} else {
			cmd.Println("No last update timestamp found in metadata")
		}
	}

	return nil
}
