package cmd

import (
	"github.com/spf13/cobra"
	"socrataexport/internal/s3client"
	"socrataexport/pkg/utils"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Archive a downloaded export to an S3 bucket",
	Long: `Upload a previously downloaded export file to the configured S3 bucket.

The bucket and credentials are taken from the environment (BUCKET_NAME,
ACCESS_KEY, SECRET_KEY, and optionally REGION and API_URL). With --compress
the file is gzipped before the upload; the compressed copy is temporary and
removed afterwards.`,
	Example: `  # Upload an export to the bucket root
  socrataexport upload 311_all_202311142213.csv

  # Upload compressed, into a folder
  socrataexport upload 311_all_202311142213.csv --destination "archives/2023" --compress`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd, args)
	},
}

func runUpload(cmd *cobra.Command, args []string) error {
	localPath := args[0]
	destination, _ := cmd.Flags().GetString("destination")
	compress, _ := cmd.Flags().GetBool("compress")

	client, err := s3client.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := operationContext(cmd)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Uploading %s to bucket: %s\n", localPath, cfg.BucketName)
		if compress {
			cmd.Println("  Compressing before upload")
		}
	}

	result, err := client.UploadExport(ctx, localPath, destination, compress)
	if err != nil {
		return err
	}

	return utils.PrintJSON(result)
}

func init() {
	uploadCmd.Flags().StringP("destination", "d", "", "Destination folder in the S3 bucket (optional)")
	uploadCmd.Flags().Bool("compress", false, "Gzip the file before uploading")
	uploadCmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}
