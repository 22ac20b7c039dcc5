package s3client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "socrataexport/config"
	"socrataexport/internal/models"
	"socrataexport/pkg/utils"
)

type Client struct {
	s3Client *s3.Client
	config   *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	if cfg.BucketName == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing S3 configuration: BUCKET_NAME, ACCESS_KEY and SECRET_KEY must be set")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client: s3Client,
		config:   cfg,
	}, nil
}

// UploadExport pushes a downloaded export file to the configured bucket,
// optionally gzip-compressing it first. The compressed copy is temporary and
// is removed after the upload.
func (c *Client) UploadExport(ctx context.Context, localPath, destinationPath string, compress bool) (*models.UploadResult, error) {
	startTime := time.Now()

	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", localPath, err)
	}

	uploadPath := localPath
	if compress {
		compressedPath, err := utils.CompressFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to compress %s: %w", localPath, err)
		}
		defer utils.CleanupTempFile(compressedPath)
		uploadPath = compressedPath
	}

	info, err := os.Stat(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", uploadPath, err)
	}

	remotePath := c.buildRemotePath(destinationPath, filepath.Base(uploadPath))
	if err := c.uploadSingleFile(ctx, uploadPath, remotePath); err != nil {
		return nil, err
	}

	return &models.UploadResult{
		BucketName:     c.config.BucketName,
		LocalPath:      localPath,
		RemotePath:     remotePath,
		SizeBytes:      info.Size(),
		SizeHuman:      utils.FormatBytes(info.Size()),
		Compressed:     compress,
		OperationTime:  utils.FormatTime(startTime),
		UploadDuration: time.Since(startTime).String(),
	}, nil
}

func (c *Client) uploadSingleFile(ctx context.Context, localPath, remotePath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	uploader := manager.NewUploader(c.s3Client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(remotePath),
		Body:        file,
		ContentType: aws.String(detectContentType(localPath)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

func (c *Client) buildRemotePath(destinationPath, filename string) string {
	if destinationPath == "" {
		return filename
	}

	destinationPath = strings.TrimPrefix(destinationPath, "/")
	if !strings.HasSuffix(destinationPath, "/") {
		destinationPath += "/"
	}

	return destinationPath + filename
}

func detectContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".gz":
		return "application/gzip"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
