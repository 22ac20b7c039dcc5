package s3client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"socrataexport/config"
)

// Integration tests for the S3 client require a real S3 connection and are
// skipped by default. To run them, set the environment variable
// S3_INTEGRATION_TEST=true

func TestNewMissingConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"No bucket", &config.Config{AccessKey: "k", SecretKey: "s"}},
		{"No access key", &config.Config{BucketName: "b", SecretKey: "s"}},
		{"No secret key", &config.Config{BucketName: "b", AccessKey: "k"}},
		{"Nothing configured", &config.Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("New() with incomplete S3 config should return error")
			}
		})
	}
}

func TestBuildRemotePath(t *testing.T) {
	client := &Client{config: &config.Config{BucketName: "test-bucket"}}

	tests := []struct {
		name        string
		destination string
		filename    string
		expected    string
	}{
		{"Empty destination", "", "export.csv", "export.csv"},
		{"Folder destination", "archives", "export.csv", "archives/export.csv"},
		{"Trailing slash", "archives/", "export.csv", "archives/export.csv"},
		{"Leading slash stripped", "/archives/2023", "export.csv.gz", "archives/2023/export.csv.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := client.buildRemotePath(tt.destination, tt.filename)
			if result != tt.expected {
				t.Errorf("buildRemotePath(%s, %s) = %s, want %s", tt.destination, tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"export.csv", "text/csv"},
		{"export.CSV", "text/csv"},
		{"export.csv.gz", "application/gzip"},
		{"metadata.json", "application/json"},
		{"export.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := detectContentType(tt.filename)
			if result != tt.expected {
				t.Errorf("detectContentType(%s) = %s, want %s", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestUploadExport(t *testing.T) {
	if os.Getenv("S3_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set S3_INTEGRATION_TEST=true to run")
	}

	cfg := &config.Config{
		BucketName: os.Getenv("TEST_BUCKET_NAME"),
		Region:     os.Getenv("TEST_REGION"),
		ApiURL:     os.Getenv("TEST_API_URL"),
		AccessKey:  os.Getenv("TEST_ACCESS_KEY"),
		SecretKey:  os.Getenv("TEST_SECRET_KEY"),
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	localPath := filepath.Join(t.TempDir(), "export.csv")
	content := []byte("id,created_date\n1,2023-11-14\n")
	if err := os.WriteFile(localPath, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result, err := client.UploadExport(context.Background(), localPath, "test-upload", false)
	if err != nil {
		t.Fatalf("UploadExport() error = %v", err)
	}

	if result.BucketName != cfg.BucketName {
		t.Errorf("BucketName = %s, want %s", result.BucketName, cfg.BucketName)
	}

	if result.RemotePath != "test-upload/export.csv" {
		t.Errorf("RemotePath = %s, want %s", result.RemotePath, "test-upload/export.csv")
	}

	if result.SizeBytes != int64(len(content)) {
		t.Errorf("SizeBytes = %d, want %d", result.SizeBytes, len(content))
	}
}
