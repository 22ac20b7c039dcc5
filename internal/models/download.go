package models

type DownloadResult struct {
	OutputPath       string `json:"output_path"`
	BytesDownloaded  int64  `json:"bytes_downloaded"`
	SizeOnDiskBytes  int64  `json:"size_on_disk_bytes"`
	SizeOnDiskHuman  string `json:"size_on_disk_human"`
	OperationTime    string `json:"operation_time"`
	DownloadDuration string `json:"download_duration"`
}
