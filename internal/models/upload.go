package models

type UploadResult struct {
	BucketName     string `json:"bucket_name"`
	LocalPath      string `json:"local_path"`
	RemotePath     string `json:"remote_path"`
	SizeBytes      int64  `json:"size_bytes"`
	SizeHuman      string `json:"size_human"`
	Compressed     bool   `json:"compressed"`
	OperationTime  string `json:"operation_time"`
	UploadDuration string `json:"upload_duration"`
}
