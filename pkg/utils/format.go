package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count with one decimal place and a binary unit
// suffix. Scaling stops at PB, so very large counts stay in PB.
func FormatBytes(bytes int64) string {
	size := float64(bytes)
	for _, unit := range byteUnits[:len(byteUnits)-1] {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f PB", size)
}

func PrintJSON(data interface{}) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonOutput))
	return nil
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
