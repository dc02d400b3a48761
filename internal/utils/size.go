package utils

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize converts a byte length into a short human-readable string such as "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unitIndex])
}
