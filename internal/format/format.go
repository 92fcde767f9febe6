package format

import "fmt"

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// Speed formats an instantaneous rate in bytes/sec with 1 decimal place.
// Below 1 MiB/s the unit is KB/s, from 1 MiB/s upward MB/s.
// Example: 1048576 → "1.0 MB/s", 1048575 → "1024.0 KB/s".
func Speed(bytesPerSec float64) string {
	if bytesPerSec < mib {
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/kib)
	}
	return fmt.Sprintf("%.1f MB/s", bytesPerSec/mib)
}

// Traffic formats a cumulative byte count with 2 decimal places.
// Below 1 GiB the unit is MB, from 1 GiB upward GB.
func Traffic(bytes float64) string {
	if bytes < gib {
		return fmt.Sprintf("%.2f MB", bytes/mib)
	}
	return fmt.Sprintf("%.2f GB", bytes/gib)
}

// GB converts a byte count to gibibytes. The divisor is exactly 1024³;
// 1073741824 bytes is 1.00 GB.
func GB(bytes float64) float64 {
	return bytes / gib
}

// GBString renders a byte count as "X.XX GB".
func GBString(bytes float64) string {
	return fmt.Sprintf("%.2f GB", GB(bytes))
}

// Uptime formats a second count as whole days and hours.
// Example: 93784 → "1天 2小时".
func Uptime(seconds int64) string {
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	return fmt.Sprintf("%d天 %d小时", days, hours)
}

// Percent formats a percentage with 2 decimal places.
// Example: 12.3 → "12.30%".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
