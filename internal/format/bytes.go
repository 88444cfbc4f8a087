package format

import "fmt"

// FormatBytes renders a byte count using binary units (KiB, MiB, ...).
// Values below one KiB are shown as plain bytes.
//
// Parameters:
//   - b: The byte count to format.
//
// Returns:
//   - string: A human-readable representation such as "1.5 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
