package execution

import "fmt"

// FormatDuration renders a millisecond count the way the run list
// displays it: integer milliseconds under one second, seconds to one
// decimal place under one minute, minutes and whole seconds beyond.
//
//	FormatDuration(842)    // "842ms"
//	FormatDuration(12340)  // "12.3s"
//	FormatDuration(125000) // "2m 5s"
func FormatDuration(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	default:
		return fmt.Sprintf("%dm %ds", ms/60000, (ms%60000)/1000)
	}
}
