package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCompactCount parses counts the way rating sites render them,
// e.g. "1.2K" -> 1200, "3M" -> 3000000, "847" -> 847.
func ParseCompactCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}

	mag := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		mag = 1_000
		s = s[:len(s)-1]
	case 'M', 'm':
		mag = 1_000_000
		s = s[:len(s)-1]
	case 'B', 'b':
		mag = 1_000_000_000
		s = s[:len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", "")
	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if num < 0 {
		return 0, fmt.Errorf("negative count: %s", s)
	}
	return int64(num * float64(mag)), nil
}

// FormatCount is the inverse display form, used by the CLI summaries.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1e9), ".0") + "B"
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1e6), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1e3), ".0") + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}
