package common

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount formats an integer with comma separators.
func FormatCount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatInt(v, 10)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatOptionalFloat renders an optional float with two decimals, or "n/a"
// when the field was not reported.
func FormatOptionalFloat(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *p)
}

// FormatOptionalInt renders an optional integer with comma separators, or
// "n/a" when the field was not reported.
func FormatOptionalInt(p *int64) string {
	if p == nil {
		return "n/a"
	}
	return FormatCount(*p)
}

// FormatPct formats a fractional ratio as a percentage (0.025 -> "2.50%").
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
