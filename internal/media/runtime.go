package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRuntime converts a display runtime into seconds.
// Accepts "1h 47m", "58m", "45s" and clock forms "1:02:00" / "58:00".
// Anything else (e.g. "8 Seasons") yields 0, meaning unknown.
func ParseRuntime(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	var total float64
	for _, field := range strings.Fields(s) {
		if len(field) < 2 {
			return 0
		}
		unit := field[len(field)-1]
		n, err := strconv.ParseFloat(field[:len(field)-1], 64)
		if err != nil {
			return 0
		}
		switch unit {
		case 'h':
			total += n * 3600
		case 'm':
			total += n * 60
		case 's':
			total += n
		default:
			return 0
		}
	}
	return total
}

// parseClock parses HH:MM:SS or MM:SS into seconds.
func parseClock(s string) float64 {
	parts := strings.Split(s, ":")
	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	if len(parts) > 3 {
		return 0
	}
	return total
}

// FormatClock formats seconds as H:MM:SS, or M:SS under an hour.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
