package normalizer

import (
	"strconv"
	"strings"
)

// ParseDurationSeconds converts a raw duration cell into whole seconds.
// Accepted shapes: "HH:MM:SS", "MM:SS", or a bare number (truncated).
// Anything else, including empty input, yields 0: a malformed duration
// never fails the row.
func ParseDurationSeconds(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 3:
			h, ok1 := atoiPart(parts[0])
			m, ok2 := atoiPart(parts[1])
			sec, ok3 := atoiPart(parts[2])
			if !ok1 || !ok2 || !ok3 {
				return 0
			}
			return clampNonNegative(h*3600 + m*60 + sec)
		case 2:
			m, ok1 := atoiPart(parts[0])
			sec, ok2 := atoiPart(parts[1])
			if !ok1 || !ok2 {
				return 0
			}
			return clampNonNegative(m*60 + sec)
		default:
			return 0
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return clampNonNegative(int(f))
	}
	return 0
}

func atoiPart(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
