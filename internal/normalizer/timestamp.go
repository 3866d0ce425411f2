package normalizer

import "time"

// LayoutPermissive marks a dataset whose call time column had no single
// uniform layout and was parsed value by value instead.
const LayoutPermissive = "permissive"

// candidateLayouts is the ordered list of timestamp layouts tried against
// the whole call time column. The first layout that parses every non-empty
// value wins; formats are never mixed per row within one dataset. Order
// matters: more specific layouts come first so the permissive fallback
// stays deterministic too.
var candidateLayouts = []string{
	"2006-01-02T15:04:05Z07:00", // RFC3339
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006/01/02 15:04:05",
	"2006.01.02 15:04:05",
}

// sniffLayout returns the first candidate layout that parses every
// non-empty value in the column.
func sniffLayout(values []string) (string, bool) {
	for _, layout := range candidateLayouts {
		if parsesAll(layout, values) {
			return layout, true
		}
	}
	return "", false
}

func parsesAll(layout string, values []string) bool {
	seen := false
	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true
		if _, err := time.Parse(layout, v); err != nil {
			return false
		}
	}
	return seen
}

// parsePermissive tries every candidate layout against a single value.
func parsePermissive(v string) (time.Time, bool) {
	for _, layout := range candidateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseColumn parses the whole call time column. ok[i] is false for rows
// whose timestamp is missing or unparseable; such rows get dropped by the
// caller. The returned layout names the committed format, or
// LayoutPermissive when per-value inference was needed.
func parseColumn(values []string) (parsed []time.Time, ok []bool, layout string) {
	parsed = make([]time.Time, len(values))
	ok = make([]bool, len(values))

	if l, found := sniffLayout(values); found {
		for i, v := range values {
			if v == "" {
				continue
			}
			t, err := time.Parse(l, v)
			if err != nil {
				continue
			}
			parsed[i] = t
			ok[i] = true
		}
		return parsed, ok, l
	}

	for i, v := range values {
		if v == "" {
			continue
		}
		if t, good := parsePermissive(v); good {
			parsed[i] = t
			ok[i] = true
		}
	}
	return parsed, ok, LayoutPermissive
}
