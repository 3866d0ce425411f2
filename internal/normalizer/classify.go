package normalizer

import (
	"strings"

	"github.com/callscope/backend/internal/types"
)

// Outcome keyword sets. Statuses matching none of them land in the visible
// "other" bucket; expanding a bucket is adding a keyword here.
var (
	missedKeywords    = []string{"missed", "no answer", "unanswered"}
	busyKeywords      = []string{"busy"}
	failedKeywords    = []string{"failed", "error", "rejected"}
	abandonedKeywords = []string{"abandoned"}
	transferKeywords  = []string{"transferred", "forwarded", "transfer", "forward"}
)

// statusAnswered uses exact matching: "unanswered" contains "answered" as a
// substring, so a substring test would misclassify it.
const statusAnswered = "answered"

// CleanStatus lower-cases and trims a raw status value.
func CleanStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ClassifyStatus derives the outcome flags from a cleaned status.
func ClassifyStatus(clean string) (answered, missed, busy, failed, abandoned bool) {
	answered = clean == statusAnswered
	missed = containsAny(clean, missedKeywords)
	busy = containsAny(clean, busyKeywords)
	failed = containsAny(clean, failedKeywords)
	abandoned = containsAny(clean, abandonedKeywords)
	return
}

// ClassifyTransfer reports whether a free-text activity field mentions a
// transfer or forward. An absent field means no transfer.
func ClassifyTransfer(details string) bool {
	return containsAny(strings.ToLower(details), transferKeywords)
}

// ClassifyDirection maps a raw direction value onto the Direction enum.
// Unrecognized or absent values are DirectionUnknown.
func ClassifyDirection(raw string) types.Direction {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return types.DirectionUnknown
	case strings.Contains(v, "inbound") || strings.Contains(v, "incoming"):
		return types.DirectionInbound
	case strings.Contains(v, "outbound") || strings.Contains(v, "outgoing"):
		return types.DirectionOutbound
	case strings.Contains(v, "internal") || strings.Contains(v, "local"):
		return types.DirectionInternal
	default:
		return types.DirectionUnknown
	}
}
