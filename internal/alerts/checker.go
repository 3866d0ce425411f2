package alerts

import (
	"fmt"

	"github.com/callscope/backend/internal/concurrency"
	"github.com/callscope/backend/internal/types"
)

// warnRatio is the fraction of line capacity at which a warning fires.
const warnRatio = 0.8

// CheckCapacity evaluates a concurrency summary against the configured
// number of phone lines. A lines value of zero disables the check.
func CheckCapacity(summary concurrency.Summary, lines int) []types.DatasetAlert {
	if lines <= 0 || summary.NoData {
		return nil
	}

	var out []types.DatasetAlert
	switch {
	case summary.Peak >= lines:
		out = append(out, types.DatasetAlert{
			Rule:     "capacity_exceeded",
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("peak of %d concurrent calls at %s reached the %d available lines", summary.Peak, summary.PeakTime.Format("15:04"), lines),
		})
	case float64(summary.Peak) >= warnRatio*float64(lines):
		out = append(out, types.DatasetAlert{
			Rule:     "capacity_near_limit",
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("peak of %d concurrent calls at %s is close to the %d available lines", summary.Peak, summary.PeakTime.Format("15:04"), lines),
		})
	}
	return out
}
