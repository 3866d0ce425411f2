// Package rollups groups normalized call records into the small aggregate
// tables the exploration UI renders: status breakdown, and counts with mean
// durations by direction, hour of day, day of week and user.
package rollups

import (
	"sort"

	"github.com/callscope/backend/internal/types"
)

// Status tallies outcome flags over a record set.
func Status(records []types.CallRecord) types.StatusBreakdown {
	var b types.StatusBreakdown
	b.Total = len(records)
	for _, r := range records {
		switch {
		case r.IsAnswered:
			b.Answered++
		case r.IsMissed:
			b.Missed++
		case r.IsBusy:
			b.Busy++
		case r.IsFailed:
			b.Failed++
		case r.IsAbandoned:
			b.Abandoned++
		default:
			b.Other++
		}
		if r.IsTransferred {
			b.Transferred++
		}
		if r.RealConversation {
			b.RealConversation++
		}
		if r.LikelyAbandoned {
			b.LikelyAbandoned++
		}
	}
	return b
}

type accumulator struct {
	total    int
	answered int
	missed   int
	ringing  int
	talking  int
}

func (a *accumulator) add(r types.CallRecord) {
	a.total++
	if r.IsAnswered {
		a.answered++
	}
	if r.IsMissed {
		a.missed++
	}
	a.ringing += r.RingingSeconds
	a.talking += r.TalkingSeconds
}

func (a *accumulator) meanRinging() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.ringing) / float64(a.total)
}

func (a *accumulator) meanTalking() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.talking) / float64(a.total)
}

// ByDirection aggregates per call direction. Only directions present in
// the record set appear, in a fixed enum order.
func ByDirection(records []types.CallRecord) []types.DirectionStats {
	accs := make(map[types.Direction]*accumulator)
	for _, r := range records {
		acc, ok := accs[r.Direction]
		if !ok {
			acc = &accumulator{}
			accs[r.Direction] = acc
		}
		acc.add(r)
	}

	order := []types.Direction{
		types.DirectionInternal,
		types.DirectionInbound,
		types.DirectionOutbound,
		types.DirectionUnknown,
	}
	out := make([]types.DirectionStats, 0, len(accs))
	for _, d := range order {
		acc, ok := accs[d]
		if !ok {
			continue
		}
		out = append(out, types.DirectionStats{
			Direction:   d,
			Total:       acc.total,
			Answered:    acc.answered,
			Missed:      acc.missed,
			MeanRinging: acc.meanRinging(),
			MeanTalking: acc.meanTalking(),
		})
	}
	return out
}

// ByHour aggregates per hour of day. All 24 buckets are emitted so the
// chart axis is stable even for quiet hours.
func ByHour(records []types.CallRecord) []types.HourStats {
	var accs [24]accumulator
	for _, r := range records {
		accs[r.CallTime.Hour()].add(r)
	}
	out := make([]types.HourStats, 24)
	for h := range accs {
		out[h] = types.HourStats{
			Hour:        h,
			Total:       accs[h].total,
			Answered:    accs[h].answered,
			Missed:      accs[h].missed,
			MeanRinging: accs[h].meanRinging(),
			MeanTalking: accs[h].meanTalking(),
		}
	}
	return out
}

// ByWeekday aggregates per day of week, 0=Sunday through 6=Saturday.
func ByWeekday(records []types.CallRecord) []types.WeekdayStats {
	var accs [7]accumulator
	for _, r := range records {
		accs[int(r.CallTime.Weekday())].add(r)
	}
	out := make([]types.WeekdayStats, 7)
	for d := range accs {
		out[d] = types.WeekdayStats{
			Weekday:     d,
			Total:       accs[d].total,
			Answered:    accs[d].answered,
			Missed:      accs[d].missed,
			MeanRinging: accs[d].meanRinging(),
			MeanTalking: accs[d].meanTalking(),
		}
	}
	return out
}

// ByUser aggregates per originating user, busiest first; ties break on
// user name so output is deterministic.
func ByUser(records []types.CallRecord) []types.UserStats {
	type userAcc struct {
		accumulator
		number string
	}
	accs := make(map[string]*userAcc)
	for _, r := range records {
		acc, ok := accs[r.User]
		if !ok {
			acc = &userAcc{number: r.UserNumber}
			accs[r.User] = acc
		}
		acc.add(r)
	}

	out := make([]types.UserStats, 0, len(accs))
	for user, acc := range accs {
		out = append(out, types.UserStats{
			User:        user,
			UserNumber:  acc.number,
			Total:       acc.total,
			Answered:    acc.answered,
			Missed:      acc.missed,
			MeanRinging: acc.meanRinging(),
			MeanTalking: acc.meanTalking(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].User < out[j].User
	})
	return out
}
