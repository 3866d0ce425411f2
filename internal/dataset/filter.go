package dataset

import (
	"time"

	"github.com/callscope/backend/internal/types"
)

// Filter selects a view of a dataset. Construct with NewFilter, which
// matches everything; the zero value keeps only hour-0 calls.
// Hour bounds are inclusive and follow the call time's hour of day.
type Filter struct {
	From       *time.Time
	To         *time.Time
	HourFrom   int
	HourTo     int
	Users      []string
	Directions []types.Direction
}

// NewFilter returns a filter that matches all records.
func NewFilter() Filter {
	return Filter{HourFrom: 0, HourTo: 23}
}

// Apply returns the subset of records matching the filter. The input slice
// is never mutated and record order is preserved.
func (f Filter) Apply(records []types.CallRecord) []types.CallRecord {
	out := make([]types.CallRecord, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matches(r types.CallRecord) bool {
	if f.From != nil && r.CallTime.Before(*f.From) {
		return false
	}
	if f.To != nil && r.CallTime.After(*f.To) {
		return false
	}

	hour := r.CallTime.Hour()
	if hour < f.HourFrom || hour > f.HourTo {
		return false
	}

	if len(f.Users) > 0 && !containsString(f.Users, r.User) {
		return false
	}
	if len(f.Directions) > 0 && !containsDirection(f.Directions, r.Direction) {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsDirection(set []types.Direction, v types.Direction) bool {
	for _, d := range set {
		if d == v {
			return true
		}
	}
	return false
}
