// Package concurrency answers "how many calls are active" as a function
// sampled on a regular time grid over a record set. Concurrency here is a
// domain notion (overlapping call intervals), not an execution model.
package concurrency

import (
	"errors"
	"sort"
	"time"

	"github.com/callscope/backend/internal/types"
)

// ErrInvalidStep is returned for a zero or negative sampling step.
var ErrInvalidStep = errors.New("concurrency: sampling step must be positive")

// DefaultStep is the sampling granularity used when the caller does not
// choose one.
const DefaultStep = time.Minute

// observerStride controls how often an Observer is invoked during a run.
const observerStride = 10

// Sample is the concurrent call count at one grid instant.
type Sample struct {
	Time  time.Time `json:"time"`
	Count int       `json:"count"`
}

// Series is an ordered, regularly spaced sequence of samples for one view.
type Series struct {
	Samples []Sample      `json:"samples"`
	Step    time.Duration `json:"-"`
}

// Summary holds the scalar statistics of a series. NoData is true for an
// empty series, in which case Peak and Mean carry no meaning.
type Summary struct {
	Peak     int       `json:"peak"`
	PeakTime time.Time `json:"peakTime"`
	Mean     float64   `json:"mean"`
	NoData   bool      `json:"noData"`
}

// Summary computes peak and mean concurrency over the series.
func (s Series) Summary() Summary {
	if len(s.Samples) == 0 {
		return Summary{NoData: true}
	}
	peak := s.Samples[0]
	total := 0
	for _, sample := range s.Samples {
		total += sample.Count
		if sample.Count > peak.Count {
			peak = sample
		}
	}
	return Summary{
		Peak:     peak.Count,
		PeakTime: peak.Time,
		Mean:     float64(total) / float64(len(s.Samples)),
	}
}

// Observer receives progress during an estimation run. It is a side
// channel: the estimator does not know or care what the observer does.
type Observer func(done, total int)

// Estimate samples concurrent call counts at the given step across the
// span [min(Start), max(End)] of the records. The grid starts at the span
// start and advances by step while not after the span end, so the last
// sample is the largest grid instant not beyond the span end. An empty
// view yields an empty series and no error.
func Estimate(records []types.CallRecord, step time.Duration) (Series, error) {
	return EstimateObserved(records, step, nil)
}

// EstimateObserved is Estimate with a progress observer, invoked every few
// samples and once at completion.
//
// Implementation is a sweep line: starts and ends are sorted into two
// event streams walked once with a running active count, instead of
// stabbing every interval per grid point. Intervals are closed at both
// ends, so a call at instant t is active iff Start <= t <= End, i.e.
// active(t) = #(starts <= t) - #(ends < t).
func EstimateObserved(records []types.CallRecord, step time.Duration, obs Observer) (Series, error) {
	if step <= 0 {
		return Series{}, ErrInvalidStep
	}
	if len(records) == 0 {
		return Series{Step: step}, nil
	}

	starts := make([]time.Time, len(records))
	ends := make([]time.Time, len(records))
	for i, r := range records {
		starts[i] = r.Start
		ends[i] = r.End
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	sort.Slice(ends, func(i, j int) bool { return ends[i].Before(ends[j]) })

	gridStart := starts[0]
	gridEnd := ends[len(ends)-1]
	total := int(gridEnd.Sub(gridStart)/step) + 1

	series := Series{
		Samples: make([]Sample, 0, total),
		Step:    step,
	}

	si, ei := 0, 0
	done := 0
	for t := gridStart; !t.After(gridEnd); t = t.Add(step) {
		for si < len(starts) && !starts[si].After(t) {
			si++
		}
		for ei < len(ends) && ends[ei].Before(t) {
			ei++
		}
		series.Samples = append(series.Samples, Sample{Time: t, Count: si - ei})

		done++
		if obs != nil && (done%observerStride == 0 || done == total) {
			obs(done, total)
		}
	}

	return series, nil
}

// estimateNaive counts, for every grid instant, the records whose closed
// interval contains it. O(samples x records); kept as the reference oracle
// the sweep line must agree with.
func estimateNaive(records []types.CallRecord, step time.Duration) (Series, error) {
	if step <= 0 {
		return Series{}, ErrInvalidStep
	}
	if len(records) == 0 {
		return Series{Step: step}, nil
	}

	gridStart := records[0].Start
	gridEnd := records[0].End
	for _, r := range records[1:] {
		if r.Start.Before(gridStart) {
			gridStart = r.Start
		}
		if r.End.After(gridEnd) {
			gridEnd = r.End
		}
	}

	series := Series{Step: step}
	for t := gridStart; !t.After(gridEnd); t = t.Add(step) {
		count := 0
		for _, r := range records {
			if r.Contains(t) {
				count++
			}
		}
		series.Samples = append(series.Samples, Sample{Time: t, Count: count})
	}
	return series, nil
}

// SampleCount returns how many grid points Estimate would emit for the
// given records and step, so callers can bound degenerate requests before
// computing.
func SampleCount(records []types.CallRecord, step time.Duration) (int, error) {
	if step <= 0 {
		return 0, ErrInvalidStep
	}
	if len(records) == 0 {
		return 0, nil
	}
	gridStart := records[0].Start
	gridEnd := records[0].End
	for _, r := range records[1:] {
		if r.Start.Before(gridStart) {
			gridStart = r.Start
		}
		if r.End.After(gridEnd) {
			gridEnd = r.End
		}
	}
	return int(gridEnd.Sub(gridStart)/step) + 1, nil
}
