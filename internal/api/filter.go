package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/callscope/backend/internal/dataset"
	"github.com/callscope/backend/internal/types"
)

// lookupDataset resolves the dataset and view filter of a request, writing
// the error response itself when either fails.
func lookupDataset(registry *dataset.Registry, w http.ResponseWriter, r *http.Request) (*dataset.Dataset, dataset.Filter, bool) {
	id := chi.URLParam(r, "datasetID")
	ds, ok := registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "dataset_not_found", "dataset not found")
		return nil, dataset.Filter{}, false
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return nil, dataset.Filter{}, false
	}
	return ds, filter, true
}

// parseFilter builds a dataset filter from query parameters. All parameters
// are optional: from/to are RFC3339 instants, hour_from/hour_to are inclusive
// hours of day, user and direction may repeat.
func parseFilter(r *http.Request) (dataset.Filter, error) {
	f := dataset.NewFilter()
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid from: %w", err)
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid to: %w", err)
		}
		f.To = &t
	}

	if v := q.Get("hour_from"); v != "" {
		h, err := parseHour(v)
		if err != nil {
			return f, fmt.Errorf("invalid hour_from: %w", err)
		}
		f.HourFrom = h
	}
	if v := q.Get("hour_to"); v != "" {
		h, err := parseHour(v)
		if err != nil {
			return f, fmt.Errorf("invalid hour_to: %w", err)
		}
		f.HourTo = h
	}

	f.Users = q["user"]

	for _, v := range q["direction"] {
		d, err := parseDirection(v)
		if err != nil {
			return f, err
		}
		f.Directions = append(f.Directions, d)
	}

	return f, nil
}

func parseHour(v string) (int, error) {
	h, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	return h, nil
}

func parseDirection(v string) (types.Direction, error) {
	switch types.Direction(v) {
	case types.DirectionInternal, types.DirectionInbound, types.DirectionOutbound, types.DirectionUnknown:
		return types.Direction(v), nil
	}
	return "", fmt.Errorf("invalid direction %q", v)
}
