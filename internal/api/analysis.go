package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/callscope/backend/internal/alerts"
	"github.com/callscope/backend/internal/concurrency"
	"github.com/callscope/backend/internal/config"
	"github.com/callscope/backend/internal/dataset"
	"github.com/callscope/backend/internal/metrics"
	"github.com/callscope/backend/internal/progress"
	"github.com/callscope/backend/internal/rollups"
	"github.com/callscope/backend/internal/types"
)

// AnalysisHandler serves concurrency estimation, rollups and CSV export
// over a dataset view.
type AnalysisHandler struct {
	registry *dataset.Registry
	hub      *progress.Hub
	config   *config.Config
	logger   zerolog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(registry *dataset.Registry, hub *progress.Hub, cfg *config.Config, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		registry: registry,
		hub:      hub,
		config:   cfg,
		logger:   logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// concurrencyResponse bundles the sampled series with its statistics and
// any capacity alerts.
type concurrencyResponse struct {
	Step    string               `json:"step"`
	Samples []concurrency.Sample `json:"samples"`
	Summary concurrency.Summary  `json:"summary"`
	Alerts  []types.DatasetAlert `json:"alerts,omitempty"`
}

// GetConcurrency handles GET /api/datasets/{datasetID}/concurrency?step=1m
func (h *AnalysisHandler) GetConcurrency(w http.ResponseWriter, r *http.Request) {
	ds, filter, ok := h.lookup(w, r)
	if !ok {
		return
	}

	step := h.config.DefaultStep
	if v := r.URL.Query().Get("step"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_step", fmt.Sprintf("invalid step: %v", err))
			return
		}
		step = parsed
	}

	records := filter.Apply(ds.Records)

	n, err := concurrency.SampleCount(records, step)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_step", err.Error())
		return
	}
	if h.config.MaxSamples > 0 && n > h.config.MaxSamples {
		writeErrorDetail(w, http.StatusUnprocessableEntity, "too_many_samples",
			"step too small for the dataset span", map[string]interface{}{
				"samples":    n,
				"maxSamples": h.config.MaxSamples,
			})
		return
	}

	start := time.Now()
	series, err := concurrency.EstimateObserved(records, step, func(done, total int) {
		h.hub.BroadcastEvent(progress.EventEstimationProgress, progress.EstimationProgress{
			DatasetID: ds.ID,
			Done:      done,
			Total:     total,
		})
	})
	if err != nil {
		if errors.Is(err, concurrency.ErrInvalidStep) {
			writeError(w, http.StatusBadRequest, "invalid_step", err.Error())
			return
		}
		h.logger.Error().Err(err).Str("dataset_id", ds.ID).Msg("estimation failed")
		writeError(w, http.StatusInternalServerError, "estimation_failed", "estimation failed")
		return
	}

	metrics.Get().RecordEstimation(time.Since(start), len(series.Samples))

	summary := series.Summary()
	resp := concurrencyResponse{
		Step:    step.String(),
		Samples: series.Samples,
		Summary: summary,
		Alerts:  alerts.CheckCapacity(summary, h.config.CapacityLines),
	}
	if resp.Samples == nil {
		resp.Samples = []concurrency.Sample{}
	}

	h.logger.Info().
		Str("dataset_id", ds.ID).
		Dur("step", step).
		Int("samples", len(resp.Samples)).
		Int("peak", summary.Peak).
		Msg("concurrency estimated")

	writeJSON(w, http.StatusOK, resp)
}

// GetDirectionRollup handles GET /api/datasets/{datasetID}/rollups/direction
func (h *AnalysisHandler) GetDirectionRollup(w http.ResponseWriter, r *http.Request) {
	h.rollup(w, r, func(records []types.CallRecord) interface{} {
		return rollups.ByDirection(records)
	})
}

// GetHourlyRollup handles GET /api/datasets/{datasetID}/rollups/hourly
func (h *AnalysisHandler) GetHourlyRollup(w http.ResponseWriter, r *http.Request) {
	h.rollup(w, r, func(records []types.CallRecord) interface{} {
		return rollups.ByHour(records)
	})
}

// GetWeekdayRollup handles GET /api/datasets/{datasetID}/rollups/weekday
func (h *AnalysisHandler) GetWeekdayRollup(w http.ResponseWriter, r *http.Request) {
	h.rollup(w, r, func(records []types.CallRecord) interface{} {
		return rollups.ByWeekday(records)
	})
}

// GetUserRollup handles GET /api/datasets/{datasetID}/rollups/users
func (h *AnalysisHandler) GetUserRollup(w http.ResponseWriter, r *http.Request) {
	h.rollup(w, r, func(records []types.CallRecord) interface{} {
		return rollups.ByUser(records)
	})
}

func (h *AnalysisHandler) rollup(w http.ResponseWriter, r *http.Request, fn func([]types.CallRecord) interface{}) {
	ds, filter, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, fn(filter.Apply(ds.Records)))
}

var exportHeader = []string{
	"call_time", "ringing_seconds", "talking_seconds", "start", "end",
	"from", "to", "user", "user_number", "destination", "destination_number",
	"direction", "status", "answered", "real_conversation", "likely_abandoned",
}

// Export handles GET /api/datasets/{datasetID}/export. Streams the filtered
// view back out as normalized CSV.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	ds, filter, ok := h.lookup(w, r)
	if !ok {
		return
	}

	records := filter.Apply(ds.Records)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ds.Name+"-normalized.csv"))

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, rec := range records {
		cw.Write([]string{
			rec.CallTime.Format(time.RFC3339),
			strconv.Itoa(rec.RingingSeconds),
			strconv.Itoa(rec.TalkingSeconds),
			rec.Start.Format(time.RFC3339),
			rec.End.Format(time.RFC3339),
			rec.FromParty,
			rec.ToParty,
			rec.User,
			rec.UserNumber,
			rec.Destination,
			rec.DestinationNumber,
			string(rec.Direction),
			rec.StatusClean,
			strconv.FormatBool(rec.IsAnswered),
			strconv.FormatBool(rec.RealConversation),
			strconv.FormatBool(rec.LikelyAbandoned),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error().Err(err).Str("dataset_id", ds.ID).Msg("export write failed")
		return
	}

	metrics.Get().RecordExport()
	h.logger.Info().Str("dataset_id", ds.ID).Int("records", len(records)).Msg("dataset exported")
}

func (h *AnalysisHandler) lookup(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, dataset.Filter, bool) {
	return lookupDataset(h.registry, w, r)
}
