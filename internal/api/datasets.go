// Package api exposes the upload and analysis endpoints over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/callscope/backend/internal/config"
	"github.com/callscope/backend/internal/dataset"
	"github.com/callscope/backend/internal/metrics"
	"github.com/callscope/backend/internal/normalizer"
	"github.com/callscope/backend/internal/progress"
	"github.com/callscope/backend/internal/rollups"
	"github.com/callscope/backend/internal/types"
)

// DatasetHandler handles dataset lifecycle endpoints
type DatasetHandler struct {
	registry *dataset.Registry
	norm     *normalizer.Normalizer
	hub      *progress.Hub
	config   *config.Config
	logger   zerolog.Logger
}

// NewDatasetHandler creates a new DatasetHandler
func NewDatasetHandler(registry *dataset.Registry, norm *normalizer.Normalizer, hub *progress.Hub, cfg *config.Config, logger zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		registry: registry,
		norm:     norm,
		hub:      hub,
		config:   cfg,
		logger:   logger.With().Str("component", "dataset_handler").Logger(),
	}
}

// uploadResponse is returned after a successful ingest.
type uploadResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
	Records    int       `json:"records"`
	Dropped    int       `json:"dropped"`
	Layout     string    `json:"layout"`
}

// summaryResponse describes one dataset plus its status breakdown.
type summaryResponse struct {
	uploadResponse
	Span   *spanResponse         `json:"span,omitempty"`
	Status types.StatusBreakdown `json:"status"`
}

type spanResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Upload handles POST /api/datasets. Expects a multipart form with the CSV
// export in the "file" field.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadMB<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large",
				fmt.Sprintf("upload exceeds the %d MB limit", h.config.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, "missing_file", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	result, err := h.norm.Normalize(file)
	if err != nil {
		metrics.Get().RecordIngestError()
		h.writeIngestError(w, header.Filename, err)
		return
	}

	metrics.Get().RecordDatasetIngested(len(result.Records), result.Dropped)
	ds := h.registry.Add(header.Filename, result.Records, result.Dropped, result.Layout)

	h.hub.BroadcastEvent(progress.EventDatasetIngested, progress.DatasetIngested{
		DatasetID: ds.ID,
		Name:      ds.Name,
		Records:   len(ds.Records),
		Dropped:   ds.Dropped,
	})

	h.logger.Info().
		Str("dataset_id", ds.ID).
		Str("name", ds.Name).
		Int("records", len(ds.Records)).
		Int("dropped", ds.Dropped).
		Msg("dataset ingested")

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:         ds.ID,
		Name:       ds.Name,
		UploadedAt: ds.UploadedAt,
		Records:    len(ds.Records),
		Dropped:    ds.Dropped,
		Layout:     ds.Layout,
	})
}

func (h *DatasetHandler) writeIngestError(w http.ResponseWriter, name string, err error) {
	var batchErr *normalizer.BatchUnparseableError

	switch {
	case errors.Is(err, normalizer.ErrEmptyInput):
		writeError(w, http.StatusUnprocessableEntity, "empty_input", err.Error())
	case errors.Is(err, normalizer.ErrNoTimestampColumn):
		writeError(w, http.StatusUnprocessableEntity, "no_timestamp_column", err.Error())
	case errors.As(err, &batchErr):
		writeErrorDetail(w, http.StatusUnprocessableEntity, "timestamps_unparseable", err.Error(), map[string]interface{}{
			"rows":   batchErr.Rows,
			"sample": batchErr.Sample,
		})
	default:
		h.logger.Error().Err(err).Str("name", name).Msg("ingest failed")
		writeError(w, http.StatusBadRequest, "invalid_upload", "could not read CSV upload")
	}
}

// List handles GET /api/datasets
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	datasets := h.registry.List()

	out := make([]uploadResponse, 0, len(datasets))
	for _, ds := range datasets {
		out = append(out, uploadResponse{
			ID:         ds.ID,
			Name:       ds.Name,
			UploadedAt: ds.UploadedAt,
			Records:    len(ds.Records),
			Dropped:    ds.Dropped,
			Layout:     ds.Layout,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/datasets/{datasetID}. Applies the view filter before
// computing the status breakdown and span.
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ds, filter, ok := h.lookup(w, r)
	if !ok {
		return
	}

	records := filter.Apply(ds.Records)

	resp := summaryResponse{
		uploadResponse: uploadResponse{
			ID:         ds.ID,
			Name:       ds.Name,
			UploadedAt: ds.UploadedAt,
			Records:    len(records),
			Dropped:    ds.Dropped,
			Layout:     ds.Layout,
		},
		Status: rollups.Status(records),
	}
	if span := recordSpan(records); span != nil {
		resp.Span = span
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetRecords handles GET /api/datasets/{datasetID}/records
func (h *DatasetHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ds, filter, ok := h.lookup(w, r)
	if !ok {
		return
	}

	records := filter.Apply(ds.Records)
	if records == nil {
		records = []types.CallRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Delete handles DELETE /api/datasets/{datasetID}
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if !h.registry.Delete(id) {
		writeError(w, http.StatusNotFound, "dataset_not_found", "dataset not found")
		return
	}

	h.logger.Info().Str("dataset_id", id).Msg("dataset deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *DatasetHandler) lookup(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, dataset.Filter, bool) {
	return lookupDataset(h.registry, w, r)
}

func recordSpan(records []types.CallRecord) *spanResponse {
	if len(records) == 0 {
		return nil
	}
	span := &spanResponse{From: records[0].Start, To: records[0].End}
	for _, rec := range records[1:] {
		if rec.Start.Before(span.From) {
			span.From = rec.Start
		}
		if rec.End.After(span.To) {
			span.To = rec.End
		}
	}
	return span
}
