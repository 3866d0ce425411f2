package progress

import (
	"encoding/json"
	"time"
)

// Event types pushed over the WebSocket channel.
const (
	EventEstimationProgress = "estimation_progress"
	EventDatasetIngested    = "dataset_ingested"
	EventRegistrySnapshot   = "registry_snapshot"
)

// Envelope is the outer frame of every pushed event.
type Envelope struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EstimationProgress reports how far a concurrency estimation has advanced.
type EstimationProgress struct {
	DatasetID string `json:"datasetId"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
}

// DatasetIngested announces a freshly parsed upload.
type DatasetIngested struct {
	DatasetID string `json:"datasetId"`
	Name      string `json:"name"`
	Records   int    `json:"records"`
	Dropped   int    `json:"dropped"`
}

// RegistrySnapshot carries the periodic registry totals.
type RegistrySnapshot struct {
	Datasets int `json:"datasets"`
	Records  int `json:"records"`
}

// BroadcastEvent wraps payload in an Envelope and fans it out. Marshal
// failures are dropped silently; payloads are plain structs and cannot
// realistically fail to encode.
func (h *Hub) BroadcastEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(Envelope{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event")
		return
	}
	h.Broadcast(data)
}
