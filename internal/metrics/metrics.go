package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Ingestion metrics
	DatasetsIngestedTotal int64
	RowsParsedTotal       int64
	RowsDroppedTotal      int64
	IngestErrorsTotal     int64

	// Estimation metrics
	EstimationsTotal       int64
	SamplesEmittedTotal    int64
	lastEstimationDuration time.Duration

	// Export metrics
	ExportsTotal int64

	// WebSocket metrics
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	activeConnections            int64

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal: make(map[string]map[int]int64),
			startTime:         time.Now(),
		}
	})
	return instance
}

// RecordDatasetIngested records one successfully normalized upload.
func (m *Metrics) RecordDatasetIngested(rows, dropped int) {
	m.mu.Lock()
	m.DatasetsIngestedTotal++
	m.RowsParsedTotal += int64(rows)
	m.RowsDroppedTotal += int64(dropped)
	m.mu.Unlock()
}

// RecordIngestError records a batch-fatal normalization failure.
func (m *Metrics) RecordIngestError() {
	m.mu.Lock()
	m.IngestErrorsTotal++
	m.mu.Unlock()
}

// RecordEstimation records one concurrency estimation run.
func (m *Metrics) RecordEstimation(duration time.Duration, samples int) {
	m.mu.Lock()
	m.EstimationsTotal++
	m.SamplesEmittedTotal += int64(samples)
	m.lastEstimationDuration = duration
	m.mu.Unlock()
}

// RecordExport records one filtered CSV export.
func (m *Metrics) RecordExport() {
	m.mu.Lock()
	m.ExportsTotal++
	m.mu.Unlock()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments disconnection counter
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++
}

// GetActiveConnections returns current WebSocket connections
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("callscope_uptime_seconds", time.Since(m.startTime).Seconds())

		// Ingestion metrics
		write("callscope_datasets_ingested_total", m.DatasetsIngestedTotal)
		write("callscope_rows_parsed_total", m.RowsParsedTotal)
		write("callscope_rows_dropped_total", m.RowsDroppedTotal)
		write("callscope_ingest_errors_total", m.IngestErrorsTotal)

		// Estimation metrics
		write("callscope_estimations_total", m.EstimationsTotal)
		write("callscope_samples_emitted_total", m.SamplesEmittedTotal)
		write("callscope_estimation_duration_seconds", m.lastEstimationDuration.Seconds())

		// Export metrics
		write("callscope_exports_total", m.ExportsTotal)

		// WebSocket metrics
		write("callscope_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("callscope_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("callscope_websocket_active_connections", m.activeConnections)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("callscope_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
