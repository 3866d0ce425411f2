// Package normalizer turns raw CDR exports into typed call records with
// canonical start/end instants and derived outcome flags. It tolerates
// column renames, mixed timestamp encodings and malformed rows; only a
// wholly unparseable call time column fails a batch.
package normalizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/callscope/backend/internal/types"
	"github.com/rs/zerolog"
)

// Result is the output of one normalization run.
type Result struct {
	Records []types.CallRecord `json:"records"`
	Dropped int                `json:"dropped"` // rows dropped for missing call time
	Layout  string             `json:"layout"`  // committed timestamp layout, or "permissive"
}

// Normalizer parses raw CDR rows into CallRecords.
type Normalizer struct {
	logger zerolog.Logger
}

// New creates a Normalizer.
func New(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize reads a CSV export and produces the normalized record set.
// Rows keep their original relative order; running it twice on the same
// input yields identical output.
func (n *Normalizer) Normalize(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, ErrEmptyInput
	}

	cols := columnMap(header)
	if _, ok := cols[FieldCallTime]; !ok {
		return nil, ErrNoTimestampColumn
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// malformed CSV line, skip it and keep going
			continue
		}
		if err != nil {
			// the reader itself failed; csv.Reader will return this
			// forever, so fail the batch
			return nil, fmt.Errorf("normalizer: reading input: %w", err)
		}
		rows = append(rows, buildRow(cols, record))
	}

	timestamps := make([]string, len(rows))
	for i, row := range rows {
		timestamps[i] = row.Get(FieldCallTime)
	}
	parsed, ok, layout := parseColumn(timestamps)

	result := &Result{
		Records: make([]types.CallRecord, 0, len(rows)),
		Layout:  layout,
	}

	var sampleBad string
	for i, row := range rows {
		if !ok[i] {
			result.Dropped++
			if sampleBad == "" {
				sampleBad = timestamps[i]
			}
			continue
		}
		result.Records = append(result.Records, buildRecord(row, parsed[i]))
	}

	if len(result.Records) == 0 && result.Dropped > 0 {
		return nil, &BatchUnparseableError{Rows: result.Dropped, Sample: sampleBad}
	}

	n.logger.Info().
		Int("rows", len(result.Records)).
		Int("dropped", result.Dropped).
		Str("layout", result.Layout).
		Msg("dataset normalized")

	return result, nil
}

// buildRecord derives every CallRecord field from one sparse row and its
// parsed call time. Pure function of its inputs; every fallback is a
// documented sentinel, never an error.
func buildRecord(row Row, callTime time.Time) types.CallRecord {
	ringing := ParseDurationSeconds(row.Get(FieldRinging))
	talking := ParseDurationSeconds(row.Get(FieldTalking))

	rec := types.CallRecord{
		CallTime:       callTime,
		RingingSeconds: ringing,
		TalkingSeconds: talking,
		Start:          callTime,
		End:            callTime.Add(time.Duration(ringing+talking) * time.Second),
		FromParty:      row.Get(FieldFrom),
		ToParty:        row.Get(FieldTo),
		StatusRaw:      row.Get(FieldStatus),
	}

	rec.User, rec.UserNumber = ExtractIdentity(rec.FromParty)
	rec.Destination, rec.DestinationNumber = ExtractIdentity(rec.ToParty)

	rec.Direction = ClassifyDirection(row.Get(FieldDirection))
	rec.StatusClean = CleanStatus(rec.StatusRaw)
	rec.IsAnswered, rec.IsMissed, rec.IsBusy, rec.IsFailed, rec.IsAbandoned = ClassifyStatus(rec.StatusClean)
	rec.IsTransferred = ClassifyTransfer(row.Get(FieldDetails))

	rec.RealConversation = rec.StatusClean == statusAnswered && rec.TalkingSeconds > 0
	rec.LikelyAbandoned = rec.StatusClean == statusAnswered && rec.TalkingSeconds == 0

	return rec
}
