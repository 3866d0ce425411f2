package normalizer

import (
	"regexp"
	"strings"
)

// Canonical field names. Rows are sparse maps keyed by these; a derivation
// that needs an absent field reads a zero value and falls back, so column
// absence is ordinary input rather than an error path.
const (
	FieldCallTime  = "call_time"
	FieldRinging   = "ringing"
	FieldTalking   = "talking"
	FieldStatus    = "status"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldDirection = "direction"
	FieldDetails   = "details"
)

// headerSynonyms maps trim-and-lowered source column names to canonical
// fields. Phone-system exports rename columns between versions; extending
// tolerance is adding an entry here.
var headerSynonyms = map[string]string{
	"call time":  FieldCallTime,
	"calltime":   FieldCallTime,
	"date/time":  FieldCallTime,
	"date time":  FieldCallTime,
	"start time": FieldCallTime,
	"started at": FieldCallTime,

	"ringing":      FieldRinging,
	"ringing time": FieldRinging,
	"ring time":    FieldRinging,
	"ring":         FieldRinging,

	"talking":      FieldTalking,
	"talking time": FieldTalking,
	"talk time":    FieldTalking,
	"talk":         FieldTalking,

	"status":      FieldStatus,
	"call status": FieldStatus,
	"result":      FieldStatus,

	"caller id":     FieldFrom,
	"caller":        FieldFrom,
	"from":          FieldFrom,
	"source":        FieldFrom,
	"calling party": FieldFrom,

	"destination":  FieldTo,
	"callee":       FieldTo,
	"to":           FieldTo,
	"called party": FieldTo,

	"direction":      FieldDirection,
	"call direction": FieldDirection,

	"reason":           FieldDetails,
	"details":          FieldDetails,
	"activity details": FieldDetails,
	"notes":            FieldDetails,
}

var spaceRE = regexp.MustCompile(`\s+`)

func normHeader(s string) string {
	return spaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// columnMap resolves a CSV header to canonical field -> column index.
func columnMap(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		canon, ok := headerSynonyms[normHeader(h)]
		if !ok {
			continue
		}
		if _, taken := cols[canon]; taken {
			continue // first matching column wins
		}
		cols[canon] = i
	}
	return cols
}

// Row is a sparse mapping from canonical field name to raw value.
// Absent and blank columns are simply missing keys.
type Row map[string]string

// Lookup returns the trimmed value for a canonical field and whether it
// was present and non-empty.
func (r Row) Lookup(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// Get returns the trimmed value for a field, or "" when absent.
func (r Row) Get(field string) string {
	v, _ := r.Lookup(field)
	return v
}

// buildRow projects one raw CSV record onto the canonical fields.
func buildRow(cols map[string]int, record []string) Row {
	row := make(Row, len(cols))
	for field, idx := range cols {
		if idx >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[idx])
		if v == "" {
			continue
		}
		row[field] = v
	}
	return row
}
