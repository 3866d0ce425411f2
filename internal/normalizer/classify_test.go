package normalizer

import (
	"testing"

	"github.com/callscope/backend/internal/types"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status    string
		answered  bool
		missed    bool
		busy      bool
		failed    bool
		abandoned bool
	}{
		{"answered", true, false, false, false, false},
		{"unanswered", false, true, false, false, false},
		{"missed", false, true, false, false, false},
		{"no answer", false, true, false, false, false},
		{"busy", false, false, true, false, false},
		{"failed", false, false, false, true, false},
		{"rejected", false, false, false, true, false},
		{"call error", false, false, false, true, false},
		{"abandoned", false, false, false, false, true},
		{"completed elsewhere", false, false, false, false, false},
		{"", false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			answered, missed, busy, failed, abandoned := ClassifyStatus(tt.status)
			if answered != tt.answered || missed != tt.missed || busy != tt.busy ||
				failed != tt.failed || abandoned != tt.abandoned {
				t.Errorf("ClassifyStatus(%q) = %v/%v/%v/%v/%v, want %v/%v/%v/%v/%v",
					tt.status, answered, missed, busy, failed, abandoned,
					tt.answered, tt.missed, tt.busy, tt.failed, tt.abandoned)
			}
		})
	}
}

func TestCleanStatus(t *testing.T) {
	if got := CleanStatus("  Answered  "); got != "answered" {
		t.Errorf("expected answered, got %q", got)
	}
	if got := CleanStatus(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		input string
		want  types.Direction
	}{
		{"Inbound", types.DirectionInbound},
		{"incoming call", types.DirectionInbound},
		{"Outbound", types.DirectionOutbound},
		{"outgoing", types.DirectionOutbound},
		{"Internal", types.DirectionInternal},
		{"local", types.DirectionInternal},
		{"", types.DirectionUnknown},
		{"sideways", types.DirectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ClassifyDirection(tt.input); got != tt.want {
				t.Errorf("ClassifyDirection(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyTransfer(t *testing.T) {
	tests := []struct {
		details string
		want    bool
	}{
		{"Transferred to queue 800", true},
		{"Forwarded to voicemail", true},
		{"blind transfer", true},
		{"", false},
		{"left voicemail", false},
	}

	for _, tt := range tests {
		t.Run(tt.details, func(t *testing.T) {
			if got := ClassifyTransfer(tt.details); got != tt.want {
				t.Errorf("ClassifyTransfer(%q) = %v, want %v", tt.details, got, tt.want)
			}
		})
	}
}
