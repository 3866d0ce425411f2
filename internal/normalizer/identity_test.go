package normalizer

import "testing"

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantNumber string
	}{
		{"name with number", "Cassa 04 (59004)", "Cassa 04", "59004"},
		{"bare number", "59004", "59004", "Unknown"},
		{"bare name", "Reception", "Reception", "Unknown"},
		{"empty", "", "Unknown", "Unknown"},
		{"whitespace only", "   ", "Unknown", "Unknown"},
		{"number only parenthetical", "(123)", "Unknown", "123"},
		{"empty parenthetical", "Alice ()", "Alice", "Unknown"},
		{"padded", "  Mario Rossi (59010)  ", "Mario Rossi", "59010"},
		{"nested parens keeps last group", "Queue (Main) (800)", "Queue (Main)", "800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, number := ExtractIdentity(tt.input)
			if name != tt.wantName || number != tt.wantNumber {
				t.Errorf("ExtractIdentity(%q) = (%q, %q), want (%q, %q)",
					tt.input, name, number, tt.wantName, tt.wantNumber)
			}
		})
	}
}
