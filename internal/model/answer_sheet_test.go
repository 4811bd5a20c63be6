package model

import "testing"

func TestParseAnswerSheet(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]string
		want    int // expected entry count
		highest int
	}{
		{
			name:    "sequential answers",
			raw:     map[string]string{"1": "A", "2": "B", "3": "C"},
			want:    3,
			highest: 3,
		},
		{
			name:    "gaps are allowed",
			raw:     map[string]string{"1": "A", "7": "D"},
			want:    2,
			highest: 7,
		},
		{
			name:    "malformed keys are dropped without failing",
			raw:     map[string]string{"2": "B", "abc": "X"},
			want:    1,
			highest: 2,
		},
		{
			name:    "zero and negative positions are dropped",
			raw:     map[string]string{"0": "A", "-3": "B", "4": "C"},
			want:    1,
			highest: 4,
		},
		{
			name:    "empty map",
			raw:     map[string]string{},
			want:    0,
			highest: 0,
		},
		{
			name:    "all keys malformed",
			raw:     map[string]string{"x": "A", "1.5": "B", "": "C"},
			want:    0,
			highest: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := ParseAnswerSheet(tt.raw)
			if len(sheet) != tt.want {
				t.Errorf("len = %d, want %d", len(sheet), tt.want)
			}
			if got := sheet.HighestPosition(); got != tt.highest {
				t.Errorf("HighestPosition() = %d, want %d", got, tt.highest)
			}
		})
	}
}

func TestParseAnswerSheetKeepsOptions(t *testing.T) {
	sheet := ParseAnswerSheet(map[string]string{"3": "D"})
	if sheet[3] != "D" {
		t.Errorf("sheet[3] = %q, want %q", sheet[3], "D")
	}
}
