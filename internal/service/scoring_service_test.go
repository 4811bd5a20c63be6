package service

import (
	"testing"

	"github.com/prepdesk/prepdesk-backend/internal/model"
)

func key(options ...string) []model.PositionAnswer {
	k := make([]model.PositionAnswer, len(options))
	for i, opt := range options {
		k[i] = model.PositionAnswer{Position: i + 1, CorrectOption: opt}
	}
	return k
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		answerKey   []model.PositionAnswer
		sheet       map[string]string
		wantCorrect int
		wantTotal   int
		wantScore   float64
	}{
		{
			name:        "all correct",
			answerKey:   key("A", "B", "C"),
			sheet:       map[string]string{"1": "A", "2": "B", "3": "C"},
			wantCorrect: 3,
			wantTotal:   3,
			wantScore:   100,
		},
		{
			name:        "one of three rounds to two decimals",
			answerKey:   key("A", "B", "C"),
			sheet:       map[string]string{"1": "A", "2": "D", "3": "D"},
			wantCorrect: 1,
			wantTotal:   3,
			wantScore:   33.33,
		},
		{
			name:        "two of three",
			answerKey:   key("A", "B", "C"),
			sheet:       map[string]string{"1": "A", "2": "B", "3": "D"},
			wantCorrect: 2,
			wantTotal:   3,
			wantScore:   66.67,
		},
		{
			name:        "denominator is the key size, not the answer count",
			answerKey:   key("A", "B", "C", "D"),
			sheet:       map[string]string{"1": "A"},
			wantCorrect: 1,
			wantTotal:   4,
			wantScore:   25,
		},
		{
			name:        "unanswered positions are incorrect, never errors",
			answerKey:   key("A", "B"),
			sheet:       map[string]string{},
			wantCorrect: 0,
			wantTotal:   2,
			wantScore:   0,
		},
		{
			name:        "option match is case-sensitive",
			answerKey:   key("A"),
			sheet:       map[string]string{"1": "a"},
			wantCorrect: 0,
			wantTotal:   1,
			wantScore:   0,
		},
		{
			name:        "answers outside the key are ignored",
			answerKey:   key("A"),
			sheet:       map[string]string{"1": "A", "9": "B"},
			wantCorrect: 1,
			wantTotal:   1,
			wantScore:   100,
		},
		{
			name:        "empty key grades to zero without dividing",
			answerKey:   nil,
			sheet:       map[string]string{"1": "A"},
			wantCorrect: 0,
			wantTotal:   0,
			wantScore:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, total, score := Grade(tt.answerKey, model.ParseAnswerSheet(tt.sheet))
			if correct != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", correct, tt.wantCorrect)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}

func TestGradeSevenOfNine(t *testing.T) {
	// 7/9 = 77.777... — must round half up to 77.78.
	answerKey := key("A", "A", "A", "A", "A", "A", "A", "A", "A")
	sheet := model.ParseAnswerSheet(map[string]string{
		"1": "A", "2": "A", "3": "A", "4": "A", "5": "A", "6": "A", "7": "A",
		"8": "B", "9": "B",
	})

	correct, total, score := Grade(answerKey, sheet)
	if correct != 7 || total != 9 {
		t.Fatalf("correct/total = %d/%d, want 7/9", correct, total)
	}
	if score != 77.78 {
		t.Errorf("score = %v, want 77.78", score)
	}
}
