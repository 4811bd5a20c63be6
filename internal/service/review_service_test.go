package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/model"
)

func TestBuildReview(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	q3 := uuid.New()

	exam := &model.Exam{ID: uuid.New(), Name: "Algebra Basics", QuestionCount: 3}
	questions := []model.QuestionAtPosition{
		{Position: 1, Question: model.Question{ID: q1, QuestionText: "Q1", CorrectOption: "A"}},
		{Position: 2, Question: model.Question{ID: q2, QuestionText: "Q2", CorrectOption: "B"}},
		{Position: 3, Question: model.Question{ID: q3, QuestionText: "Q3", CorrectOption: "C"}},
	}
	result := &model.ExamResult{
		UserAnswers:     map[string]string{"1": "A", "2": "D"},
		CorrectCount:    1,
		TotalQuestions:  3,
		ScorePercentage: 33.33,
		MarkedQuestions: []string{q2.String()},
	}

	review := BuildReview(exam, questions, result)

	if len(review.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(review.Items))
	}

	first := review.Items[0]
	if first.SubmittedOption == nil || *first.SubmittedOption != "A" {
		t.Errorf("item 1 submitted = %v, want A", first.SubmittedOption)
	}
	if !first.IsCorrect {
		t.Error("item 1 should be correct")
	}
	if first.Marked {
		t.Error("item 1 should not be marked")
	}

	second := review.Items[1]
	if second.SubmittedOption == nil || *second.SubmittedOption != "D" {
		t.Errorf("item 2 submitted = %v, want D", second.SubmittedOption)
	}
	if second.IsCorrect {
		t.Error("item 2 should be incorrect")
	}
	if !second.Marked {
		t.Error("item 2 should be marked")
	}

	third := review.Items[2]
	if third.SubmittedOption != nil {
		t.Errorf("item 3 submitted = %v, want nil", *third.SubmittedOption)
	}
	if third.IsCorrect {
		t.Error("unanswered item must not count as correct")
	}

	// Correct options are part of the review — it only renders after grading.
	if third.CorrectOption != "C" {
		t.Errorf("item 3 correct option = %q, want C", third.CorrectOption)
	}
}

func TestBuildReviewEmptyResult(t *testing.T) {
	exam := &model.Exam{ID: uuid.New()}
	questions := []model.QuestionAtPosition{
		{Position: 1, Question: model.Question{ID: uuid.New(), CorrectOption: "A"}},
	}
	result := &model.ExamResult{UserAnswers: map[string]string{}}

	review := BuildReview(exam, questions, result)
	if len(review.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(review.Items))
	}
	if review.Items[0].SubmittedOption != nil || review.Items[0].IsCorrect || review.Items[0].Marked {
		t.Error("empty result must yield an untouched item")
	}
}
