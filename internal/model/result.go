package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamResult is the immutable, per-(user, exam) grade record created by
// submission. The UNIQUE(user_id, exam_id) constraint enforces at-most-once
// persistence; a second submission is rejected, never overwritten.
type ExamResult struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	ExamID          uuid.UUID         `json:"exam_id"`
	UserAnswers     map[string]string `json:"user_answers"`
	CorrectCount    int               `json:"correct_count"`
	TotalQuestions  int               `json:"total_questions"`
	ScorePercentage float64           `json:"score_percentage"`
	MarkedQuestions []string          `json:"marked_questions"`
	SubmittedAt     time.Time         `json:"submitted_at"`
}

// SubmitExamRequest is the submit-exam wire payload. It intentionally has no
// correctness field of any kind: grading always recomputes from the
// server-held answer key and never trusts the client.
type SubmitExamRequest struct {
	ExamID          string            `json:"examId" binding:"required"`
	UserAnswers     map[string]string `json:"userAnswers" binding:"required"`
	MarkedQuestions []string          `json:"markedQuestions"`
}

// SubmissionSummary is returned to the client after a successful submission.
type SubmissionSummary struct {
	ResultID       uuid.UUID `json:"resultId"`
	ExamID         uuid.UUID `json:"exam_id"`
	Score          float64   `json:"score"`
	CorrectCount   int       `json:"correctCount"`
	TotalQuestions int       `json:"totalQuestions"`
}

// ReviewItem is one row of the post-submission review view: the question
// content, the authoritative answer, and what the user submitted at that
// position (nil when the position was omitted).
type ReviewItem struct {
	Position        int       `json:"position"`
	QuestionID      uuid.UUID `json:"question_id"`
	QuestionText    string    `json:"question_text"`
	Options         Options   `json:"options"`
	CorrectOption   string    `json:"correct_option"`
	Explanation     *string   `json:"explanation,omitempty"`
	SubmittedOption *string   `json:"submitted_option"`
	IsCorrect       bool      `json:"is_correct"`
	Marked          bool      `json:"marked"`
}

// ExamReview is the full result projection for the review screen.
type ExamReview struct {
	Exam   Exam         `json:"exam"`
	Result ExamResult   `json:"result"`
	Items  []ReviewItem `json:"items"`
}
