package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressSnapshot is the resumable, per-(user, exam) record of in-progress
// answers and review marks. It is mutable (upserted on every save) and
// carries no score — finalized grades live in ExamResult.
type ProgressSnapshot struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	ExamID          uuid.UUID         `json:"exam_id"`
	UserAnswers     map[string]string `json:"user_answers"`
	MarkedQuestions []string          `json:"marked_questions"`
	CurrentProgress int               `json:"current_progress"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SaveProgressRequest is the save-progress wire payload. MarkedQuestions is
// a pointer so "field omitted" (keep the stored mark list) and "empty array"
// (clear the mark list) stay distinguishable.
type SaveProgressRequest struct {
	ExamID          string            `json:"examId" binding:"required"`
	UserAnswers     map[string]string `json:"userAnswers" binding:"required"`
	MarkedQuestions *[]string         `json:"markedQuestions"`
}

// RecordAnswerRequest selects an option for one position of the caller's
// in-flight attempt scratch state.
type RecordAnswerRequest struct {
	Position int    `json:"position" binding:"required,min=1"`
	Option   string `json:"option" binding:"required,oneof=A B C D"`
}

// ToggleMarkRequest flips the marked-for-review flag on one position of the
// caller's in-flight attempt scratch state.
type ToggleMarkRequest struct {
	Position int `json:"position" binding:"required,min=1"`
}
