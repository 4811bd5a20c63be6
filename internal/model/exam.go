package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents a named, ordered set of questions a user attempts.
// Exams are read-only during an attempt; only admins mutate them.
type Exam struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Section       string    `json:"section"`
	PracticeMode  bool      `json:"practice_mode"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=255"`
	Section      string `json:"section" binding:"required,min=1,max=100"`
	PracticeMode bool   `json:"practice_mode"`
}

// UpdateExamRequest is the payload for updating an existing exam.
type UpdateExamRequest struct {
	Name         string `json:"name" binding:"omitempty,min=3,max=255"`
	Section      string `json:"section" binding:"omitempty,min=1,max=100"`
	PracticeMode *bool  `json:"practice_mode" binding:"omitempty"`
}

// ExamPaper is the student-facing view of an exam: ordered questions with
// no correct options. Explanations are included only for practice-mode exams.
type ExamPaper struct {
	Exam      Exam                 `json:"exam"`
	Questions []QuestionForStudent `json:"questions"`
}

// QuestionForStudent is a question stripped of its correct option.
type QuestionForStudent struct {
	ID           uuid.UUID `json:"id"`
	Position     int       `json:"position"`
	QuestionText string    `json:"question_text"`
	Options      Options   `json:"options"`
	Explanation  *string   `json:"explanation,omitempty"`
}
