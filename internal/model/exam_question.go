package model

import (
	"github.com/google/uuid"
)

// ExamQuestion associates an exam with a question at a 1-based position.
// Positions are contiguous and unique per exam; they are the addressing
// scheme shared by the client (one page per position) and the grader.
type ExamQuestion struct {
	ExamID     uuid.UUID `json:"exam_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Position   int       `json:"position"`
}

// QuestionAtPosition pairs a full question with its position in an exam.
type QuestionAtPosition struct {
	Position int `json:"position"`
	Question
}

// PositionAnswer is one entry of an exam's authoritative answer key.
type PositionAnswer struct {
	Position      int    `json:"position"`
	CorrectOption string `json:"correct_option"`
}

// AssignQuestionsRequest replaces an exam's question set. Order in the slice
// determines positions 1..n, so contiguity holds by construction.
type AssignQuestionsRequest struct {
	QuestionIDs []uuid.UUID `json:"question_ids" binding:"required,min=1,dive,required"`
}
