package model

import (
	"time"

	"github.com/google/uuid"
)

// Option labels are the four fixed answer choices. The correct option is a
// case-sensitive match against one of these labels.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Options holds the four choice texts of a multiple-choice question.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question represents a single multiple-choice question. The correct option
// must never reach a student before their submission has been graded.
type Question struct {
	ID            uuid.UUID `json:"id"`
	QuestionText  string    `json:"question_text"`
	Options       Options   `json:"options"`
	CorrectOption string    `json:"correct_option"`
	Explanation   *string   `json:"explanation,omitempty"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateQuestionRequest is the payload for adding a question to the bank.
type CreateQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=4000"`
	Options       Options  `json:"options" binding:"required"`
	CorrectOption string   `json:"correct_option" binding:"required,oneof=A B C D"`
	Explanation   *string  `json:"explanation" binding:"omitempty,max=4000"`
	Tags          []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

// UpdateQuestionRequest is the payload for updating an existing question.
type UpdateQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"omitempty,min=1,max=4000"`
	Options       *Options `json:"options" binding:"omitempty"`
	CorrectOption string   `json:"correct_option" binding:"omitempty,oneof=A B C D"`
	Explanation   *string  `json:"explanation" binding:"omitempty,max=4000"`
	Tags          []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}
