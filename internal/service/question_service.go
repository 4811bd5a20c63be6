package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
)

// QuestionService handles question bank management.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// GetByID retrieves a question by ID.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// List retrieves questions with pagination.
func (s *QuestionService) List(ctx context.Context, page, perPage int) ([]model.Question, int, error) {
	return s.questionRepo.List(ctx, page, perPage)
}

// Create inserts a new question.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	return s.questionRepo.Create(ctx, q)
}

// Update persists question changes.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	return s.questionRepo.Update(ctx, q)
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}
