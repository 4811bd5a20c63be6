package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
)

// ErrResultMissing indicates no result exists for the requested (user, exam)
// pair — either never submitted or owned by somebody else (the two are
// indistinguishable on purpose).
var ErrResultMissing = errors.New("no result for this exam")

// ReviewService is the read side: it joins a stored result with question
// content into the per-question review view. It performs no writes, and
// every read is scoped to the authenticated owner.
type ReviewService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	resultRepo   *repository.ResultRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
) *ReviewService {
	return &ReviewService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
	}
}

// GetReview assembles the review projection for the caller's result on an
// exam. Ownership is enforced on the read itself: the result lookup is
// keyed by the authenticated user, so supplying another user's exam ID
// yields not-found, not their data.
func (s *ReviewService) GetReview(ctx context.Context, userID, examID uuid.UUID) (*model.ExamReview, error) {
	result, err := s.resultRepo.GetByUserAndExam(ctx, userID, examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultMissing
		}
		return nil, fmt.Errorf("get result: %w", err)
	}

	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := s.questionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return BuildReview(exam, questions, result), nil
}

// ListResults returns all of the caller's results, newest first.
func (s *ReviewService) ListResults(ctx context.Context, userID uuid.UUID) ([]model.ExamResult, error) {
	return s.resultRepo.ListByUser(ctx, userID)
}

// BuildReview merges an exam's ordered questions with a stored result into
// per-question review items. Positions absent from the stored answer map
// appear with a nil submitted option and count as incorrect.
func BuildReview(exam *model.Exam, questions []model.QuestionAtPosition, result *model.ExamResult) *model.ExamReview {
	markedSet := make(map[string]bool, len(result.MarkedQuestions))
	for _, qid := range result.MarkedQuestions {
		markedSet[qid] = true
	}

	items := make([]model.ReviewItem, len(questions))
	for i, q := range questions {
		item := model.ReviewItem{
			Position:      q.Position,
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
			Marked:        markedSet[q.ID.String()],
		}

		if submitted, ok := result.UserAnswers[strconv.Itoa(q.Position)]; ok {
			item.SubmittedOption = &submitted
			item.IsCorrect = submitted == q.CorrectOption
		}

		items[i] = item
	}

	return &model.ExamReview{
		Exam:   *exam,
		Result: *result,
		Items:  items,
	}
}
