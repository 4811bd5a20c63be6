package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Scoring errors. ErrEmptySubmission is the "reject empty submission"
// policy: an attempt with zero answered positions is refused before any
// grading work. Partially answered attempts are accepted — warning the user
// about unanswered questions is a client-side concern ("warn on partial").
var (
	ErrEmptySubmission  = errors.New("submission has no answers")
	ErrAlreadySubmitted = errors.New("exam already submitted")
)

// ScoringService grades submissions against the server-held answer key and
// persists one immutable result per (user, exam). The per-pair state machine
// is NotSubmitted → Submitted with no way back: re-submission is rejected by
// the storage uniqueness constraint, never re-scored or overwritten.
type ScoringService struct {
	examService *ExamService
	resultRepo  *repository.ResultRepository
	log         zerolog.Logger
}

// NewScoringService creates a new ScoringService.
func NewScoringService(examService *ExamService, resultRepo *repository.ResultRepository, log zerolog.Logger) *ScoringService {
	return &ScoringService{
		examService: examService,
		resultRepo:  resultRepo,
		log:         log.With().Str("component", "scoring_service").Logger(),
	}
}

// Submit grades a full answer set and persists the result.
//
// The denominator is always the exam's authoritative question count, never
// the number of submitted answers — submitting 0 of 20 still grades out of
// 20. Correctness is recomputed here from the answer key on every call; the
// payload carries no correctness information to trust.
func (s *ScoringService) Submit(ctx context.Context, userID uuid.UUID, req *model.SubmitExamRequest) (*model.SubmissionSummary, error) {
	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		return nil, ErrInvalidExamID
	}
	if len(req.UserAnswers) == 0 {
		return nil, ErrEmptySubmission
	}

	answerKey, err := s.examService.GetAnswerKey(ctx, examID)
	if err != nil {
		return nil, err // ErrNoQuestions → not-found at the boundary
	}

	sheet := model.ParseAnswerSheet(req.UserAnswers)
	correct, total, score := Grade(answerKey, sheet)

	marked := req.MarkedQuestions
	if marked == nil {
		marked = []string{}
	}

	result := &model.ExamResult{
		UserID:          userID,
		ExamID:          examID,
		UserAnswers:     req.UserAnswers,
		CorrectCount:    correct,
		TotalQuestions:  total,
		ScorePercentage: score,
		MarkedQuestions: marked,
	}

	if err := s.resultRepo.Insert(ctx, result); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("insert result: %w", err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("exam_id", examID.String()).
		Float64("score", score).
		Int("correct", correct).
		Int("total", total).
		Msg("Exam submitted")

	return &model.SubmissionSummary{
		ResultID:       result.ID,
		ExamID:         examID,
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: total,
	}, nil
}

// Grade counts correct answers over the authoritative key. A position
// counts correct iff the submitted option is present and exactly equal
// (case-sensitive) to the correct option; an absent position is incorrect,
// never an error. The score is the percentage rounded to two decimals.
func Grade(answerKey []model.PositionAnswer, sheet model.AnswerSheet) (correct, total int, score float64) {
	total = len(answerKey)

	for _, pa := range answerKey {
		if submitted, ok := sheet[pa.Position]; ok && submitted == pa.CorrectOption {
			correct++
		}
	}

	if total > 0 {
		score = math.Round(float64(correct)/float64(total)*100*100) / 100
	}
	return correct, total, score
}
