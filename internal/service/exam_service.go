package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/config"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNoQuestions indicates an exam with an empty ordering relation.
var ErrNoQuestions = errors.New("exam has no questions assigned")

// ExamService handles exam catalog management and the answer-key cache.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// GetByID retrieves an exam by ID.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// List retrieves exams with optional section filter and pagination.
func (s *ExamService) List(ctx context.Context, section string, page, perPage int) ([]model.Exam, int, error) {
	return s.examRepo.List(ctx, section, page, perPage)
}

// Create inserts a new exam.
func (s *ExamService) Create(ctx context.Context, exam *model.Exam) error {
	return s.examRepo.Create(ctx, exam)
}

// Update persists exam changes.
func (s *ExamService) Update(ctx context.Context, exam *model.Exam) error {
	return s.examRepo.Update(ctx, exam)
}

// Delete removes an exam and drops its cached answer key.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.examRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.ExamAnswerKey(id.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("exam_id", id.String()).Msg("Failed to drop answer key cache")
	}
	return nil
}

// AssignQuestions replaces an exam's question set (positions 1..n from slice
// order) and rewarms the answer-key cache so grading picks up the new key
// immediately.
func (s *ExamService) AssignQuestions(ctx context.Context, examID uuid.UUID, questionIDs []uuid.UUID) error {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return fmt.Errorf("get exam: %w", err)
	}

	if err := s.questionRepo.ReplaceExamQuestions(ctx, examID, questionIDs); err != nil {
		return fmt.Errorf("replace questions: %w", err)
	}

	if err := s.WarmAnswerKeyCache(ctx, examID); err != nil {
		// The cache is an accelerator, not the source of truth — grading
		// falls back to PostgreSQL when the key is missing.
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Answer key cache warm failed")
	}
	return nil
}

// GetPaper returns the student-facing view of an exam: ordered questions
// without correct options. Explanations are attached only when the exam
// permits practice mode.
func (s *ExamService) GetPaper(ctx context.Context, examID uuid.UUID) (*model.ExamPaper, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := s.questionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	studentQuestions := make([]model.QuestionForStudent, len(questions))
	for i, q := range questions {
		sq := model.QuestionForStudent{
			ID:           q.ID,
			Position:     q.Position,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		}
		if exam.PracticeMode {
			sq.Explanation = q.Explanation
		}
		studentQuestions[i] = sq
	}

	return &model.ExamPaper{Exam: *exam, Questions: studentQuestions}, nil
}

// WarmAnswerKeyCache loads an exam's answer key from PostgreSQL into a Redis
// hash (position → correct option).
func (s *ExamService) WarmAnswerKeyCache(ctx context.Context, examID uuid.UUID) error {
	key, err := s.questionRepo.AnswerKeyByExam(ctx, examID)
	if err != nil {
		return fmt.Errorf("load answer key: %w", err)
	}
	if len(key) == 0 {
		return ErrNoQuestions
	}

	fields := make(map[string]interface{}, len(key))
	for _, pa := range key {
		fields[strconv.Itoa(pa.Position)] = pa.CorrectOption
	}

	cacheKey := config.CacheKey.ExamAnswerKey(examID.String())
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, cacheKey)
	pipe.HSet(ctx, cacheKey, fields)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache answer key: %w", err)
	}

	s.log.Debug().
		Str("exam_id", examID.String()).
		Int("questions", len(key)).
		Msg("Answer key cached")
	return nil
}

// GetAnswerKey returns the authoritative answer key for an exam, preferring
// the Redis hash and falling back to PostgreSQL on a cache miss (warming the
// cache on the way out). An empty key means the exam is missing or has no
// questions — the caller treats that as not-found.
func (s *ExamService) GetAnswerKey(ctx context.Context, examID uuid.UUID) ([]model.PositionAnswer, error) {
	cached, err := s.rdb.HGetAll(ctx, config.CacheKey.ExamAnswerKey(examID.String())).Result()
	if err == nil && len(cached) > 0 {
		key := make([]model.PositionAnswer, 0, len(cached))
		for field, option := range cached {
			pos, convErr := strconv.Atoi(field)
			if convErr != nil {
				// Corrupt cache entry — rebuild from the database.
				key = nil
				break
			}
			key = append(key, model.PositionAnswer{Position: pos, CorrectOption: option})
		}
		if key != nil {
			return key, nil
		}
	} else if err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Answer key cache read failed")
	}

	key, err := s.questionRepo.AnswerKeyByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("load answer key: %w", err)
	}
	if len(key) == 0 {
		return nil, ErrNoQuestions
	}

	if err := s.WarmAnswerKeyCache(ctx, examID); err != nil {
		s.log.Debug().Err(err).Str("exam_id", examID.String()).Msg("Answer key rewarm failed")
	}
	return key, nil
}

// PrewarmAnswerKeys loads every exam's answer key into Redis on startup so
// first submissions never race a cold cache.
func (s *ExamService) PrewarmAnswerKeys(ctx context.Context) error {
	exams, _, err := s.examRepo.List(ctx, "", 1, 1000)
	if err != nil {
		return fmt.Errorf("list exams: %w", err)
	}

	warmed := 0
	for i := range exams {
		if err := s.WarmAnswerKeyCache(ctx, exams[i].ID); err != nil {
			if !errors.Is(err, ErrNoQuestions) {
				s.log.Warn().Err(err).Str("exam_id", exams[i].ID.String()).Msg("Failed to warm exam, skipping")
			}
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(exams)).
		Msg("Answer key prewarm complete")
	return nil
}
