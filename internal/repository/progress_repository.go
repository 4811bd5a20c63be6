package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdesk/prepdesk-backend/internal/model"
)

// ProgressRepository handles progress snapshot data access.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Upsert creates or replaces the snapshot for a (user, exam) pair.
// The answer map and cursor are always replaced; the marked list is replaced
// only when marked is non-nil — a nil marked leaves the stored list intact,
// so answer-only saves never clobber review marks.
func (r *ProgressRepository) Upsert(ctx context.Context, s *model.ProgressSnapshot, marked *[]string) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO progress_snapshots (user_id, exam_id, user_answers, current_progress, marked_questions)
		 VALUES ($1, $2, $3, $4, COALESCE($5::text[], '{}'))
		 ON CONFLICT (user_id, exam_id) DO UPDATE
		 SET user_answers = EXCLUDED.user_answers,
		     current_progress = EXCLUDED.current_progress,
		     marked_questions = COALESCE($5::text[], progress_snapshots.marked_questions),
		     updated_at = NOW()
		 RETURNING id, marked_questions, updated_at`,
		s.UserID, s.ExamID, s.UserAnswers, s.CurrentProgress, marked,
	).Scan(&s.ID, &s.MarkedQuestions, &s.UpdatedAt)
}

// GetByUserAndExam retrieves the snapshot for a (user, exam) pair.
func (r *ProgressRepository) GetByUserAndExam(ctx context.Context, userID, examID uuid.UUID) (*model.ProgressSnapshot, error) {
	s := &model.ProgressSnapshot{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, exam_id, user_answers, current_progress, marked_questions, updated_at
		 FROM progress_snapshots
		 WHERE user_id = $1 AND exam_id = $2`, userID, examID,
	).Scan(&s.ID, &s.UserID, &s.ExamID, &s.UserAnswers, &s.CurrentProgress, &s.MarkedQuestions, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
