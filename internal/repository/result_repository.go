package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdesk/prepdesk-backend/internal/model"
)

// ResultRepository handles exam result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert creates a new result row. Results are immutable: there is no
// update path, and the UNIQUE(user_id, exam_id) constraint rejects a second
// submission with a unique violation the caller maps to a conflict.
func (r *ResultRepository) Insert(ctx context.Context, res *model.ExamResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_results (user_id, exam_id, user_answers, correct_count,
		                           total_questions, score_percentage, marked_questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, submitted_at`,
		res.UserID, res.ExamID, res.UserAnswers, res.CorrectCount,
		res.TotalQuestions, res.ScorePercentage, res.MarkedQuestions,
	).Scan(&res.ID, &res.SubmittedAt)
}

// GetByUserAndExam retrieves the result for a (user, exam) pair. Filtering
// by owner here is the ownership check: a caller can never read another
// user's result through this path.
func (r *ResultRepository) GetByUserAndExam(ctx context.Context, userID, examID uuid.UUID) (*model.ExamResult, error) {
	res := &model.ExamResult{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, exam_id, user_answers, correct_count, total_questions,
		        score_percentage, marked_questions, submitted_at
		 FROM exam_results
		 WHERE user_id = $1 AND exam_id = $2`, userID, examID,
	).Scan(&res.ID, &res.UserID, &res.ExamID, &res.UserAnswers, &res.CorrectCount,
		&res.TotalQuestions, &res.ScorePercentage, &res.MarkedQuestions, &res.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByUser retrieves all results owned by a user, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, exam_id, user_answers, correct_count, total_questions,
		        score_percentage, marked_questions, submitted_at
		 FROM exam_results
		 WHERE user_id = $1
		 ORDER BY submitted_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ExamResult
	for rows.Next() {
		var res model.ExamResult
		if err := rows.Scan(&res.ID, &res.UserID, &res.ExamID, &res.UserAnswers, &res.CorrectCount,
			&res.TotalQuestions, &res.ScorePercentage, &res.MarkedQuestions, &res.SubmittedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
