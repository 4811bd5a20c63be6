package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdesk/prepdesk-backend/internal/model"
)

// QuestionRepository handles question bank and exam-ordering data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_text, option_a, option_b, option_c, option_d,
		        correct_option, explanation, tags, created_at, updated_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuestionText, &q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
		&q.CorrectOption, &q.Explanation, &q.Tags, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// List retrieves questions with pagination.
func (r *QuestionRepository) List(ctx context.Context, page, perPage int) ([]model.Question, int, error) {
	offset := (page - 1) * perPage

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, option_a, option_b, option_c, option_d,
		        correct_option, explanation, tags, created_at, updated_at
		 FROM questions ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		perPage, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
			&q.CorrectOption, &q.Explanation, &q.Tags, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (question_text, option_a, option_b, option_c, option_d,
		                        correct_option, explanation, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		q.QuestionText, q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		q.CorrectOption, q.Explanation, q.Tags,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update persists question field changes.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_text = $1, option_a = $2, option_b = $3, option_c = $4, option_d = $5,
		     correct_option = $6, explanation = $7, tags = $8, updated_at = NOW()
		 WHERE id = $9`,
		q.QuestionText, q.Options.A, q.Options.B, q.Options.C, q.Options.D,
		q.CorrectOption, q.Explanation, q.Tags, q.ID)
	return err
}

// Delete removes a question from the bank.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// ListByExam retrieves an exam's questions joined through the ordering
// relation, sorted by position.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.QuestionAtPosition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT eq.position, q.id, q.question_text, q.option_a, q.option_b, q.option_c, q.option_d,
		        q.correct_option, q.explanation, q.tags, q.created_at, q.updated_at
		 FROM exam_questions eq
		 JOIN questions q ON q.id = eq.question_id
		 WHERE eq.exam_id = $1
		 ORDER BY eq.position`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.QuestionAtPosition
	for rows.Next() {
		var q model.QuestionAtPosition
		if err := rows.Scan(&q.Position, &q.ID, &q.QuestionText, &q.Options.A, &q.Options.B, &q.Options.C, &q.Options.D,
			&q.CorrectOption, &q.Explanation, &q.Tags, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// AnswerKeyByExam retrieves the authoritative (position, correct option)
// pairs for an exam, sorted by position. An empty result means the exam has
// no questions assigned (or does not exist).
func (r *QuestionRepository) AnswerKeyByExam(ctx context.Context, examID uuid.UUID) ([]model.PositionAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT eq.position, q.correct_option
		 FROM exam_questions eq
		 JOIN questions q ON q.id = eq.question_id
		 WHERE eq.exam_id = $1
		 ORDER BY eq.position`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var key []model.PositionAnswer
	for rows.Next() {
		var pa model.PositionAnswer
		if err := rows.Scan(&pa.Position, &pa.CorrectOption); err != nil {
			return nil, err
		}
		key = append(key, pa)
	}
	return key, rows.Err()
}

// ReplaceExamQuestions atomically replaces an exam's question assignment.
// Positions are assigned 1..n from slice order, which keeps them contiguous
// and unique, and the exam's question_count is updated in the same
// transaction.
func (r *QuestionRepository) ReplaceExamQuestions(ctx context.Context, examID uuid.UUID, questionIDs []uuid.UUID) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM exam_questions WHERE exam_id = $1`, examID); err != nil {
		return fmt.Errorf("clear assignment: %w", err)
	}

	for i, qid := range questionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO exam_questions (exam_id, question_id, position) VALUES ($1, $2, $3)`,
			examID, qid, i+1,
		); err != nil {
			return fmt.Errorf("assign question %s at position %d: %w", qid, i+1, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE exams SET question_count = $1, updated_at = NOW() WHERE id = $2`,
		len(questionIDs), examID,
	); err != nil {
		return fmt.Errorf("update question count: %w", err)
	}

	return tx.Commit(ctx)
}
