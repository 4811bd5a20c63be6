package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdesk/prepdesk-backend/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// GetByID retrieves an exam by ID.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, section, practice_mode, question_count, created_at, updated_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Section, &e.PracticeMode, &e.QuestionCount, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves exams with optional section filter and pagination.
func (r *ExamRepository) List(ctx context.Context, section string, page, perPage int) ([]model.Exam, int, error) {
	offset := (page - 1) * perPage

	baseQuery := ` FROM exams`
	args := []any{}
	if section != "" {
		args = append(args, section)
		baseQuery += fmt.Sprintf(" WHERE section = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, section, practice_mode, question_count, created_at, updated_at` +
		baseQuery +
		fmt.Sprintf(" ORDER BY section ASC, name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, perPage, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.Section, &e.PracticeMode, &e.QuestionCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (name, section, practice_mode)
		 VALUES ($1, $2, $3)
		 RETURNING id, question_count, created_at, updated_at`,
		e.Name, e.Section, e.PracticeMode,
	).Scan(&e.ID, &e.QuestionCount, &e.CreatedAt, &e.UpdatedAt)
}

// Update persists exam field changes.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET name = $1, section = $2, practice_mode = $3, updated_at = NOW()
		 WHERE id = $4`,
		e.Name, e.Section, e.PracticeMode, e.ID)
	return err
}

// Delete removes an exam and, via FK cascade, its question assignments.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}
