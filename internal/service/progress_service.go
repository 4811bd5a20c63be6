package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Progress errors.
var (
	ErrInvalidExamID   = errors.New("invalid exam id")
	ErrSnapshotMissing = errors.New("no progress snapshot for this exam")
)

// ProgressService persists resumable progress snapshots. Saves are
// idempotent upserts keyed by (user, exam); concurrent saves resolve to
// last-write-wins at the storage layer, and a save never computes or stores
// correctness.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	log          zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo *repository.ProgressRepository, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		log:          log.With().Str("component", "progress_service").Logger(),
	}
}

// Save upserts the snapshot for the authenticated user. The owning user
// comes from the verified credential, never from the payload. The resume
// cursor is the highest valid answered position; malformed answer keys are
// excluded from the cursor without failing the call. A nil marked list
// leaves previously saved marks untouched.
func (s *ProgressService) Save(ctx context.Context, userID uuid.UUID, req *model.SaveProgressRequest) (*model.ProgressSnapshot, error) {
	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		return nil, ErrInvalidExamID
	}

	sheet := model.ParseAnswerSheet(req.UserAnswers)

	snapshot := &model.ProgressSnapshot{
		UserID:          userID,
		ExamID:          examID,
		UserAnswers:     req.UserAnswers,
		CurrentProgress: sheet.HighestPosition(),
	}

	if err := s.progressRepo.Upsert(ctx, snapshot, req.MarkedQuestions); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	s.log.Debug().
		Str("user_id", userID.String()).
		Str("exam_id", examID.String()).
		Int("current_progress", snapshot.CurrentProgress).
		Msg("Progress saved")
	return snapshot, nil
}

// Get retrieves the authenticated user's snapshot for an exam, for resuming
// an attempt on a fresh device.
func (s *ProgressService) Get(ctx context.Context, userID, examID uuid.UUID) (*model.ProgressSnapshot, error) {
	snapshot, err := s.progressRepo.GetByUserAndExam(ctx, userID, examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return snapshot, nil
}
