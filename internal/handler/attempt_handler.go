package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/middleware"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/progresscache"
	"github.com/prepdesk/prepdesk-backend/internal/response"
	"github.com/prepdesk/prepdesk-backend/internal/service"
	"github.com/prepdesk/prepdesk-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AttemptHandler handles the in-flight attempt endpoints: progress saves and
// final submission.
//
// SaveProgress and SubmitExam keep the flat {"message": ...} / {"error": ...}
// body shape the web client was originally built against; the newer endpoints
// use the standard envelope.
type AttemptHandler struct {
	progressService *service.ProgressService
	scoringService  *service.ScoringService
	cache           *progresscache.Cache
	log             zerolog.Logger
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(
	progressService *service.ProgressService,
	scoringService *service.ScoringService,
	cache *progresscache.Cache,
	log zerolog.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		progressService: progressService,
		scoringService:  scoringService,
		cache:           cache,
		log:             log.With().Str("component", "attempt_handler").Logger(),
	}
}

// SaveProgress godoc
// POST /api/v1/attempts/save-progress
// Upserts the caller's resumable snapshot for an exam.
func (h *AttemptHandler) SaveProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req model.SaveProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: examId, userAnswers"})
		return
	}

	_, err := h.progressService.Save(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExamID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam id"})
			return
		}
		h.log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("Progress save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress saved successfully"})
}

// SubmitExam godoc
// POST /api/v1/attempts/submit-exam
// Grades a full answer set against the server-held key and finalizes the
// attempt. A second submission for the same exam is rejected.
func (h *AttemptHandler) SubmitExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: examId, userAnswers"})
		return
	}

	summary, err := h.scoringService.Submit(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidExamID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exam id"})
		case errors.Is(err, service.ErrEmptySubmission):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Submission contains no answers"})
		case errors.Is(err, service.ErrNoQuestions):
			c.JSON(http.StatusNotFound, gin.H{"error": "Could not retrieve exam questions"})
		case errors.Is(err, service.ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{"error": "Exam has already been submitted"})
		default:
			h.log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("Submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	// The attempt is finalized; the scratch copy has no further use.
	h.cache.Clear(c.Request.Context(), claims.UserID.String(), req.ExamID)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Exam submitted successfully!",
		"resultId":       summary.ResultID,
		"score":          summary.Score,
		"exam_id":        summary.ExamID,
		"correctCount":   summary.CorrectCount,
		"totalQuestions": summary.TotalQuestions,
	})
}

// GetProgress godoc
// GET /api/v1/attempts/progress/:exam_id
// Returns the caller's saved snapshot for resuming an attempt.
func (h *AttemptHandler) GetProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	snapshot, err := h.progressService.Get(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotMissing) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": snapshot})
}

// GetState godoc
// GET /api/v1/attempts/state/:exam_id
// Returns the caller's scratch state for an exam plus the attempt start
// time, establishing the start marker on first read. The scratch state is
// best-effort; a cold cache reads as an empty attempt.
func (h *AttemptHandler) GetState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ctx := c.Request.Context()
	owner := claims.UserID.String()
	state := h.cache.ReadAll(ctx, owner, examID.String())
	startedAt := h.cache.StartTime(ctx, owner, examID.String())

	response.Success(c, http.StatusOK, gin.H{
		"state":      state,
		"started_at": startedAt.UTC(),
	})
}

// RecordAnswer godoc
// POST /api/v1/attempts/state/:exam_id/answer
// Records one selected option in the caller's scratch state.
func (h *AttemptHandler) RecordAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecordAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	owner := claims.UserID.String()
	h.cache.RecordAnswer(ctx, owner, examID.String(), req.Position, req.Option)

	response.Success(c, http.StatusOK, gin.H{
		"state": h.cache.ReadAll(ctx, owner, examID.String()),
	})
}

// ToggleMark godoc
// POST /api/v1/attempts/state/:exam_id/mark
// Flips the marked-for-review flag on one position of the caller's scratch
// state.
func (h *AttemptHandler) ToggleMark(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ToggleMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	owner := claims.UserID.String()
	h.cache.ToggleMark(ctx, owner, examID.String(), req.Position)

	response.Success(c, http.StatusOK, gin.H{
		"state": h.cache.ReadAll(ctx, owner, examID.String()),
	})
}
