package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/middleware"
	"github.com/prepdesk/prepdesk-backend/internal/response"
	"github.com/prepdesk/prepdesk-backend/internal/service"
)

// ReviewHandler serves the read side of finished attempts.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListResults godoc
// GET /api/v1/attempts/results
// Returns the caller's results, newest first.
func (h *ReviewHandler) ListResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.reviewService.ListResults(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetReview godoc
// GET /api/v1/attempts/results/:exam_id
// Returns the per-question review of the caller's result on an exam.
func (h *ReviewHandler) GetReview(c *gin.Context) {
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

	review, err := h.reviewService.GetReview(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		if errors.Is(err, service.ErrResultMissing) {
			response.Fail(c, http.StatusNotFound, response.ErrResultMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}
