package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/response"
	"github.com/prepdesk/prepdesk-backend/internal/service"
	"github.com/prepdesk/prepdesk-backend/internal/validator"
)

// QuestionHandler handles admin question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/admin/questions?page=&per_page=
func (h *QuestionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	questions, total, err := h.questionService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions},
		response.NewPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/admin/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Create godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := &model.Question{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Explanation:   req.Explanation,
		Tags:          req.Tags,
	}
	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Update godoc
// PUT /api/v1/admin/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.QuestionText != "" {
		question.QuestionText = req.QuestionText
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.CorrectOption != "" {
		question.CorrectOption = req.CorrectOption
	}
	if req.Explanation != nil {
		question.Explanation = req.Explanation
	}
	if req.Tags != nil {
		question.Tags = req.Tags
	}

	if err := h.questionService.Update(c.Request.Context(), question); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/admin/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}
