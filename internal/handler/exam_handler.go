package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepdesk/prepdesk-backend/internal/model"
	"github.com/prepdesk/prepdesk-backend/internal/response"
	"github.com/prepdesk/prepdesk-backend/internal/service"
	"github.com/prepdesk/prepdesk-backend/internal/validator"
)

// ExamHandler handles exam catalog endpoints, both the student-facing reads
// and the admin CRUD.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// List godoc
// GET /api/v1/exams?section=&page=&per_page=
func (h *ExamHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	exams, total, err := h.examService.List(c.Request.Context(), c.Query("section"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if exams == nil {
		exams = []model.Exam{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams},
		response.NewPagination(page, perPage, total))
}

// GetPaper godoc
// GET /api/v1/exams/:exam_id/paper
// Returns the exam with ordered questions, correct options stripped.
func (h *ExamHandler) GetPaper(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.examService.GetPaper(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Create godoc
// POST /api/v1/admin/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam := &model.Exam{
		Name:         req.Name,
		Section:      req.Section,
		PracticeMode: req.PracticeMode,
	}
	if err := h.examService.Create(c.Request.Context(), exam); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update godoc
// PUT /api/v1/admin/exams/:exam_id
func (h *ExamHandler) Update(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Name != "" {
		exam.Name = req.Name
	}
	if req.Section != "" {
		exam.Section = req.Section
	}
	if req.PracticeMode != nil {
		exam.PracticeMode = *req.PracticeMode
	}

	if err := h.examService.Update(c.Request.Context(), exam); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete godoc
// DELETE /api/v1/admin/exams/:exam_id
func (h *ExamHandler) Delete(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.Delete(c.Request.Context(), examID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted successfully"})
}

// AssignQuestions godoc
// PUT /api/v1/admin/exams/:exam_id/questions
// Replaces the exam's question set; positions follow slice order.
func (h *ExamHandler) AssignQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AssignQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.examService.AssignQuestions(c.Request.Context(), examID, req.QuestionIDs); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "questions assigned successfully"})
}
