// Package response implements the platform JSON envelope and its error
// taxonomy. Every endpoint answers with {data, error?, pagination?,
// metadata}, except the save-progress and submit-exam routes, which keep
// the flat body shape their original clients were built against.
package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the envelope for all non-legacy endpoints.
type Response struct {
	Data       interface{} `json:"data"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Metadata   Metadata    `json:"metadata"`
}

// ErrorBody carries a stable machine code, a human message, and optional
// per-field validation detail.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination describes the window a list endpoint returned.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Metadata correlates a response with its request for tracing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// NewPagination derives the pagination block from list parameters.
func NewPagination(page, perPage, totalItems int) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Success writes data in the envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	write(c, statusCode, Response{Data: data})
}

// SuccessWithPagination writes a list page plus its pagination block.
func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	write(c, statusCode, Response{Data: data, Pagination: pagination})
}

// Fail writes an error envelope for the given code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	write(c, statusCode, Response{Error: errorBody(code, nil)})
}

// FailWithFields writes an error envelope with field-level validation detail.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	write(c, statusCode, Response{Error: errorBody(code, fields)})
}

// AbortFail stops the middleware chain and writes an error envelope. Used by
// auth and rate-limit middleware.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.Abort()
	write(c, statusCode, Response{Error: errorBody(code, nil)})
}

func errorBody(code ErrCode, fields map[string]string) *ErrorBody {
	return &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields}
}

func write(c *gin.Context, statusCode int, resp Response) {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		// Middleware not applied (direct handler tests); still emit an ID.
		id = uuid.NewString()
	}
	resp.Metadata = Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	c.JSON(statusCode, resp)
}
