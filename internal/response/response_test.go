package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, register func(*gin.Engine), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		totalItems     int
		wantTotalPages int
	}{
		{"exact fit", 1, 10, 30, 3},
		{"partial last page", 2, 10, 31, 4},
		{"empty list", 1, 20, 0, 0},
		{"single item", 1, 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.totalItems)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("total_pages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Page != tt.page || p.PerPage != tt.perPage || p.TotalItems != tt.totalItems {
				t.Errorf("pagination = %+v, inputs not carried through", p)
			}
		})
	}
}

func TestSuccessEnvelopeCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-123")

	w := serve(t, func(r *gin.Engine) {
		r.GET("/ping", func(c *gin.Context) {
			Success(c, http.StatusOK, gin.H{"pong": true})
		})
	}, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("echoed request ID = %q, want trace-123", got)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Metadata.RequestID != "trace-123" {
		t.Errorf("metadata request_id = %q, want trace-123", body.Metadata.RequestID)
	}
	if body.Error != nil {
		t.Errorf("error = %+v, want nil", body.Error)
	}
}

func TestFailEnvelopeCarriesCodeAndMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)

	w := serve(t, func(r *gin.Engine) {
		r.GET("/missing", func(c *gin.Context) {
			Fail(c, http.StatusNotFound, ErrNotFound)
		})
	}, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error == nil {
		t.Fatal("error body missing")
	}
	if body.Error.Code != ErrNotFound {
		t.Errorf("error code = %q, want %q", body.Error.Code, ErrNotFound)
	}
	if body.Error.Message != GetMessage(ErrNotFound) {
		t.Errorf("error message = %q, want %q", body.Error.Message, GetMessage(ErrNotFound))
	}
	if body.Metadata.RequestID == "" {
		t.Error("metadata request_id should be generated when absent")
	}
}
