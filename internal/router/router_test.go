package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prepdesk/prepdesk-backend/internal/config"
	"github.com/prepdesk/prepdesk-backend/internal/handler"
	"github.com/prepdesk/prepdesk-backend/internal/service"
	"github.com/rs/zerolog"
)

// newTestRouter builds the full route table with inert handlers. Preflight
// requests never reach a handler, so nil services are fine here.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{GinMode: gin.TestMode}
	authService := service.NewAuthService(cfg, nil)
	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(nil),
		Exam:     handler.NewExamHandler(nil),
		Question: handler.NewQuestionHandler(nil),
		Attempt:  handler.NewAttemptHandler(nil, nil, nil, zerolog.Nop()),
		Review:   handler.NewReviewHandler(nil),
	}
	return SetupRouter(authService, handlers, cfg)
}

func preflight(t *testing.T, r *gin.Engine, path, method string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "http://localhost:8000")
	req.Header.Set("Access-Control-Request-Method", method)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLegacyAttemptPreflight(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/attempts/save-progress",
		"/api/v1/attempts/submit-exam",
	} {
		w := preflight(t, r, path, http.MethodPost)
		if w.Code != http.StatusNoContent {
			t.Fatalf("%s preflight status = %d, want %d", path, w.Code, http.StatusNoContent)
		}

		if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
			t.Errorf("%s Allow-Origin = %q, want *", path, origin)
		}

		methods := strings.ToUpper(w.Header().Get("Access-Control-Allow-Methods"))
		if !strings.Contains(methods, "POST") || !strings.Contains(methods, "OPTIONS") {
			t.Errorf("%s Allow-Methods = %q, want POST and OPTIONS", path, methods)
		}
		for _, m := range []string{"GET", "PUT", "PATCH", "DELETE"} {
			if strings.Contains(methods, m) {
				t.Errorf("%s Allow-Methods = %q, must not advertise %s", path, methods, m)
			}
		}

		headers := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
		for _, h := range []string{"authorization", "x-client-info", "apikey", "content-type"} {
			if !strings.Contains(headers, h) {
				t.Errorf("%s Allow-Headers = %q, missing %s", path, headers, h)
			}
		}
	}
}

func TestStandardPreflightKeepsFullMethodSet(t *testing.T) {
	r := newTestRouter(t)

	w := preflight(t, r, "/api/v1/admin/exams/some-id", http.MethodPut)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	methods := strings.ToUpper(w.Header().Get("Access-Control-Allow-Methods"))
	for _, m := range []string{"GET", "POST", "PUT", "DELETE"} {
		if !strings.Contains(methods, m) {
			t.Errorf("Allow-Methods = %q, missing %s", methods, m)
		}
	}
}
