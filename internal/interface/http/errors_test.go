package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: title is required", application.ErrValidation), http.StatusBadRequest},
		{"credentials", application.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", application.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("donation: %w", application.ErrNotFound), http.StatusNotFound},
		{"already decided", fmt.Errorf("%w: status is accepted", application.ErrAlreadyDecided), http.StatusConflict},
		{"storage", fmt.Errorf("%w: bucket unavailable", application.ErrStorage), http.StatusBadGateway},
		{"unclassified", errors.New("pgx: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if tc.name == "unclassified" && strings.Contains(w.Body.String(), "pgx") {
				t.Fatal("internal error body must not leak the storage message")
			}
		})
	}
}
