package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantHeader map[string]string
	}{
		{
			name:       "validation error",
			err:        NewValidationError("key %q is malformed", "a//b"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "malformed",
		},
		{
			name:       "unsatisfiable range carries the object size",
			err:        &RangeNotSatisfiableError{TotalSize: 1000},
			wantStatus: http.StatusRequestedRangeNotSatisfiable,
			wantBody:   `"size":1000`,
			wantHeader: map[string]string{"Content-Range": "bytes */1000"},
		},
		{
			name:       "expired token",
			err:        fmt.Errorf("verify: %w", ErrExpired),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forbidden",
			err:        ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not found echoes the key",
			err:        &NotFoundError{Key: "movie.mp4"},
			wantStatus: http.StatusNotFound,
			wantBody:   "movie.mp4",
		},
		{
			name:       "upstream failure",
			err:        &UpstreamError{Status: 503, Body: "down"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown errors stay generic",
			err:        errors.New("redis: connection pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			for k, v := range tt.wantHeader {
				assert.Equal(t, v, w.Header().Get(k))
			}
		})
	}
}
