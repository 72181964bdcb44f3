package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.NewValidationError("row", "bad"), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"method", domain.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			writeError(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestWriteError_InternalDetailIsGeneric(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")

	writeError(c, errors.New("pq: connection refused"))

	assert.JSONEq(t, `{"detail": "Internal server error."}`, w.Body.String())
}

func TestUnauthorizedDetail(t *testing.T) {
	assert.Equal(t, "Authentication credentials were not provided.", unauthorizedDetail(domain.ErrUnauthorized))
	assert.Equal(t, "token expired", unauthorizedDetail(fmt.Errorf("%w: token expired", domain.ErrUnauthorized)))
}
