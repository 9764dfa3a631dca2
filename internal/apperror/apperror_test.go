package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantKind   error
		wantStatus int
	}{
		{"validation", Validation("bad input"), ErrValidation, http.StatusBadRequest},
		{"auth", Auth("bad credentials"), ErrAuth, http.StatusUnauthorized},
		{"not found", NotFound("gone"), ErrNotFound, http.StatusNotFound},
		{"external", External("upstream down", errors.New("dial tcp")), ErrExternal, http.StatusBadGateway},
		{"persistence", Persistence("commit failed", errors.New("disk full")), ErrPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.wantKind) {
				t.Errorf("errors.Is(%v, kind) = false, want true", tt.err)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
		})
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("provider unreachable", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !errors.Is(err, ErrExternal) {
		t.Error("errors.Is should find the kind sentinel")
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(NotFound("missing")); got != http.StatusNotFound {
		t.Errorf("StatusOf(NotFound) = %d, want 404", got)
	}

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("listing favorites: %w", Validation("empty title"))
	if got := StatusOf(wrapped); got != http.StatusBadRequest {
		t.Errorf("StatusOf(wrapped) = %d, want 400", got)
	}

	if got := StatusOf(errors.New("stray error")); got != http.StatusInternalServerError {
		t.Errorf("StatusOf(unknown) = %d, want 500", got)
	}
}
