package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cause := errors.New("db down")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("All Fields Are Required"), http.StatusBadRequest},
		{"conflict", Conflict("Username already taken"), http.StatusConflict},
		{"auth", Auth("Invalid Credentials", nil), http.StatusUnauthorized},
		{"not found", NotFound("No Such User Found, Please Register"), http.StatusNotFound},
		{"upstream", Upstream("User registration failed", cause), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handler: %w", Conflict("x")), http.StatusConflict},
		{"plain", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("s3 timeout")
	err := Upstream("Error while uploading avatar", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "UPSTREAM: Error while uploading avatar: s3 timeout", err.Error())
	assert.Equal(t, "VALIDATION: bad", Validation("bad").Error())
}

func TestAs(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)

	appErr, ok := As(fmt.Errorf("wrap: %w", NotFound("missing")))
	assert.True(t, ok)
	assert.Equal(t, "missing", appErr.Message)
}
