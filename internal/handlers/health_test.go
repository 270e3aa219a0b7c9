package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("ok", func(t *testing.T) {
		pinger := NewMockPinger(ctrl)
		pinger.EXPECT().PingContext(gomock.Any()).Return(nil)

		rr := httptest.NewRecorder()
		NewHealthHandler(pinger)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)
		assert.Equal(t, "OK", env.Message)
	})

	t.Run("database down", func(t *testing.T) {
		pinger := NewMockPinger(ctrl)
		pinger.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))

		rr := httptest.NewRecorder()
		NewHealthHandler(pinger)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
	})
}
