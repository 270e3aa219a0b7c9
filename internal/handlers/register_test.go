package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-user-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

var registerFields = map[string]string{
	"username": "alice",
	"email":    "alice1@test.com",
	"password": "secret1",
	"fullName": "Alice A",
}

func TestRegisterHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockRegisterer(ctrl)
	uploads := UploadOptions{TmpDir: t.TempDir(), MaxMemory: 1 << 20}
	id := uuid.New()

	var spooled []string
	mockSvc.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.RegisterRequest) (*models.User, error) {
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "alice1@test.com", req.Email)
			assert.Equal(t, "secret1", req.Password)
			assert.Equal(t, "Alice A", req.FullName)

			require.NotNil(t, req.Avatar)
			require.NotNil(t, req.CoverImage)
			assert.Equal(t, "me.png", req.Avatar.Filename)
			assert.True(t, strings.HasPrefix(req.Avatar.Path, uploads.TmpDir))
			assert.True(t, strings.HasSuffix(req.Avatar.Path, ".png"))

			data, err := os.ReadFile(req.Avatar.Path)
			require.NoError(t, err)
			assert.Equal(t, "avatar-bytes", string(data))
			assert.Equal(t, int64(len("avatar-bytes")), req.Avatar.Size)

			spooled = append(spooled, req.Avatar.Path, req.CoverImage.Path)
			return &models.User{ID: id, Username: "alice", Email: "alice1@test.com"}, nil
		})

	req := newMultipartRequest(t, "/register", registerFields,
		formFile{field: "avatar", filename: "me.png", content: "avatar-bytes"},
		formFile{field: "coverImage", filename: "cover.jpg", content: "cover-bytes"},
	)
	rr := httptest.NewRecorder()
	NewRegisterHandler(mockSvc, uploads)(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	assert.Equal(t, "Registered Successfully", env.Message)
	require.NotNil(t, env.User)
	assert.Equal(t, "alice", env.User.Username)
	assert.NotContains(t, rr.Body.String(), "password")

	for _, path := range spooled {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "spooled file %s should be removed", path)
	}
}

func TestRegisterHandler_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name         string
		svcErr       error
		expectedCode int
		expectedMsg  string
	}{
		{"avatar required", apperrors.Validation("Avatar is Required"), http.StatusBadRequest, "Avatar is Required"},
		{"duplicate", apperrors.Conflict("Already Registered, Please Login"), http.StatusConflict, "Already Registered, Please Login"},
		{"upload failure", apperrors.Upstream("Error while uploading avatar", errors.New("s3 down")), http.StatusInternalServerError, "Error while uploading avatar"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			mockSvc.EXPECT().Register(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req models.RegisterRequest) (*models.User, error) {
					assert.Nil(t, req.Avatar)
					return nil, tt.svcErr
				})

			req := newMultipartRequest(t, "/register", registerFields)
			rr := httptest.NewRecorder()
			NewRegisterHandler(mockSvc, UploadOptions{TmpDir: t.TempDir()})(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.False(t, env.Success)
			assert.Equal(t, tt.expectedMsg, env.Message)
			assert.Nil(t, env.User)
		})
	}
}

func TestRegisterHandler_NotMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockRegisterer(ctrl)
	mockSvc.EXPECT().Register(gomock.Any(), models.RegisterRequest{}).
		Return(nil, apperrors.Validation("All Fields Are Required"))

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	NewRegisterHandler(mockSvc, UploadOptions{})(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "All Fields Are Required", decodeEnvelope(t, rr).Message)
}

func TestRegisterHandler_MalformedMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockRegisterer(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("garbage"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rr := httptest.NewRecorder()
	NewRegisterHandler(mockSvc, UploadOptions{})(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", decodeEnvelope(t, rr).Message)
}
