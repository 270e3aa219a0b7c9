package facades

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
}

func newFakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path})
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMediaS3Facade_UploadAndDelete(t *testing.T) {
	srv, requests := newFakeS3(t)
	ctx := context.Background()

	opts := S3Options{
		Bucket:    "media",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		PublicURL: "https://cdn.test/",
		KeyPrefix: "uploads",
	}
	client, err := NewS3Client(ctx, opts)
	require.NoError(t, err)
	facade := NewMediaS3Facade(client, opts)

	local := writeTempFile(t, "avatar.png", "png-bytes")

	url, err := facade.Upload(ctx, local)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, "-avatar.png"), url)

	_, statErr := os.Stat(local)
	assert.True(t, os.IsNotExist(statErr), "temp file should be removed after upload")

	require.NoError(t, facade.Delete(ctx, url))

	reqs := requests()
	require.Len(t, reqs, 2)
	key := strings.TrimPrefix(url, "https://cdn.test/")
	assert.Equal(t, recordedRequest{Method: http.MethodPut, Path: "/media/" + key}, reqs[0])
	assert.Equal(t, recordedRequest{Method: http.MethodDelete, Path: "/media/" + key}, reqs[1])
}

func TestMediaS3Facade_UploadMissingFile(t *testing.T) {
	srv, requests := newFakeS3(t)
	ctx := context.Background()

	opts := S3Options{Bucket: "media", Region: "us-east-1", Endpoint: srv.URL, AccessKey: "k", SecretKey: "s"}
	client, err := NewS3Client(ctx, opts)
	require.NoError(t, err)

	_, err = NewMediaS3Facade(client, opts).Upload(ctx, filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Empty(t, requests())
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := NewS3Client(context.Background(), S3Options{Region: "us-east-1"})
	assert.EqualError(t, err, "storage bucket is required")
}

func TestMediaS3Facade_KeyFromURL(t *testing.T) {
	f := &MediaS3Facade{bucket: "media", keyPrefix: "uploads", publicURL: "https://cdn.test"}

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"public url", "https://cdn.test/uploads/a.png", "uploads/a.png", false},
		{"virtual hosted", "https://media.s3.us-east-1.amazonaws.com/uploads/a.png", "uploads/a.png", false},
		{"path style", "http://minio:9000/media/uploads/a%20b.png", "uploads/a b.png", false},
		{"other prefix", "https://elsewhere.test/avatars/a.png", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.keyFromURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForeignURL)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key := objectKey("uploads", "/tmp/upload-123/my avatar!.png")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, "-my_avatar_.png"))

	assert.False(t, strings.Contains(objectKey("", "/tmp/a.png"), "/"))
}
