package facades

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

// mediaRoutePrefix is the path under which MediaMemoryFacade serves its files.
const mediaRoutePrefix = "/media/"

type mediaEntry struct {
	Key      string
	Data     []byte
	Uploaded time.Time
}

// MediaMemoryFacade keeps uploaded media in memory and serves it under
// /media/. It backs local development (BLOB_DRIVER=memory) and tests;
// contents are lost on restart.
type MediaMemoryFacade struct {
	mu        sync.RWMutex
	files     map[string]*mediaEntry
	baseURL   string
	keyPrefix string
}

// NewMediaMemoryFacade creates an empty in-memory media store whose URLs
// start with baseURL.
func NewMediaMemoryFacade(baseURL, keyPrefix string) *MediaMemoryFacade {
	return &MediaMemoryFacade{
		files:     make(map[string]*mediaEntry),
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

// Upload copies the file at localPath into memory and returns its URL. The local file is removed.
func (f *MediaMemoryFacade) Upload(ctx context.Context, localPath string) (string, error) {
	defer removeLocal(localPath)

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}

	key := objectKey(f.keyPrefix, localPath)

	f.mu.Lock()
	f.files[key] = &mediaEntry{Key: key, Data: data, Uploaded: time.Now()}
	f.mu.Unlock()

	logger.FromContext(ctx).Infow("media stored in memory", "key", key, "size", len(data))
	return f.baseURL + mediaRoutePrefix + key, nil
}

// Delete forgets the media addressed by url.
func (f *MediaMemoryFacade) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, f.baseURL+mediaRoutePrefix)
	if !ok {
		return ErrForeignURL
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.files[key]; !exists {
		return fmt.Errorf("media not found: %s", url)
	}
	delete(f.files, key)
	return nil
}

// Has reports whether url is currently stored.
func (f *MediaMemoryFacade) Has(url string) bool {
	key, ok := strings.CutPrefix(url, f.baseURL+mediaRoutePrefix)
	if !ok {
		return false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.files[key]
	return exists
}

// ServeHTTP serves GET /media/<key>.
func (f *MediaMemoryFacade) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, mediaRoutePrefix)

	f.mu.RLock()
	entry, exists := f.files[key]
	f.mu.RUnlock()

	if !exists {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, path.Base(entry.Key), entry.Uploaded, bytes.NewReader(entry.Data))
}
