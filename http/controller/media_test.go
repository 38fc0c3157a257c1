package controller

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/entity"
	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/repository"
)

type memBucket struct {
	objects map[string][]byte
	types   map[string]string
}

func (m *memBucket) ListPage(_ context.Context, cursor string, limit int) ([]entity.StoredObject, bool, string, error) {
	var keys []string
	for k := range m.objects {
		if k > cursor {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	truncated := len(keys) > limit
	if truncated {
		keys = keys[:limit]
	}
	out := make([]entity.StoredObject, 0, len(keys))
	for _, k := range keys {
		out = append(out, entity.StoredObject{Key: k, SizeBytes: int64(len(m.objects[k])), UploadedAt: time.Now()})
	}
	next := ""
	if truncated {
		next = keys[len(keys)-1]
	}
	return out, truncated, next, nil
}

func (m *memBucket) StatObject(_ context.Context, key string) (entity.StoredObject, error) {
	data, ok := m.objects[key]
	if !ok {
		return entity.StoredObject{}, infra.ErrObjectMissing
	}
	return entity.StoredObject{Key: key, SizeBytes: int64(len(data)), ContentType: m.types[key]}, nil
}

func (m *memBucket) GetObjectRange(_ context.Context, key string, start, end int64) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, infra.ErrObjectMissing
	}
	if end < 0 || end >= int64(len(data)) {
		end = int64(len(data)) - 1
	}
	return io.NopCloser(bytes.NewReader(data[start : end+1])), nil
}

func (m *memBucket) PutObject(_ context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memBucket) RemoveObject(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func newMediaRouter(t *testing.T, bucket *memBucket) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &repository.Repository{
		ObjectRepo: repository.NewObjectRepository(bucket, 1<<30, nil),
	}
	ctrl := NewController(
		&config.Config{EnvConfig: &config.EnvConfig{}},
		&infra.Infra{Logger: infra.NewStdoutLogger()},
		repo,
		nil,
	)

	router := gin.New()
	router.GET("/media/*key", ctrl.ServeMedia)
	return router
}

func seededBucket(size int) *memBucket {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return &memBucket{
		objects: map[string][]byte{"movie.mp4": data},
		types:   map[string]string{"movie.mp4": "application/octet-stream"},
	}
}

func TestServeMedia_FullObject(t *testing.T) {
	router := newMediaRouter(t, seededBucket(1000))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/movie.mp4", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "immutable")
	assert.Len(t, w.Body.Bytes(), 1000)
}

func TestServeMedia_RangeRequests(t *testing.T) {
	tests := []struct {
		name         string
		rangeHeader  string
		wantStatus   int
		wantRange    string
		wantLen      int
		wantBodyFrom int
	}{
		{
			name:        "bounded range",
			rangeHeader: "bytes=0-99",
			wantStatus:  http.StatusPartialContent,
			wantRange:   "bytes 0-99/1000",
			wantLen:     100,
		},
		{
			name:         "open-ended range",
			rangeHeader:  "bytes=900-",
			wantStatus:   http.StatusPartialContent,
			wantRange:    "bytes 900-999/1000",
			wantLen:      100,
			wantBodyFrom: 900,
		},
		{
			name:         "end clamped to object size",
			rangeHeader:  "bytes=950-5000",
			wantStatus:   http.StatusPartialContent,
			wantRange:    "bytes 950-999/1000",
			wantLen:      50,
			wantBodyFrom: 950,
		},
		{
			name:        "unparseable end treated as omitted",
			rangeHeader: "bytes=0-abc",
			wantStatus:  http.StatusPartialContent,
			wantRange:   "bytes 0-999/1000",
			wantLen:     1000,
		},
		{
			name:        "start beyond size is unsatisfiable",
			rangeHeader: "bytes=2000-",
			wantStatus:  http.StatusRequestedRangeNotSatisfiable,
			wantRange:   "bytes */1000",
		},
		{
			name:        "inverted range is unsatisfiable",
			rangeHeader: "bytes=500-100",
			wantStatus:  http.StatusRequestedRangeNotSatisfiable,
			wantRange:   "bytes */1000",
		},
		{
			name:        "malformed unit is unsatisfiable",
			rangeHeader: "items=0-99",
			wantStatus:  http.StatusRequestedRangeNotSatisfiable,
			wantRange:   "bytes */1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMediaRouter(t, seededBucket(1000))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/media/movie.mp4", nil)
			req.Header.Set("Range", tt.rangeHeader)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRange, w.Header().Get("Content-Range"))
			if tt.wantStatus == http.StatusPartialContent {
				body := w.Body.Bytes()
				require.Len(t, body, tt.wantLen)
				assert.Equal(t, byte(tt.wantBodyFrom%251), body[0])
			}
		})
	}
}

func TestServeMedia_MissingKey(t *testing.T) {
	router := newMediaRouter(t, seededBucket(10))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/nope.mp4", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "nope.mp4")
}

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		key    string
		stored string
		want   string
	}{
		{"clip.mp4", "application/octet-stream", "video/mp4"},
		{"clip.MKV", "", "video/x-matroska"},
		{"notes.txt", "text/plain", "text/plain"},
		{"mystery", "", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveContentType(tt.key, tt.stored), tt.key)
	}
}
