// ABOUTME: Tests for the illustration cache
// ABOUTME: Tests data URLs, HTTP download, caching, and error handling
package illustration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amarpathshala/pathshala-go/internal/config"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(config.IllustrationConfig{CacheDir: filepath.Join(t.TempDir(), "img")})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return c
}

func TestFetchDataURL(t *testing.T) {
	c := newTestCache(t)

	// "hello" in base64
	path, err := c.Fetch(context.Background(), "data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("expected .png path, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected decoded payload, got %q", data)
	}
}

func TestFetchHTTPCaches(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	c := newTestCache(t)
	url := server.URL + "/picture.jpg?size=large"

	first, err := c.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	second, err := c.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if first != second {
		t.Errorf("expected same path, got %s and %s", first, second)
	}
	if requests != 1 {
		t.Errorf("expected 1 request, got %d", requests)
	}
	if filepath.Ext(first) != ".jpg" {
		t.Errorf("expected .jpg extension, got %s", first)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestCache(t)
	if _, err := c.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchEmpty(t *testing.T) {
	c := newTestCache(t)
	path, err := c.Fetch(context.Background(), "")
	if err != nil || path != "" {
		t.Errorf("expected empty result, got %q, %v", path, err)
	}
}

func TestFetchUnsupported(t *testing.T) {
	c := newTestCache(t)

	tests := []string{
		"ftp://example.com/a.png",
		"data:image/png,rawbytes",
	}
	for _, ref := range tests {
		if _, err := c.Fetch(context.Background(), ref); !errors.Is(err, ErrUnsupportedRef) {
			t.Errorf("Fetch(%q): expected ErrUnsupportedRef, got %v", ref, err)
		}
	}
}

func TestFetchBadDataPayload(t *testing.T) {
	c := newTestCache(t)
	if _, err := c.Fetch(context.Background(), "data:image/png;base64,!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
