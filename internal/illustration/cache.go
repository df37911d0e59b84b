// ABOUTME: Local cache for lesson illustrations
// ABOUTME: Stores data URL and http images on disk keyed by content reference
package illustration

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/amarpathshala/pathshala-go/internal/config"
)

// ErrUnsupportedRef is returned for image references that are neither data
// URLs nor http(s) URLs
var ErrUnsupportedRef = errors.New("unsupported image reference")

// Cache turns lesson image references into local files
type Cache struct {
	dir    string
	client *http.Client
}

// NewCache creates the cache directory if needed
func NewCache(cfg config.IllustrationConfig) (*Cache, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{
		dir:    cfg.CacheDir,
		client: &http.Client{},
	}, nil
}

// Fetch returns a local path for ref. An empty ref yields an empty path.
func (c *Cache) Fetch(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}

	hash := sha256.Sum256([]byte(ref))
	name := fmt.Sprintf("%x%s", hash[:8], extension(ref))
	cachePath := filepath.Join(c.dir, name)

	if _, err := os.Stat(cachePath); err == nil {
		log.Printf("Illustration cache hit: %s", cachePath)
		return cachePath, nil
	}

	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err := decodeDataURL(ref)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			return "", fmt.Errorf("failed to save illustration: %w", err)
		}
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if err := c.download(ctx, ref, cachePath); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %.32s", ErrUnsupportedRef, ref)
	}

	log.Printf("Illustration saved: %s", cachePath)
	return cachePath, nil
}

func (c *Cache) download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	log.Printf("Downloading illustration: %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download illustration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("illustration download failed: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to save illustration: %w", err)
	}
	return nil
}

// Clear removes every cached illustration
func (c *Cache) Clear() error {
	return os.RemoveAll(c.dir)
}

// decodeDataURL handles the base64 form only, e.g. data:image/png;base64,...
func decodeDataURL(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: data URL is not base64", ErrUnsupportedRef)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data URL payload: %w", err)
	}
	return data, nil
}

// extension picks a file extension from the data URL media type or the URL path
func extension(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ";")
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			for _, e := range exts {
				if e == ".png" || e == ".jpg" || e == ".jpeg" || e == ".gif" || e == ".webp" {
					return e
				}
			}
			return exts[0]
		}
		return ".png"
	}

	ref, _, _ = strings.Cut(ref, "?")
	ext := path.Ext(ref)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return ext
}
