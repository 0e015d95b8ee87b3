// Package assets reads site images from their configured origin and keeps
// the resized thumbnails produced while the page preloads.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/domain"
	services "github.com/Maxito7/studio_backend/internal/service"
)

// Source opens an image by its site path, e.g. /images/event/event-01.jpg.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// FileSource serves images from a local directory mirroring the site paths.
type FileSource struct {
	Dir string
}

func (s FileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := filepath.FromSlash(strings.TrimPrefix(ref, "/"))
	if rel == "" || strings.HasPrefix(filepath.Clean(rel), "..") {
		return nil, fmt.Errorf("image %q: invalid path", ref)
	}
	f, err := os.Open(filepath.Join(s.Dir, rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %s: %w", ref, domain.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

// HTTPSource fetches images relative to a base URL, typically a CDN.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	url := s.BaseURL + "/" + strings.TrimPrefix(ref, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("image %s: %w", ref, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// NewSource builds the image source selected by cfg.Source.
func NewSource(ctx context.Context, cfg config.AssetsConfig, storage config.StorageConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceFile, "":
		return FileSource{Dir: cfg.Dir}, nil
	case config.SourceHTTP:
		if cfg.BaseURL == "" {
			return nil, errors.New("assets.base_url is required for the http source")
		}
		return NewHTTPSource(cfg.BaseURL, cfg.LoadTimeout), nil
	case config.SourceS3:
		s3, err := services.NewS3Service(ctx, storage)
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown image source %q", cfg.Source)
	}
}
