package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeImage(t *testing.T, dir, ref string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(ref))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "images/hero/hero-01.png", []byte("data"))
	src := FileSource{Dir: dir}

	rc, err := src.Open(context.Background(), "/images/hero/hero-01.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = src.Open(context.Background(), "/images/hero/missing.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = src.Open(context.Background(), "/../secret")
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	payload := pngBytes(t, 4, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cdn/images/a.png":
			w.Write(payload)
		case "/cdn/images/broken.png":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/cdn/", time.Second)

	rc, err := src.Open(context.Background(), "/images/a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = src.Open(context.Background(), "/images/none.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = src.Open(context.Background(), "/images/broken.png")
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestThumbnailer_ResizesWideImages(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "images/wide.png", pngBytes(t, 200, 100))
	writeImage(t, dir, "images/small.png", pngBytes(t, 40, 30))

	thumbs := NewThumbnailer(FileSource{Dir: dir}, 50, nil)
	require.NoError(t, thumbs.Load(context.Background(), "/images/wide.png"))
	require.NoError(t, thumbs.Load(context.Background(), "/images/small.png"))
	assert.Equal(t, 2, thumbs.Len())

	data, ok := thumbs.Thumbnail("/images/wide.png")
	require.True(t, ok)
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	data, ok = thumbs.Thumbnail("/images/small.png")
	require.True(t, ok)
	img, err = imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestThumbnailer_Failures(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "images/garbage.jpg", []byte("not an image"))
	thumbs := NewThumbnailer(FileSource{Dir: dir}, 0, nil)

	assert.ErrorIs(t, thumbs.Load(context.Background(), "/images/missing.jpg"), domain.ErrNotFound)
	assert.ErrorContains(t, thumbs.Load(context.Background(), "/images/garbage.jpg"), "decoding")

	_, ok := thumbs.Thumbnail("/images/garbage.jpg")
	assert.False(t, ok)
	assert.Zero(t, thumbs.Len())
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewSource(ctx, config.AssetsConfig{Dir: "public"}, config.StorageConfig{})
	require.NoError(t, err)
	assert.Equal(t, FileSource{Dir: "public"}, src)

	src, err = NewSource(ctx, config.AssetsConfig{Source: config.SourceHTTP, BaseURL: "https://cdn.example.com/"}, config.StorageConfig{})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", src.(*HTTPSource).BaseURL)

	_, err = NewSource(ctx, config.AssetsConfig{Source: config.SourceHTTP}, config.StorageConfig{})
	assert.Error(t, err)
	_, err = NewSource(ctx, config.AssetsConfig{Source: config.SourceS3}, config.StorageConfig{})
	assert.Error(t, err)
	_, err = NewSource(ctx, config.AssetsConfig{Source: "ftp"}, config.StorageConfig{})
	assert.Error(t, err)
}
