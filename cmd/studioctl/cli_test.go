package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/assets"
	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.yml")
	body := fmt.Sprintf("database:\n  driver: sqlite\n  dsn: %s\nassets:\n  dir: %s\n",
		filepath.Join(dir, "studio.db"), filepath.Join(dir, "public"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		syncDryRun = false
		verbose = false
		contactStatusFilter = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogList(t *testing.T) {
	out, err := execute(t, "catalog", "list", "--config", writeConfig(t))
	require.NoError(t, err)

	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "all")
	assert.Contains(t, out, "wedding")
	assert.Contains(t, out, "$2,800")
}

func TestCatalogSeedIsIdempotent(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "catalog", "seed", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 5 services")

	out, err = execute(t, "catalog", "seed", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "already populated")
}

func TestThemeToggle(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "theme", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = execute(t, "theme", "toggle", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = execute(t, "theme", "show", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
}

func TestContactInbox(t *testing.T) {
	cfg := writeConfig(t)
	d, err := db.Open("sqlite", filepath.Join(filepath.Dir(cfg), "studio.db"))
	require.NoError(t, err)
	repo := repository.NewContactRepository(d)
	sent := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err = repo.Create(context.Background(), domain.ContactForm{
		Name: "Ana", Email: "ana@example.com", Service: "wedding", Message: "June wedding\nin Portland", Agree: true,
	}, sent)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), domain.ContactForm{
		Name: "Ben", Email: "ben@example.com", Message: "Headshots", Agree: true,
	}, sent.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, d.Close())

	out, err := execute(t, "contact", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "June wedding in Portland")
	assert.Less(t, strings.Index(out, "Ben"), strings.Index(out, "Ana"))

	out, err = execute(t, "contact", "status", "1", "replied", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "contact 1 marked replied\n", out)

	out, err = execute(t, "contact", "list", "--status", "new", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Ben")
	assert.NotContains(t, out, "Ana")

	_, err = execute(t, "contact", "status", "1", "spam", "--config", cfg)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	_, err = execute(t, "contact", "status", "99", "archived", "--config", cfg)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = execute(t, "contact", "status", "abc", "archived", "--config", cfg)
	assert.Error(t, err)
}

func TestAssetsSyncDryRun(t *testing.T) {
	out, err := execute(t, "assets", "sync", "--dry-run", "--config", writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "/images/hero/hero-01.jpg")
	assert.Contains(t, out, "/images/portrait/")
}

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	fail    string
}

func (m *memoryUploader) Upload(_ context.Context, ref string, body io.Reader, contentType string) (string, error) {
	if ref == m.fail {
		return "", errors.New("access denied")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[ref] = string(data)
	m.types[ref] = contentType
	return "https://bucket/" + strings.TrimPrefix(ref, "/"), nil
}

func TestSyncImages(t *testing.T) {
	dir := t.TempDir()
	images := []domain.GalleryImage{
		{ID: "a", URL: "/images/a.jpg"},
		{ID: "b", URL: "/images/b.png"},
		{ID: "c", URL: "/images/c.jpg"},
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	for _, img := range images {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.FromSlash(img.URL)), []byte(img.ID), 0o644))
	}

	dst := &memoryUploader{objects: map[string]string{}, types: map[string]string{}}
	n, err := syncImages(context.Background(), images, assets.FileSource{Dir: dir}, dst, 2, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "b", dst.objects["/images/b.png"])
	assert.Equal(t, "image/png", dst.types["/images/b.png"])

	missing := append(images, domain.GalleryImage{ID: "d", URL: "/images/d.jpg"})
	_, err = syncImages(context.Background(), missing, assets.FileSource{Dir: dir}, dst, 1, zap.NewNop())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dst.fail = "/images/a.jpg"
	_, err = syncImages(context.Background(), images, assets.FileSource{Dir: dir}, dst, 0, zap.NewNop())
	assert.ErrorContains(t, err, "access denied")
}
