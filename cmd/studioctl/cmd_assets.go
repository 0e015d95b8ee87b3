package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Maxito7/studio_backend/internal/assets"
	"github.com/Maxito7/studio_backend/internal/domain"
	services "github.com/Maxito7/studio_backend/internal/service"
)

var syncDryRun bool

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage site images",
}

var assetsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload every catalog image from assets.dir to the S3 bucket",
	Long: `Upload every hero and portfolio image listed in the catalog from the
local assets directory to the configured S3 bucket, keeping the site paths
as object keys under storage.prefix.`,
	RunE: runAssetsSync,
}

func init() {
	assetsSyncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "list what would be uploaded")
}

func runAssetsSync(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	ctx := cmd.Context()
	images := e.catalog.AllImages()
	if syncDryRun {
		for _, img := range images {
			fmt.Fprintln(cmd.OutOrStdout(), img.URL)
		}
		return nil
	}

	store, err := services.NewS3Service(ctx, e.cfg.Storage)
	if err != nil {
		return err
	}

	n, err := syncImages(ctx, images, assets.FileSource{Dir: e.cfg.Assets.Dir}, store, e.cfg.Assets.Concurrency, e.logger)
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d of %d images\n", n, len(images))
	return err
}

// uploader is the write side of the asset store.
type uploader interface {
	Upload(ctx context.Context, ref string, body io.Reader, contentType string) (string, error)
}

// syncImages copies images from src to dst with at most limit uploads in
// flight. The first failure cancels the rest.
func syncImages(ctx context.Context, images []domain.GalleryImage, src assets.Source, dst uploader, limit int, logger *zap.Logger) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var uploaded atomic.Int64
	for _, img := range images {
		img := img
		g.Go(func() error {
			rc, err := src.Open(ctx, img.URL)
			if err != nil {
				return fmt.Errorf("reading %s: %w", img.URL, err)
			}
			defer rc.Close()

			url, err := dst.Upload(ctx, img.URL, rc, mime.TypeByExtension(path.Ext(img.URL)))
			if err != nil {
				return err
			}
			uploaded.Add(1)
			logger.Debug("uploaded", zap.String("ref", img.URL), zap.String("url", url))
			return nil
		})
	}
	err := g.Wait()
	return int(uploaded.Load()), err
}
