// Command studioctl runs deploy-time and maintenance tasks for the studio
// site: syncing images to S3, seeding services, flipping the theme and
// reading the contact inbox.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/logging"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "studioctl",
	Short:         "Maintenance tasks for the studio site",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	assetsCmd.AddCommand(assetsSyncCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogSeedCmd)
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd)
	contactCmd.AddCommand(contactListCmd, contactStatusCmd)
	rootCmd.AddCommand(assetsCmd, catalogCmd, themeCmd, contactCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env is what most subcommands need: config, logger and the catalog.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, catalog: cat}, nil
}

func (e *env) openDB() (*db.DB, error) {
	return db.Open(e.cfg.Database.Driver, e.cfg.Database.DSN)
}
