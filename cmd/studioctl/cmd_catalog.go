package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
	"github.com/Maxito7/studio_backend/internal/web"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the site catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print categories, image counts and services",
	RunE:  runCatalogList,
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Copy the catalog services into an empty services table",
	RunE:  runCatalogSeed,
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tLABEL\tIMAGES")
	for _, c := range application.NewGalleryService(e.catalog).Categories() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Key, c.Label, c.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SERVICE\tNAME\tPRICE")
	for _, s := range e.catalog.Services {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Slug, s.Name, web.FormatPrice(s.Price))
	}
	return tw.Flush()
}

func runCatalogSeed(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	database, err := e.openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	svc := application.NewServicioService(repository.NewServicioRepository(database))
	n, err := svc.Seed(cmd.Context(), e.catalog.Services)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "services table already populated")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d services\n", n)
	return nil
}
