package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
)

var contactStatusFilter string

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Read and triage contact form submissions",
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print contact submissions, newest first",
	RunE:  runContactList,
}

var contactStatusCmd = &cobra.Command{
	Use:   "status <id> <new|replied|archived>",
	Short: "Set the status of a submission",
	Args:  cobra.ExactArgs(2),
	RunE:  runContactStatus,
}

func init() {
	contactListCmd.Flags().StringVar(&contactStatusFilter, "status", "", "only show submissions with this status")
}

func withContacts(cmd *cobra.Command, fn func(*application.ContactService) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	database, err := e.openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	svc := application.NewContactService(e.cfg.Contact, repository.NewContactRepository(database), nil, "", nil, e.logger)
	return fn(svc)
}

func runContactList(cmd *cobra.Command, _ []string) error {
	filter := domain.ContactStatus(contactStatusFilter)
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("invalid status %q: must be new, replied or archived", filter)
	}
	return withContacts(cmd, func(svc *application.ContactService) error {
		contacts, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSENT\tSTATUS\tNAME\tEMAIL\tSERVICE\tMESSAGE")
		for _, c := range contacts {
			if filter != "" && c.Status != filter {
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.SentAt.Local().Format(time.DateTime), c.Status, c.Name, c.Email, c.Service, excerpt(c.Message, 40))
		}
		return tw.Flush()
	})
}

func runContactStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}
	status := domain.ContactStatus(args[1])
	return withContacts(cmd, func(svc *application.ContactService) error {
		if err := svc.UpdateStatus(cmd.Context(), id, status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "contact %d marked %s\n", id, status)
		return nil
	})
}

func excerpt(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\t' {
			r[i] = ' '
		}
	}
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
