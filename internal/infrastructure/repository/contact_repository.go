package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
)

type contactRepository struct {
	db *db.DB
}

func NewContactRepository(db *db.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, form domain.ContactForm, sentAt time.Time) (int64, error) {
	query := r.db.Rebind(`
	INSERT INTO contact_form (name, email, phone, service, message, status, sent_date)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING form_id
`)
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		form.Name, form.Email, form.Phone, form.Service, form.Message,
		string(domain.ContactStatusNew), sentAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting contact form: %w", err)
	}
	return id, nil
}

func (r *contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT form_id, name, email, phone, service, message, status, sent_date, response_date
		FROM contact_form ORDER BY sent_date DESC, form_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying contact forms: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var (
			c         domain.Contact
			status    string
			responded sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Service,
			&c.Message, &status, &c.SentAt, &responded,
		); err != nil {
			return nil, fmt.Errorf("scanning contact form: %w", err)
		}
		c.Status = domain.ContactStatus(status)
		if responded.Valid {
			at := responded.Time
			c.RespondedAt = &at
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact forms: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus, at time.Time) error {
	var respondedAt any
	if status != domain.ContactStatusNew {
		respondedAt = at.UTC()
	}
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE contact_form SET status = ?, response_date = ? WHERE form_id = ?`),
		string(status), respondedAt, id)
	if err != nil {
		return fmt.Errorf("updating contact form %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("contact form %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
