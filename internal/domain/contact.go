package domain

import (
	"context"
	"time"
)

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusReplied, ContactStatusArchived:
		return true
	}
	return false
}

// ContactForm is the field bag posted by the contact section.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
	Agree   bool   `json:"agree"`
}

// Contact is a stored submission.
type Contact struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Service     string        `json:"service"`
	Message     string        `json:"message"`
	Status      ContactStatus `json:"status"`
	SentAt      time.Time     `json:"sent_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}

type ContactRepository interface {
	Create(ctx context.Context, form ContactForm, sentAt time.Time) (int64, error)
	List(ctx context.Context) ([]Contact, error)
	UpdateStatus(ctx context.Context, id int64, status ContactStatus, at time.Time) error
}
