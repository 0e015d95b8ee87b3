package application

import (
	"strings"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// Validator checks user-submitted forms.
type Validator struct{}

// Required records field as missing when value is blank.
func (v *Validator) Required(errs map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "is required"
	}
}

// ValidateContactForm checks the contact form. Only presence is checked,
// not the e-mail format.
func (v *Validator) ValidateContactForm(form domain.ContactForm) error {
	errs := make(map[string]string)

	v.Required(errs, "name", form.Name)
	v.Required(errs, "email", form.Email)
	v.Required(errs, "message", form.Message)
	if !form.Agree {
		errs["agree"] = "must be accepted"
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}
	return nil
}

// normalizeContactForm trims the free-text fields before storage.
func normalizeContactForm(form domain.ContactForm) domain.ContactForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Service = strings.TrimSpace(form.Service)
	form.Message = strings.TrimSpace(form.Message)
	return form
}
