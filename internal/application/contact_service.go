package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/email"
	"github.com/Maxito7/studio_backend/internal/logging"
)

const (
	MessageSent   = "Thank you! Your message has been sent. We'll get back to you soon."
	MessageFailed = "Something went wrong. Please try again."
)

// ContactNotifier mails the studio about a new submission.
type ContactNotifier interface {
	SendContactNotification(ctx context.Context, to string, notice email.ContactNotice) error
}

// FormState is what the contact section renders: whether the submit
// control is disabled and the last outcome message.
type FormState struct {
	Submitting bool   `json:"submitting"`
	Message    string `json:"message,omitempty"`
}

// FormTracker holds the in-flight flag of one visitor's contact form.
type FormTracker struct {
	mu         sync.Mutex
	submitting bool
	message    string
}

// Begin marks a submission as in flight. It fails while another one is.
func (t *FormTracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitting {
		return domain.ErrSubmissionInFlight
	}
	t.submitting = true
	t.message = ""
	return nil
}

// Finish clears the in-flight flag and records the outcome message.
func (t *FormTracker) Finish(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submitting = false
	t.message = message
}

func (t *FormTracker) State() FormState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return FormState{Submitting: t.submitting, Message: t.message}
}

// ContactResult reports an accepted submission.
type ContactResult struct {
	ID        int64  `json:"id,omitempty"`
	Simulated bool   `json:"simulated"`
	Message   string `json:"message"`
}

type ContactService struct {
	repo      domain.ContactRepository
	notifier  ContactNotifier
	notifyTo  string
	mode      config.ContactMode
	delay     time.Duration
	limiter   *RateLimiter
	validator Validator
	logger    *zap.Logger
	now       func() time.Time
	wait      func(ctx context.Context, d time.Duration) error
}

// NewContactService builds the contact workflow. repo and notifier are only
// used in live mode; notifier may be nil when SMTP is not configured.
func NewContactService(
	cfg config.ContactConfig,
	repo domain.ContactRepository,
	notifier ContactNotifier,
	notifyTo string,
	limiter *RateLimiter,
	logger *zap.Logger,
) *ContactService {
	logger = logging.OrNop(logger)
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		notifyTo: notifyTo,
		mode:     cfg.Mode,
		delay:    cfg.SimulatedDelay,
		limiter:  limiter,
		logger:   logger,
		now:      time.Now,
		wait:     sleepContext,
	}
}

// Submit validates and delivers form. tracker may be nil for stateless
// clients; when given, it is marked in flight for the duration and always
// released afterwards with the outcome message.
func (s *ContactService) Submit(ctx context.Context, clientIP string, tracker *FormTracker, form domain.ContactForm) (res ContactResult, err error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(clientIP); err != nil {
			return ContactResult{}, err
		}
	}
	if err := s.validator.ValidateContactForm(form); err != nil {
		return ContactResult{}, err
	}
	form = normalizeContactForm(form)

	if tracker != nil {
		if err := tracker.Begin(); err != nil {
			return ContactResult{}, err
		}
		defer func() {
			if err != nil {
				tracker.Finish(MessageFailed)
				return
			}
			tracker.Finish(res.Message)
		}()
	}

	if s.mode != config.ContactLive {
		if err := s.wait(ctx, s.delay); err != nil {
			return ContactResult{}, err
		}
		s.logger.Info("contact form accepted (simulated)", zap.String("service", form.Service))
		return ContactResult{Simulated: true, Message: MessageSent}, nil
	}

	sentAt := s.now()
	id, err := s.repo.Create(ctx, form, sentAt)
	if err != nil {
		s.logger.Error("storing contact form failed", zap.Error(err))
		return ContactResult{}, fmt.Errorf("storing contact form: %w", err)
	}
	s.logger.Info("contact form stored", zap.Int64("id", id), zap.String("service", form.Service))

	if s.notifier != nil && s.notifyTo != "" {
		notice := email.ContactNotice{ID: id, Form: form, SentAt: sentAt}
		if err := s.notifier.SendContactNotification(ctx, s.notifyTo, notice); err != nil {
			s.logger.Warn("contact notification failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return ContactResult{ID: id, Message: MessageSent}, nil
}

// Remaining reports how many submissions clientIP has left in its window.
// ok is false when submissions are not rate limited.
func (s *ContactService) Remaining(clientIP string) (left int, ok bool) {
	if s.limiter == nil || s.limiter.limit <= 0 {
		return 0, false
	}
	return s.limiter.GetRemaining(clientIP), true
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	if s.repo == nil {
		return []domain.Contact{}, nil
	}
	return s.repo.List(ctx)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error {
	if !status.Valid() {
		return &domain.ValidationError{Fields: map[string]string{"status": "must be new, replied or archived"}}
	}
	if s.repo == nil {
		return fmt.Errorf("contact %d: %w", id, domain.ErrNotFound)
	}
	return s.repo.UpdateStatus(ctx, id, status, s.now())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
