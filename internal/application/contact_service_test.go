package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/email"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
)

type recordingNotifier struct {
	to      string
	notices []email.ContactNotice
	err     error
}

func (n *recordingNotifier) SendContactNotification(_ context.Context, to string, notice email.ContactNotice) error {
	n.to = to
	n.notices = append(n.notices, notice)
	return n.err
}

type failingContactRepo struct{ domain.ContactRepository }

func (failingContactRepo) Create(context.Context, domain.ContactForm, time.Time) (int64, error) {
	return 0, errors.New("disk full")
}

func validForm() domain.ContactForm {
	return domain.ContactForm{
		Name:    "  Ana Torres ",
		Email:   "not-validated",
		Service: "wedding",
		Message: "We are getting married in June.",
		Agree:   true,
	}
}

func memoryContactRepo(t *testing.T) domain.ContactRepository {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return repository.NewContactRepository(d)
}

func TestValidateContactForm(t *testing.T) {
	var v Validator
	require.NoError(t, v.ValidateContactForm(validForm()))

	err := v.ValidateContactForm(domain.ContactForm{Name: " ", Phone: "123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":    "is required",
		"email":   "is required",
		"message": "is required",
		"agree":   "must be accepted",
	}, verr.Fields)
}

func TestContactService_Simulated(t *testing.T) {
	svc := NewContactService(config.ContactConfig{Mode: config.ContactSimulated, SimulatedDelay: time.Second}, nil, nil, "", nil, nil)
	var waited time.Duration
	svc.wait = func(_ context.Context, d time.Duration) error {
		waited = d
		return nil
	}

	tracker := &FormTracker{}
	res, err := svc.Submit(context.Background(), "10.0.0.1", tracker, validForm())
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Equal(t, MessageSent, res.Message)
	assert.Equal(t, time.Second, waited)
	assert.Equal(t, FormState{Message: MessageSent}, tracker.State())
}

func TestContactService_InFlightIsRejected(t *testing.T) {
	svc := NewContactService(config.ContactConfig{Mode: config.ContactSimulated}, nil, nil, "", nil, nil)
	tracker := &FormTracker{}

	var during FormState
	svc.wait = func(ctx context.Context, _ time.Duration) error {
		during = tracker.State()
		_, err := svc.Submit(ctx, "10.0.0.1", tracker, validForm())
		assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
		return nil
	}

	_, err := svc.Submit(context.Background(), "10.0.0.1", tracker, validForm())
	require.NoError(t, err)
	assert.True(t, during.Submitting)
	assert.False(t, tracker.State().Submitting)
}

func TestContactService_CleanupOnFailure(t *testing.T) {
	svc := NewContactService(config.ContactConfig{Mode: config.ContactLive}, failingContactRepo{}, nil, "", nil, nil)
	tracker := &FormTracker{}

	_, err := svc.Submit(context.Background(), "10.0.0.1", tracker, validForm())
	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, FormState{Message: MessageFailed}, tracker.State())

	// the visitor may resubmit
	require.NoError(t, tracker.Begin())
}

func TestContactService_CancelledSimulation(t *testing.T) {
	svc := NewContactService(config.ContactConfig{Mode: config.ContactSimulated, SimulatedDelay: time.Hour}, nil, nil, "", nil, nil)
	tracker := &FormTracker{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Submit(ctx, "", tracker, validForm())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, tracker.State().Submitting)
}

func TestContactService_ValidationDoesNotTouchTracker(t *testing.T) {
	svc := NewContactService(config.ContactConfig{}, nil, nil, "", nil, nil)
	tracker := &FormTracker{}
	tracker.Finish("previous")

	_, err := svc.Submit(context.Background(), "", tracker, domain.ContactForm{})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, FormState{Message: "previous"}, tracker.State())
}

func TestContactService_LiveStoresAndNotifies(t *testing.T) {
	repo := memoryContactRepo(t)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewContactService(config.ContactConfig{Mode: config.ContactLive}, repo, notifier, "studio@example.com", nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	// e-mail failure is not the visitor's problem
	res, err := svc.Submit(context.Background(), "10.0.0.1", nil, validForm())
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.NotZero(t, res.ID)

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "studio@example.com", notifier.to)
	assert.Equal(t, "Ana Torres", notifier.notices[0].Form.Name)
	assert.Equal(t, res.ID, notifier.notices[0].ID)

	contacts, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ana Torres", contacts[0].Name)

	require.NoError(t, svc.UpdateStatus(context.Background(), res.ID, domain.ContactStatusArchived))
	var verr *domain.ValidationError
	assert.ErrorAs(t, svc.UpdateStatus(context.Background(), res.ID, "deleted"), &verr)
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 999, domain.ContactStatusReplied), domain.ErrNotFound)
}

func TestContactService_RateLimited(t *testing.T) {
	svc := NewContactService(config.ContactConfig{}, nil, nil, "", NewRateLimiter(time.Minute, 1), nil)
	svc.wait = func(context.Context, time.Duration) error { return nil }

	left, ok := svc.Remaining("10.0.0.9")
	require.True(t, ok)
	assert.Equal(t, 1, left)

	_, err := svc.Submit(context.Background(), "10.0.0.9", nil, validForm())
	require.NoError(t, err)
	left, _ = svc.Remaining("10.0.0.9")
	assert.Zero(t, left)
	_, err = svc.Submit(context.Background(), "10.0.0.9", nil, validForm())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestContactService_RemainingWithoutLimit(t *testing.T) {
	_, ok := NewContactService(config.ContactConfig{}, nil, nil, "", nil, nil).Remaining("10.0.0.9")
	assert.False(t, ok)
	_, ok = NewContactService(config.ContactConfig{}, nil, nil, "", NewRateLimiter(time.Minute, 0), nil).Remaining("10.0.0.9")
	assert.False(t, ok)
}
