package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestContactRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(openTestDB(t))

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id1, err := repo.Create(ctx, domain.ContactForm{
		Name: "Ana", Email: "ana@example.com", Message: "Wedding in May", Service: "wedding", Agree: true,
	}, first)
	require.NoError(t, err)
	id2, err := repo.Create(ctx, domain.ContactForm{
		Name: "Luis", Email: "luis@example.com", Phone: "555-0100", Message: "Portraits", Agree: true,
	}, first.Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	contacts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	// newest first
	assert.Equal(t, id2, contacts[0].ID)
	assert.Equal(t, "Luis", contacts[0].Name)
	assert.Equal(t, "555-0100", contacts[0].Phone)
	assert.Equal(t, domain.ContactStatusNew, contacts[0].Status)
	assert.Nil(t, contacts[0].RespondedAt)
	assert.True(t, contacts[1].SentAt.Equal(first))
}

func TestContactRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(openTestDB(t))

	id, err := repo.Create(ctx, domain.ContactForm{Name: "Ana", Email: "a@b.c", Message: "hi", Agree: true}, time.Now())
	require.NoError(t, err)

	at := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, id, domain.ContactStatusReplied, at))

	contacts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, domain.ContactStatusReplied, contacts[0].Status)
	require.NotNil(t, contacts[0].RespondedAt)
	assert.True(t, contacts[0].RespondedAt.Equal(at))

	require.NoError(t, repo.UpdateStatus(ctx, id, domain.ContactStatusNew, at))
	contacts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, contacts[0].RespondedAt)

	err = repo.UpdateStatus(ctx, id+100, domain.ContactStatusArchived, at)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t))

	_, err := repo.GetByKey(ctx, domain.ThemeSettingKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, domain.ThemeSettingKey, "true"))
	require.NoError(t, repo.Upsert(ctx, domain.ThemeSettingKey, "dark"))
	require.NoError(t, repo.Upsert(ctx, "banner", "spring"))

	s, err := repo.GetByKey(ctx, domain.ThemeSettingKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Value)
	assert.False(t, s.UpdatedAt.IsZero())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "banner", all[0].Key)
	assert.Equal(t, domain.ThemeSettingKey, all[1].Key)
}

func TestServicioRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewServicioRepository(openTestDB(t))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	wedding := &domain.Servicio{
		Slug: "wedding", Name: "Wedding", Price: 2800, IconKey: "rings",
		Features: []string{"Full day", "Two shooters"}, SortOrder: 2,
	}
	portrait := &domain.Servicio{Slug: "portrait", Name: "Portrait", Price: 250, SortOrder: 1}
	require.NoError(t, repo.CreateService(ctx, wedding))
	require.NoError(t, repo.CreateService(ctx, portrait))
	assert.NotZero(t, wedding.ID)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.GetAllServices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "portrait", all[0].Slug)
	assert.Nil(t, all[0].Features)
	assert.Equal(t, []string{"Full day", "Two shooters"}, all[1].Features)
	assert.InDelta(t, 2800, all[1].Price, 0.001)

	err = repo.CreateService(ctx, &domain.Servicio{Slug: "wedding", Name: "dup"})
	assert.Error(t, err)
}
