package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func (r *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user

	return user, nil
}

func (r *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAuthRepo{byEmail: make(map[string]domain.User)}
	svc := NewAuthService(repo)

	created, err := svc.Signup(ctx, domain.User{
		Email:    "alice@example.com",
		Password: "password1",
		Name:     "Alice",
		Role:     domain.RoleOrganizer,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganizer, created.Role)
	assert.NotEqual(t, "password1", repo.byEmail["alice@example.com"].Password, "the password is stored hashed")

	t.Run("privileged roles cannot be self-assigned", func(t *testing.T) {
		user, err := svc.Signup(ctx, domain.User{
			Email:    "mallory@example.com",
			Password: "password1",
			Role:     domain.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, domain.User{
			Email:    "alice@example.com",
			Password: "password1",
			Role:     domain.RoleUser,
		})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("login verifies the password", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)

		_, err = svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)

		_, err = svc.Login(ctx, "nobody@example.com", "password1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestErrorTaxonomyFromRepositories(t *testing.T) {
	assert.True(t, apperror.IsKind(repository.ErrEventNotFound, apperror.KindNotFound))
	assert.True(t, apperror.IsKind(repository.ErrNotTicketOwner, apperror.KindAuthorization))
	assert.True(t, apperror.IsKind(repository.ErrEventSoldOut, apperror.KindState))
}
