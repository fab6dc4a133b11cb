package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewInMemRepository())
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserParams{
		Username:     "joaosilva",
		Email:        "joao@example.com",
		FirstName:    "Joao",
		LastName:     "Silva",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "joaosilva", u.Username)
	assert.True(t, u.Active)

	profile, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, profile.UserID)
	assert.NotEqual(t, uuid.Nil, profile.PublicID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserParams{
		Username: "joaosilva",
		Email:    "joao@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserParams{
		Username: "joaosilva",
		Email:    "outro@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// case-insensitive per the repository uniqueness rules
	_, err = svc.CreateUser(ctx, CreateUserParams{
		Username: "JoaoSilva",
		Email:    "terceiro@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserParams{
		Username: "joaosilva",
		Email:    "joao@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserParams{
		Username: "outronome",
		Email:    "joao@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetByUsernameNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserParams{
		Username:  "joaosilva",
		Email:     "joao@example.com",
		FirstName: "Joao",
	})
	require.NoError(t, err)

	newFirst := "Pedro"
	newEmail := "pedro@example.com"
	updated, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{
		FirstName: &newFirst,
		Email:     &newEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pedro", updated.FirstName)
	assert.Equal(t, "pedro@example.com", updated.Email)
	assert.Equal(t, "joaosilva", updated.Username)
}

func TestUpdateUserPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserParams{
		Username:     "joaosilva",
		Email:        "joao@example.com",
		FirstName:    "Joao",
		LastName:     "Silva",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)

	// a different account should not conflict with fields we leave unset
	_, err = svc.CreateUser(ctx, CreateUserParams{Username: "maria", Email: "maria@example.com"})
	require.NoError(t, err)

	newFirst := "Pedro"
	updated, err := svc.UpdateUser(ctx, u.ID, UpdateUserParams{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Pedro", updated.FirstName)
	assert.Equal(t, "Silva", updated.LastName)
	assert.Equal(t, "joaosilva", updated.Username)
	assert.Equal(t, "joao@example.com", updated.Email)
	assert.Equal(t, "$2a$10$hash", updated.PasswordHash)
}

func TestUpdateUserConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserParams{Username: "first", Email: "first@example.com"})
	require.NoError(t, err)
	second, err := svc.CreateUser(ctx, CreateUserParams{Username: "second", Email: "second@example.com"})
	require.NoError(t, err)

	taken := "first"
	_, err = svc.UpdateUser(ctx, second.ID, UpdateUserParams{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	takenEmail := "first@example.com"
	_, err = svc.UpdateUser(ctx, second.ID, UpdateUserParams{Email: &takenEmail})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
