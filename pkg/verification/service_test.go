package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, opts ...ServiceOption) (*Service, *InMemRepository) {
	t.Helper()
	repo := NewInMemRepository()
	return NewService(repo, opts...), repo
}

func TestService_IssueCode(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	code, err := svc.IssueCode(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Len(t, code.Code, 6)
	assert.False(t, code.Used)
	assert.Equal(t, "a@b.com", code.Email)
	for _, ch := range code.Code {
		assert.True(t, ch >= '0' && ch <= '9', "code must be ASCII digits, got %q", code.Code)
	}
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), code.ExpiresAt, time.Minute)
}

func TestService_IssueCodeInvalidatesPrior(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	first, err := svc.IssueCode(ctx, "a@b.com")
	require.NoError(t, err)

	second, err := svc.IssueCode(ctx, "a@b.com")
	require.NoError(t, err)

	// At most one unused code remains, and it is the newest one.
	current, err := svc.CurrentCode(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	unused := 0
	repo.mutex.RLock()
	for _, c := range repo.codes {
		if c.Email == "a@b.com" && !c.Used {
			unused++
		}
	}
	repo.mutex.RUnlock()
	assert.Equal(t, 1, unused)

	// The first code is retained as history, marked used.
	repo.mutex.RLock()
	assert.True(t, repo.codes[first.ID].Used)
	repo.mutex.RUnlock()
}

func TestService_IssueCodeDoesNotTouchOtherEmails(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	other, err := svc.IssueCode(ctx, "other@b.com")
	require.NoError(t, err)

	_, err = svc.IssueCode(ctx, "a@b.com")
	require.NoError(t, err)

	current, err := svc.CurrentCode(ctx, "other@b.com")
	require.NoError(t, err)
	assert.Equal(t, other.ID, current.ID)
	assert.False(t, current.Used)
}

func TestService_CurrentCodeNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CurrentCode(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestService_VerifyCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _ := setupService(t)
		code, err := svc.IssueCode(ctx, "a@b.com")
		require.NoError(t, err)

		require.NoError(t, svc.VerifyCode(ctx, code, code.Code))

		// A verified code is no longer current.
		_, err = svc.CurrentCode(ctx, "a@b.com")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("Mismatch", func(t *testing.T) {
		svc, _ := setupService(t)
		code, err := svc.IssueCode(ctx, "a@b.com")
		require.NoError(t, err)

		err = svc.VerifyCode(ctx, code, "000000")
		if code.Code == "000000" {
			t.Skip("generated code collided with the mismatch probe")
		}
		assert.ErrorIs(t, err, ErrCodeMismatch)

		// Failure leaves the code usable.
		current, err := svc.CurrentCode(ctx, "a@b.com")
		require.NoError(t, err)
		require.NoError(t, svc.VerifyCode(ctx, current, current.Code))
	})

	t.Run("Expired", func(t *testing.T) {
		svc, _ := setupService(t, WithCodeExpiry(-time.Hour))
		code, err := svc.IssueCode(ctx, "a@b.com")
		require.NoError(t, err)

		err = svc.VerifyCode(ctx, code, code.Code)
		assert.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("ExpiredWinsOverMismatch", func(t *testing.T) {
		// An expired code submitted with the wrong value must report
		// expired, never mismatch.
		svc, _ := setupService(t, WithCodeExpiry(-time.Hour))
		code, err := svc.IssueCode(ctx, "a@b.com")
		require.NoError(t, err)

		err = svc.VerifyCode(ctx, code, "wrong!")
		assert.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("AlreadyUsed", func(t *testing.T) {
		svc, _ := setupService(t)
		code, err := svc.IssueCode(ctx, "a@b.com")
		require.NoError(t, err)

		require.NoError(t, svc.VerifyCode(ctx, code, code.Code))

		// The same snapshot, verified again with the correct value.
		code.Used = true
		err = svc.VerifyCode(ctx, code, code.Code)
		assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
	})
}

func TestService_CodeLengthOption(t *testing.T) {
	svc, _ := setupService(t, WithCodeLength(8))

	code, err := svc.IssueCode(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Len(t, code.Code, 8)
}
