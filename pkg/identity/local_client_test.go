package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dispatch/database"
)

func newLocalForTests(t *testing.T, opts ...LocalOption) Provider {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	opts = append([]LocalOption{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return NewLocal(db, "test-secret", time.Hour, opts...)
}

func TestLocal_CreateSignInResolve(t *testing.T) {
	p := newLocalForTests(t)
	ctx := context.Background()

	id, err := p.CreateUser(ctx, NewUser{Email: " Driver@Example.com ", Password: "pw-123456", EmailConfirm: true})
	require.NoError(t, err)
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "driver@example.com", id.Email)

	_, err = p.CreateUser(ctx, NewUser{Email: "driver@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = p.SignIn(ctx, "driver@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := p.SignIn(ctx, "driver@example.com", "pw-123456")
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)

	who, err := p.Resolve(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.ID, who.ID)
}

func TestLocal_DeletedIdentityNoLongerResolves(t *testing.T) {
	p := newLocalForTests(t)
	ctx := context.Background()

	id, err := p.CreateUser(ctx, NewUser{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	sess, err := p.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, id.ID))
	assert.ErrorIs(t, p.DeleteUser(ctx, id.ID), ErrNotFound)

	_, err = p.Resolve(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocal_ExpiredAndForeignTokens(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	p := newLocalForTests(t, WithClock(clock))
	ctx := context.Background()

	_, err := p.CreateUser(ctx, NewUser{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	sess, err := p.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = p.Resolve(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = p.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
