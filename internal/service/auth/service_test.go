package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.AccountStore) {
	t.Helper()
	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	accounts := memory.NewAccountStore()
	return NewService(accounts, NewBcryptHasher(bcrypt.MinCost), tokens, nil), accounts
}

func registerInput() models.RegisterInput {
	return models.RegisterInput{
		Name:     "Asha",
		Email:    "  Asha@Farm.io ",
		Password: "s3cret",
		FarmName: "Green Acres",
		Location: "Nakuru",
	}
}

func TestRegisterCreatesFarmerSession(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "asha@farm.io", session.User.Email)
	assert.Equal(t, models.RoleFarmer, session.User.Role)
	assert.False(t, session.User.Blocked)
	assert.NotEqual(t, "s3cret", session.User.PasswordHash)

	id, role, err := svc.tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id)
	assert.Equal(t, models.RoleFarmer, role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Email = "asha@farm.io"
	_, err = svc.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Email already registered", apperr.Message(err))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)

	in := registerInput()
	in.FarmName = ""
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "farmName is required", apperr.Message(err))
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	svc, accounts := newTestService(t)

	in := registerInput()
	in.Password = strings.Repeat("p", 80)
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "password must be at most 72 bytes", apperr.Message(err))

	_, err = accounts.FindByEmail(context.Background(), "asha@farm.io")
	assert.Error(t, err)

	_, err = svc.EnsureAdmin(context.Background(), "admin@dairy.io", strings.Repeat("p", 73))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	svc, accounts := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.Login(ctx, models.LoginInput{Email: "ASHA@farm.io", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, session.User.ID)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPassword := svc.Login(ctx, models.LoginInput{Email: "asha@farm.io", Password: "nope"})
		_, unknownEmail := svc.Login(ctx, models.LoginInput{Email: "ghost@farm.io", Password: "s3cret"})

		for _, err := range []error{wrongPassword, unknownEmail} {
			require.Error(t, err)
			assert.Equal(t, apperr.KindCredentials, apperr.KindOf(err))
			assert.Equal(t, "Invalid credentials", apperr.Message(err))
		}
	})

	t.Run("blocked account", func(t *testing.T) {
		require.NoError(t, accounts.SetBlocked(ctx, registered.User.ID, true))
		t.Cleanup(func() { _ = accounts.SetBlocked(ctx, registered.User.ID, false) })

		_, err := svc.Login(ctx, models.LoginInput{Email: "asha@farm.io", Password: "s3cret"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestAuthenticate(t *testing.T) {
	svc, accounts := newTestService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.ID)
	assert.False(t, identity.IsAdmin())

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	other, err := NewTokenService("other-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue(session.User.ID, models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	orphan, err := svc.tokens.Issue(primitive.NewObjectID(), models.RoleFarmer)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, accounts.SetBlocked(ctx, session.User.ID, true))
	_, err = svc.Authenticate(ctx, session.Token)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestTokenExpiry(t *testing.T) {
	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	issuedAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }
	raw, err := tokens.Issue(primitive.NewObjectID(), models.RoleFarmer)
	require.NoError(t, err)

	tokens.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, _, err = tokens.Verify(raw)
	assert.NoError(t, err)

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, _, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestEnsureAdmin(t *testing.T) {
	svc, accounts := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin@Dairy.io", "root-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@dairy.io", "root-pass")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := accounts.FindByEmail(ctx, "admin@dairy.io")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	session, err := svc.Login(ctx, models.LoginInput{Email: "admin@dairy.io", Password: "root-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.User.Role)

	_, err = svc.EnsureAdmin(ctx, "", "")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password")
	require.NoError(t, err)
	assert.True(t, hasher.Check("password", hash))
	assert.False(t, hasher.Check("Password", hash))
}
