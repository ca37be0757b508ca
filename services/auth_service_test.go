package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/repository/memory"
	"hotelbook/services"
)

type fakeGoogle struct {
	user *dto.GoogleUser
	err  error
}

func (g fakeGoogle) Verify(ctx context.Context, tokenID string) (*dto.GoogleUser, error) {
	return g.user, g.err
}

func newAuth(google services.GoogleVerifier) (*services.AuthService, *services.TokenManager) {
	tokens := services.NewTokenManager("test-secret", time.Hour)
	return services.NewAuthService(services.AuthServiceOptions{
		Users:  memory.NewStore().Users(),
		Tokens: tokens,
		Google: google,
	}), tokens
}

func registerInput() dto.RegisterInput {
	return dto.RegisterInput{
		FirstName:   " Bình ",
		LastName:    "Trần",
		Email:       " Binh@Example.com ",
		Password:    "matkhau123",
		PhoneNumber: "0912345678",
		UserType:    constants.UserTypeCustomer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, tokens := newAuth(nil)

	user, err := auth.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, "binh@example.com", user.Email)
	assert.Equal(t, "Bình", user.FirstName)
	assert.NotEqual(t, "matkhau123", user.Password)

	logged, token, err := auth.Login(ctx, "BINH@example.com", "matkhau123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	info, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.UserId)
	assert.Equal(t, constants.UserTypeCustomer, info.UserType)

	me, err := auth.Me(ctx, info.Identity())
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(nil)
	_, err := auth.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	admin := registerInput()
	admin.Email = "admin@example.com"
	admin.UserType = constants.UserTypeAdmin
	_, err = auth.Register(ctx, admin)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	short := registerInput()
	short.Email = "short@example.com"
	short.Password = "123"
	_, err = auth.Register(ctx, short)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(nil)
	_, err := auth.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, errWrong := auth.Login(ctx, "binh@example.com", "sai")
	_, _, errMissing := auth.Login(ctx, "ai@example.com", "matkhau123")
	assert.True(t, errors.Is(errWrong, apperr.ErrUnauthorized))
	assert.True(t, errors.Is(errMissing, apperr.ErrUnauthorized))
	assert.Equal(t, errWrong.Error(), errMissing.Error())
}

func TestLoginWithGoogleCreatesCustomerOnce(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(fakeGoogle{user: &dto.GoogleUser{Name: "Lê Văn Cường", Email: "Cuong@gmail.com", VerifiedEmail: true}})

	first, token, err := auth.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "cuong@gmail.com", first.Email)
	assert.Equal(t, "Lê Văn", first.FirstName)
	assert.Equal(t, "Cường", first.LastName)
	assert.Equal(t, constants.UserTypeCustomer, first.UserType)

	second, _, err := auth.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestLoginWithGoogleFailures(t *testing.T) {
	ctx := context.Background()

	auth, _ := newAuth(nil)
	_, _, err := auth.LoginWithGoogle(ctx, "id-token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	auth, _ = newAuth(fakeGoogle{err: errors.New("bad audience")})
	_, _, err = auth.LoginWithGoogle(ctx, "id-token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	auth, _ = newAuth(fakeGoogle{user: &dto.GoogleUser{Email: "x@gmail.com", VerifiedEmail: false}})
	_, _, err = auth.LoginWithGoogle(ctx, "id-token")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	auth, tokens := newAuth(nil)

	require.NoError(t, auth.EnsureAdmin(ctx, "Root@Example.com", "admin-pass"))
	require.NoError(t, auth.EnsureAdmin(ctx, "root@example.com", "other-pass"))

	user, token, err := auth.Login(ctx, "root@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, constants.UserTypeAdmin, user.UserType)

	info, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, info.Identity().IsAdmin())
}

func TestMeRequiresLogin(t *testing.T) {
	auth, _ := newAuth(nil)
	_, err := auth.Me(context.Background(), services.Identity{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}
