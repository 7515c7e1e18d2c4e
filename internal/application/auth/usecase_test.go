package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fudge-api/internal/application/auth"
	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/infrastructure/memory"
	"github.com/jhoicas/fudge-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase() (*auth.AuthUseCase, *memory.UserRepo) {
	users := memory.NewStore().Users()
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     secret,
		ExpMinutes: 60,
		Issuer:     "fudge-test",
		BcryptCost: bcrypt.MinCost,
	})
	return uc, users
}

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{
		Username: "  ana ",
		Email:    "Ana@Example.com",
		Password: "secret1",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.User.Username)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, entity.RoleUser, out.User.Role, "el rol enviado por el cliente se ignora")
	assert.NotEmpty(t, out.Token)

	stored, err := users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	userID, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()
	in := dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "secret1"}

	_, err := uc.Register(ctx, in)
	require.NoError(t, err)

	in.Email = "ANA@example.com"
	_, err = uc.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, 1, users.Count())
}

func TestRegister_Validacion(t *testing.T) {
	uc, users := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "a", Email: "x", Password: "1"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Details, 3)
	assert.Zero(t, users.Count())
}

func TestLogin(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("credenciales correctas", func(t *testing.T) {
		out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, reg.User, out.User)

		user, err := uc.ResolveToken(ctx, out.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, user.ID)
	})

	t.Run("password incorrecto y email desconocido dan el mismo error", func(t *testing.T) {
		_, errWrong := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nope!!"})
		_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "bob@example.com", Password: "secret1"})
		assert.ErrorIs(t, errWrong, domain.ErrUnauthorized)
		assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
		assert.Equal(t, errWrong, errUnknown)
	})

	t.Run("entrada mal formada tambien es ErrUnauthorized", func(t *testing.T) {
		for _, in := range []dto.LoginRequest{
			{Email: "no-es-email", Password: "secret1"},
			{Email: "ana@example.com"},
			{},
		} {
			_, err := uc.Login(ctx, in)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.NotErrorIs(t, err, domain.ErrInvalidInput)
		}
	})
}

func TestResolveToken_Invalido(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.ResolveToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	forged, err := jwt.Generate("otro-secret", "3f1c1b2e-0e0a-4d8f-9d55-8c9a0b6f1a11", "x", 10)
	require.NoError(t, err)
	_, err = uc.ResolveToken(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// token válido de un usuario que no existe
	orphan, err := jwt.Generate(secret, "3f1c1b2e-0e0a-4d8f-9d55-8c9a0b6f1a11", "x", 10)
	require.NoError(t, err)
	_, err = uc.ResolveToken(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
