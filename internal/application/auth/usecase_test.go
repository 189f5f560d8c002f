package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/memory"
)

const secret = "test-secret"

func newUseCase() (*auth.AuthUseCase, *memory.Store) {
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, Issuer: "tuskioscos"}).
		WithBcryptCost(bcrypt.MinCost)
	return uc, s
}

func register(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.RegisterResponse {
	t.Helper()
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: email, Name: "Ana", Password: password})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_HashSalado(t *testing.T) {
	uc, s := newUseCase()
	a := register(t, uc, "ana@example.com", "password123")
	b := register(t, uc, "beto@example.com", "password123")

	ua, err := s.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	ub, err := s.Users().GetByID(context.Background(), b.ID)
	require.NoError(t, err)

	assert.NotEqual(t, "password123", ua.PasswordHash)
	assert.NotEqual(t, ua.PasswordHash, ub.PasswordHash, "misma password, distinto salt")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ua.PasswordHash), []byte("password123")))
}

func TestRegisterUser_NormalizaEmail(t *testing.T) {
	uc, _ := newUseCase()
	out := register(t, uc, "  Ana@Example.COM ", "password123")
	assert.Equal(t, "ana@example.com", out.Email)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Name: "Otra", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_CamposFaltantes(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_PasswordMultibyteSeMideEnBytes(t *testing.T) {
	uc, s := newUseCase()

	// 40 "ñ" son 40 caracteres pero 80 bytes.
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Name: "Ana", Password: strings.Repeat("ñ", 40),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	u, err := s.Users().GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, u, "no se persiste el usuario")

	// 36 "ñ" = 72 bytes, el máximo de bcrypt.
	out := register(t, uc, "beto@example.com", strings.Repeat("ñ", 36))
	assert.NotZero(t, out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Verify / Profile
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_VerifyRoundTrip(t *testing.T) {
	uc, _ := newUseCase()
	reg := register(t, uc, "ana@example.com", "password123")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, err := uc.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)

	profile, err := uc.Profile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestLogin_MismoErrorParaEmailYPassword(t *testing.T) {
	uc, _ := newUseCase()
	register(t, uc, "ana@example.com", "password123")

	_, errPass := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	_, errEmail := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})

	require.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, errPass.Error(), errEmail.Error())
}

func TestVerify_TokenInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Verify("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	otro := auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: "otro-secreto"})
	register(t, otro.WithBcryptCost(bcrypt.MinCost), "x@example.com", "password123")
	out, err := otro.Login(context.Background(), dto.LoginRequest{Email: "x@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Verify(out.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestProfile_UsuarioInexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Profile(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
