package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
	"github.com/tuskioscos/tuskioscos-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens. ExpMinutes <= 0 emite tokens sin vencimiento.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando el email no existe, para que ambos caminos de login tarden lo mismo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tuskioscos-dummy-password"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: registro, login, verificación y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

const maxPasswordBytes = 72

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea un usuario: valida, hashea password con bcrypt y persiste.
// Email duplicado o campos faltantes devuelven errores de validación.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, name y password son requeridos", domain.ErrInvalidInput)
	}
	// bcrypt limita la password en bytes, no en caracteres.
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password admite hasta %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Login verifica email/password y emite un JWT. Email inexistente y password incorrecta
// devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Success: true,
		Message: "Login exitoso",
		Token:   token,
		User:    *toUserResponse(user),
	}, nil
}

// Verify valida el token sin consultar el store y devuelve el id del usuario.
func (uc *AuthUseCase) Verify(token string) (int64, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) {
			return 0, domain.ErrInvalidToken
		}
		return 0, err
	}
	return userID, nil
}

// Profile devuelve el usuario autenticado. Un token válido de un usuario que ya no existe es ErrInvalidToken.
func (uc *AuthUseCase) Profile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	return toUserResponse(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
