package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/repository"
	"github.com/jhoicas/core-stock/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y consulta de la autorización actual.
// No es una capa de seguridad real: sirve para poblar roles y permisos del token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite un JWT con roles y permisos efectivos
// (permisos por defecto de cada rol + extras del usuario).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	perms := authz.DefaultPermissions(user.Roles, user.Permissions...)
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       user.Roles,
		Permissions: perms,
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	resp.Permissions = perms
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *resp,
	}, nil
}

// Me describe la autorización efectiva que trae la petición.
func (uc *AuthUseCase) Me(userID, email string, a authz.Authorization) dto.MeResponse {
	return dto.MeResponse{
		UserID:      userID,
		Email:       email,
		Roles:       a.Roles(),
		Permissions: a.Permissions().Strings(),
		IsAdmin:     a.IsAdmin(),
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Roles:       roles,
		Permissions: u.Permissions,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
