package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y perfil del usuario autenticado.
// Los usuarios se crean con usecase.UserUseCase; no hay registro abierto.
type AuthUseCase struct {
	store  repository.Store
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.Store, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var user entity.User
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		u := snap.FindUserByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
		if u == nil {
			return errBadCredentials
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     user.ID,
		Role:       string(user.Role),
		BuyerID:    user.BuyerID,
		SupplierID: user.SupplierID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(&user),
	}, nil
}

// Me perfil del usuario del token, leído del store (el rol del token puede estar desactualizado).
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	var out *dto.UserResponse
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		u := snap.FindUser(userID)
		if u == nil {
			return domain.NotFound("usuario %s no encontrado", userID)
		}
		out = toUserResponse(u)
		return nil
	})
	return out, err
}

var errBadCredentials = domain.Unauthorized("credenciales inválidas")

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		SupplierID: u.SupplierID,
		BuyerID:    u.BuyerID,
		Protected:  u.Protected,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.Permissions != nil {
		out.Permissions = &dto.PermissionsDTO{
			ViewOnly:   u.Permissions.ViewOnly,
			CanOrder:   u.Permissions.CanOrder,
			CanApprove: u.Permissions.CanApprove,
		}
	}
	return out
}
