package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// UserUseCase alta, cambios y bajas de usuarios con las reglas de alcance por rol.
type UserUseCase struct {
	store repository.Store
	rec   *audit.Recorder
	log   *logger.Logger
	cost  int
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(store repository.Store, rec *audit.Recorder, log *logger.Logger) *UserUseCase {
	return &UserUseCase{store: store, rec: rec, log: log, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// Create crea un usuario. Los administradores de empresa solo crean gerentes o usuarios
// de su propia organización; el alcance se fuerza al del creador.
func (uc *UserUseCase) Create(ctx context.Context, creatorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.Validation("el email es obligatorio")
	}
	if in.Password == "" {
		return nil, domain.Validation("la contraseña es obligatoria")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	var created entity.User
	err = uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		if snap.FindUserByEmail(email) != nil {
			return domain.Conflict("el email %s ya está registrado", email)
		}
		caller := scope.Resolve(snap, creatorID)
		role, ok := entity.ParseRole(in.Role)
		if !ok && !caller.Anonymous() {
			return domain.Validation("rol desconocido: %s", in.Role)
		}
		if err := authz.CanPerform(authz.UserCreate, caller, authz.Target{Role: role}); err != nil {
			return err
		}

		now := uc.rec.Now()
		user := entity.User{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(in.Name),
			Email:        email,
			Role:         role,
			SupplierID:   in.SupplierID,
			BuyerID:      in.BuyerID,
			Permissions:  toPermissions(in.Permissions),
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		switch caller.Role {
		case entity.RoleSupplierAdmin:
			user.SupplierID, user.BuyerID = caller.SupplierID, ""
		case entity.RoleBuyerAdmin:
			user.BuyerID, user.SupplierID = caller.BuyerID, ""
		}
		if user.Name == "" {
			user.Name = email
		}
		if err := checkUserScope(snap, &user); err != nil {
			return err
		}

		snap.Users = append(snap.Users, user)
		uc.rec.Record(snap, audit.Event{
			Action:     entity.ActionUserCreated,
			Summary:    fmt.Sprintf("Usuario %s creado", user.Email),
			ActorID:    caller.UserID,
			BuyerID:    user.BuyerID,
			SupplierID: user.SupplierID,
			EntityType: "user",
			EntityID:   user.ID,
			EntityName: user.Name,
			Metadata:   map[string]any{"role": string(user.Role)},
		})
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", created.ID).Str("role", string(created.Role)).Str("actor", creatorID).Msg("usuario creado")
	return toUserResponse(&created), nil
}

// Update cambios parciales (solo superadmin). El superadmin protegido no puede perder su rol.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var hash []byte
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Validation("la contraseña no puede estar vacía")
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost); err != nil {
			return nil, fmt.Errorf("hashear contraseña: %w", err)
		}
	}

	var updated entity.User
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.UserManage, caller, authz.Target{}); err != nil {
			return err
		}
		existing := snap.FindUser(id)
		if existing == nil {
			return domain.NotFound("usuario %s no encontrado", id)
		}

		next := *existing
		var changed []string
		if in.Name != nil && strings.TrimSpace(*in.Name) != next.Name {
			next.Name = strings.TrimSpace(*in.Name)
			changed = append(changed, "name")
		}
		if in.Email != nil && normalizeEmail(*in.Email) != next.Email {
			email := normalizeEmail(*in.Email)
			if email == "" {
				return domain.Validation("el email es obligatorio")
			}
			if other := snap.FindUserByEmail(email); other != nil && other.ID != next.ID {
				return domain.Conflict("el email %s ya está registrado", email)
			}
			next.Email = email
			changed = append(changed, "email")
		}
		if hash != nil {
			next.PasswordHash = string(hash)
			changed = append(changed, "password")
		}
		if in.Role != nil && entity.Role(*in.Role) != next.Role {
			role, ok := entity.ParseRole(*in.Role)
			if !ok {
				return domain.Validation("rol desconocido: %s", *in.Role)
			}
			if next.Protected {
				return domain.Unauthorized("el superadmin protegido no puede cambiar de rol")
			}
			if role == entity.RoleSuperAdmin {
				return domain.Unauthorized("no se pueden crear superadmins adicionales")
			}
			next.Role = role
			changed = append(changed, "role")
		}
		if in.SupplierID != nil && *in.SupplierID != next.SupplierID {
			next.SupplierID = *in.SupplierID
			changed = append(changed, "supplierId")
		}
		if in.BuyerID != nil && *in.BuyerID != next.BuyerID {
			next.BuyerID = *in.BuyerID
			changed = append(changed, "buyerId")
		}
		if in.Permissions != nil {
			next.Permissions = toPermissions(in.Permissions)
			changed = append(changed, "permissions")
		}
		if len(changed) == 0 {
			updated = *existing
			return nil
		}

		switch next.Role.Family() {
		case entity.FamilyBuyer:
			next.SupplierID = ""
		case entity.FamilySupplier:
			next.BuyerID = ""
		}
		if next.Role == entity.RoleSuperAdmin {
			next.SupplierID, next.BuyerID = "", ""
		}
		if err := checkUserScope(snap, &next); err != nil {
			return err
		}
		next.UpdatedAt = uc.rec.Now()
		*existing = next

		uc.rec.Record(snap, audit.Event{
			Action:     entity.ActionUserUpdated,
			Summary:    fmt.Sprintf("Usuario %s actualizado", next.Email),
			ActorID:    caller.UserID,
			BuyerID:    next.BuyerID,
			SupplierID: next.SupplierID,
			EntityType: "user",
			EntityID:   next.ID,
			EntityName: next.Name,
			Metadata:   map[string]any{"fields": changed},
		})
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(&updated), nil
}

// Delete elimina un usuario (solo superadmin). El superadmin protegido no se elimina.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	return uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.UserManage, caller, authz.Target{}); err != nil {
			return err
		}
		existing := snap.FindUser(id)
		if existing == nil {
			return domain.NotFound("usuario %s no encontrado", id)
		}
		if existing.Protected {
			return domain.Unauthorized("el superadmin protegido no se puede eliminar")
		}
		removed := *existing
		snap.RemoveUser(id)
		uc.rec.Record(snap, audit.Event{
			Action:     entity.ActionUserDeleted,
			Summary:    fmt.Sprintf("Usuario %s eliminado", removed.Email),
			ActorID:    caller.UserID,
			BuyerID:    removed.BuyerID,
			SupplierID: removed.SupplierID,
			EntityType: "user",
			EntityID:   removed.ID,
			EntityName: removed.Name,
		})
		return nil
	})
}

// List usuarios visibles para el actor.
func (uc *UserUseCase) List(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	out := []dto.UserResponse{}
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		for _, u := range scope.Users(scope.Resolve(snap, actorID), snap.Users) {
			out = append(out, *toUserResponse(&u))
		}
		return nil
	})
	return out, err
}

// GetByID usuario visible para el actor; NotFound si no existe o está fuera de su alcance.
func (uc *UserUseCase) GetByID(ctx context.Context, actorID, id string) (*dto.UserResponse, error) {
	var found *dto.UserResponse
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		for _, u := range scope.Users(scope.Resolve(snap, actorID), snap.Users) {
			if u.ID == id {
				found = toUserResponse(&u)
				return nil
			}
		}
		return domain.NotFound("usuario %s no encontrado", id)
	})
	return found, err
}

// checkUserScope alcance exigido por el rol y existencia de la organización referenciada.
func checkUserScope(snap *entity.Snapshot, u *entity.User) error {
	if msg := u.MissingScope(); msg != "" {
		return domain.Validation("%s", msg)
	}
	if u.Role == entity.RoleAdmin && u.SupplierID != "" && u.BuyerID != "" {
		return domain.Validation("el admin debe pertenecer a un proveedor o a una empresa compradora, no a ambos")
	}
	if u.SupplierID != "" && snap.FindSupplier(u.SupplierID) == nil {
		return domain.NotFound("proveedor %s no encontrado", u.SupplierID)
	}
	if u.BuyerID != "" && snap.FindBuyer(u.BuyerID) == nil {
		return domain.NotFound("empresa compradora %s no encontrada", u.BuyerID)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toPermissions(p *dto.PermissionsDTO) *entity.Permissions {
	if p == nil {
		return nil
	}
	return &entity.Permissions{ViewOnly: p.ViewOnly, CanOrder: p.CanOrder, CanApprove: p.CanApprove}
}

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
