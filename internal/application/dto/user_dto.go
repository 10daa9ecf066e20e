package dto

import "time"

// PermissionsDTO banderas opcionales.
type PermissionsDTO struct {
	ViewOnly   bool `json:"view_only"`
	CanOrder   bool `json:"can_order"`
	CanApprove bool `json:"can_approve"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	Role        string          `json:"role" validate:"required"`
	SupplierID  string          `json:"supplier_id"`
	BuyerID     string          `json:"buyer_id"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UpdateUserRequest cambios parciales de un usuario.
type UpdateUserRequest struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email"`
	Password    *string         `json:"password"`
	Role        *string         `json:"role"`
	SupplierID  *string         `json:"supplier_id"`
	BuyerID     *string         `json:"buyer_id"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	BuyerID     string          `json:"buyer_id,omitempty"`
	Permissions *PermissionsDTO `json:"permissions,omitempty"`
	Protected   bool            `json:"protected,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
