package entity

import "time"

// Permissions banderas opcionales por usuario.
type Permissions struct {
	ViewOnly   bool `json:"viewOnly,omitempty"`
	CanOrder   bool `json:"canOrder,omitempty"`
	CanApprove bool `json:"canApprove,omitempty"`
}

// User identidad con rol y alcance organizacional (supplierId o buyerId).
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	SupplierID   string       `json:"supplierId,omitempty"`
	BuyerID      string       `json:"buyerId,omitempty"`
	Permissions  *Permissions `json:"permissions,omitempty"`
	PasswordHash string       `json:"passwordHash,omitempty"` // bcrypt
	// LegacyPassword solo existe en documentos antiguos; la migración lo hashea y lo vacía.
	LegacyPassword string    `json:"password,omitempty"`
	Protected      bool      `json:"protected,omitempty"` // superadmin garantizado por la migración
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MissingScope devuelve un texto con el alcance faltante según el rol, o "" si cumple el invariante.
func (u *User) MissingScope() string {
	switch u.Role.Family() {
	case FamilySupplier:
		if u.SupplierID == "" {
			return "los usuarios de proveedor deben estar asociados a un proveedor"
		}
	case FamilyBuyer:
		if u.BuyerID == "" {
			return "los usuarios de comprador deben estar asociados a una empresa compradora"
		}
	}
	if u.Role == RoleAdmin && u.SupplierID == "" && u.BuyerID == "" {
		return "el admin debe pertenecer a un proveedor o a una empresa compradora"
	}
	return ""
}
