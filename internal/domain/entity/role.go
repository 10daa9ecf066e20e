package entity

// Role rol de un usuario. Conjunto cerrado: usar ParseRole para validar entradas externas.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin      Role = "superadmin"
	RoleAdmin           Role = "admin"
	RoleSupplierAdmin   Role = "supplier_admin"
	RoleSupplierManager Role = "supplier_manager"
	RoleSupplier        Role = "supplier"
	RoleBuyerAdmin      Role = "buyer_admin"
	RoleBuyerManager    Role = "buyer_manager"
	RoleBuyer           Role = "buyer"
)

// AllRoles lista los roles en orden estable (plataforma, proveedor, comprador).
var AllRoles = []Role{
	RoleSuperAdmin, RoleAdmin,
	RoleSupplierAdmin, RoleSupplierManager, RoleSupplier,
	RoleBuyerAdmin, RoleBuyerManager, RoleBuyer,
}

// Family agrupa los roles por organización.
type Family int

const (
	FamilyNone Family = iota
	FamilyPlatform
	FamilyBuyer
	FamilySupplier
)

func (f Family) String() string {
	switch f {
	case FamilyPlatform:
		return "platform"
	case FamilyBuyer:
		return "buyer"
	case FamilySupplier:
		return "supplier"
	default:
		return "none"
	}
}

// ParseRole valida un string externo (JWT, JSON) contra el conjunto cerrado de roles.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid indica si el rol pertenece al conjunto conocido.
func (r Role) Valid() bool {
	return r.Family() != FamilyNone
}

// Family devuelve la familia del rol. admin y superadmin son de plataforma.
func (r Role) Family() Family {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return FamilyPlatform
	case RoleBuyerAdmin, RoleBuyerManager, RoleBuyer:
		return FamilyBuyer
	case RoleSupplierAdmin, RoleSupplierManager, RoleSupplier:
		return FamilySupplier
	default:
		return FamilyNone
	}
}

// IsOrgAdmin buyer_admin o supplier_admin (pueden crear usuarios dentro de su organización).
func (r Role) IsOrgAdmin() bool {
	return r == RoleBuyerAdmin || r == RoleSupplierAdmin
}

// IsManagerOrAdmin *_admin o *_manager de una familia organizacional.
func (r Role) IsManagerOrAdmin() bool {
	switch r {
	case RoleBuyerAdmin, RoleBuyerManager, RoleSupplierAdmin, RoleSupplierManager:
		return true
	}
	return false
}

// CreatableBy roles que un administrador de organización puede crear (mismo alcance).
func (r Role) CreatableBy() []Role {
	switch r {
	case RoleBuyerAdmin:
		return []Role{RoleBuyerManager, RoleBuyer}
	case RoleSupplierAdmin:
		return []Role{RoleSupplierManager, RoleSupplier}
	default:
		return nil
	}
}
