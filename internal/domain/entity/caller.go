package entity

// Caller contexto explícito del actor que invoca una operación.
// Un Caller sin rol es anónimo: las lecturas devuelven vacío y las escrituras se rechazan.
type Caller struct {
	UserID     string
	Name       string
	Role       Role
	BuyerID    string
	SupplierID string
}

// CallerFromUser construye el contexto a partir del usuario persistido (fuente de verdad del alcance).
func CallerFromUser(u *User) Caller {
	if u == nil {
		return Caller{}
	}
	return Caller{
		UserID:     u.ID,
		Name:       u.Name,
		Role:       u.Role,
		BuyerID:    u.BuyerID,
		SupplierID: u.SupplierID,
	}
}

// Anonymous indica que el actor no pudo resolverse.
func (c Caller) Anonymous() bool { return c.UserID == "" || !c.Role.Valid() }

// IsSuperAdmin rol superadmin.
func (c Caller) IsSuperAdmin() bool { return !c.Anonymous() && c.Role == RoleSuperAdmin }

// EffectiveFamily familia con la que se autoriza al actor. Un admin con alcance de
// comprador actúa como comprador; con alcance de proveedor, como proveedor.
func (c Caller) EffectiveFamily() Family {
	if c.Anonymous() {
		return FamilyNone
	}
	if c.Role == RoleAdmin {
		switch {
		case c.BuyerID != "":
			return FamilyBuyer
		case c.SupplierID != "":
			return FamilySupplier
		default:
			return FamilyNone
		}
	}
	return c.Role.Family()
}

// HasBuyerScope el actor pertenece a la familia comprador (por rol, no por admin con alcance).
func (c Caller) HasBuyerScope() bool { return !c.Anonymous() && c.Role.Family() == FamilyBuyer }

// HasSupplierScope el actor pertenece a la familia proveedor (por rol).
func (c Caller) HasSupplierScope() bool { return !c.Anonymous() && c.Role.Family() == FamilySupplier }

// IsBuyerApprover buyer_admin, buyer_manager o admin con alcance de comprador.
func (c Caller) IsBuyerApprover() bool {
	switch c.Role {
	case RoleBuyerAdmin, RoleBuyerManager:
		return true
	case RoleAdmin:
		return c.EffectiveFamily() == FamilyBuyer
	}
	return false
}

// IsSupplierEditor supplier_admin, supplier_manager o admin con alcance de proveedor.
func (c Caller) IsSupplierEditor() bool {
	switch c.Role {
	case RoleSupplierAdmin, RoleSupplierManager:
		return true
	case RoleAdmin:
		return c.EffectiveFamily() == FamilySupplier
	}
	return false
}
