// Package authz concentra las reglas de autorización por rol y alcance.
// Cada operación de escritura consulta CanPerform antes de tocar el estado.
package authz

import (
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// Action operación que se quiere autorizar.
type Action int

const (
	OrderCreate Action = iota
	OrderView
	OrderUpdate
	OrderApprove
	OrderReject
	OrderMove
	OrderComplete
	OrderDelete
	OrderDuplicate
	ProductWrite
	SupplierManage
	BuyerManage
	UserCreate
	UserManage
	StatusCatalogManage
	AuditView
)

var actionNames = map[Action]string{
	OrderCreate:         "crear pedidos",
	OrderView:           "ver pedidos",
	OrderUpdate:         "modificar pedidos",
	OrderApprove:        "aprobar pedidos",
	OrderReject:         "rechazar pedidos",
	OrderMove:           "cambiar el estado de pedidos",
	OrderComplete:       "completar pedidos",
	OrderDelete:         "eliminar pedidos",
	OrderDuplicate:      "duplicar pedidos",
	ProductWrite:        "modificar productos",
	SupplierManage:      "gestionar proveedores",
	BuyerManage:         "gestionar compradores",
	UserCreate:          "crear usuarios",
	UserManage:          "gestionar usuarios",
	StatusCatalogManage: "gestionar etapas de pedido",
	AuditView:           "ver la auditoría",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "acción desconocida"
}

// Target entidad sobre la que se actúa. Solo se leen los campos relevantes a la acción.
type Target struct {
	BuyerID    string
	SupplierID string
	Status     entity.StatusID
	CreatedBy  string
	// Role rol del usuario a crear (UserCreate).
	Role entity.Role
}

// OrderTarget arma el Target de un pedido.
func OrderTarget(o *entity.Order) Target {
	return Target{BuyerID: o.BuyerID, SupplierID: o.SupplierID, Status: o.Status, CreatedBy: o.CreatedBy}
}

// CanPerform devuelve nil si el actor puede ejecutar la acción sobre el objetivo,
// o un error Unauthorized con el motivo.
func CanPerform(action Action, caller entity.Caller, target Target) error {
	if caller.Anonymous() {
		return domain.Unauthorized("se requiere un usuario autenticado para %s", action)
	}
	if caller.IsSuperAdmin() {
		return superAdmin(action, target)
	}

	switch action {
	case OrderCreate, OrderDuplicate:
		return canCreateOrder(caller, target)
	case OrderView:
		return canViewOrder(caller, target)
	case OrderUpdate:
		return canUpdateOrder(caller, target)
	case OrderApprove:
		if caller.IsBuyerApprover() && caller.BuyerID == target.BuyerID {
			return nil
		}
		return domain.Unauthorized("solo administradores o gerentes del comprador pueden aprobar o rechazar pedidos")
	case OrderReject:
		if caller.IsBuyerApprover() && caller.BuyerID == target.BuyerID {
			return nil
		}
		if caller.EffectiveFamily() == entity.FamilySupplier && caller.SupplierID == target.SupplierID {
			return nil
		}
		return domain.Unauthorized("solo administradores o gerentes del comprador pueden aprobar o rechazar pedidos")
	case OrderMove:
		return canMoveOrder(caller, target)
	case OrderComplete:
		if caller.IsBuyerApprover() && caller.BuyerID == target.BuyerID {
			return nil
		}
		return domain.Unauthorized("solo administradores o gerentes del comprador pueden completar pedidos")
	case OrderDelete:
		return canDeleteOrder(caller, target)
	case ProductWrite:
		return canWriteProduct(caller, target)
	case UserCreate:
		return canCreateUser(caller, target)
	case AuditView:
		return nil
	default:
		// SupplierManage, BuyerManage, UserManage, StatusCatalogManage
		return domain.Unauthorized("solo el superadmin puede %s", action)
	}
}

func superAdmin(action Action, target Target) error {
	switch action {
	case UserCreate:
		if target.Role == entity.RoleSuperAdmin {
			return domain.Unauthorized("no se pueden crear superadmins adicionales")
		}
	case OrderComplete:
		return domain.Unauthorized("solo administradores o gerentes del comprador pueden completar pedidos")
	}
	return nil
}

func canCreateOrder(c entity.Caller, t Target) error {
	if c.HasSupplierScope() {
		return domain.Unauthorized("los proveedores no pueden crear pedidos")
	}
	if c.HasBuyerScope() {
		if c.BuyerID == "" {
			return domain.Unauthorized("el usuario comprador no tiene empresa asignada")
		}
		if c.BuyerID != t.BuyerID {
			return domain.Unauthorized("los compradores solo pueden crear pedidos de su propia empresa")
		}
		return nil
	}
	// admin con alcance
	switch {
	case c.BuyerID != "":
		if c.BuyerID != t.BuyerID {
			return domain.Unauthorized("el administrador solo puede crear pedidos de su comprador")
		}
	case c.SupplierID != "":
		if c.SupplierID != t.SupplierID {
			return domain.Unauthorized("el administrador solo puede crear pedidos de su proveedor")
		}
	default:
		return domain.Unauthorized("el administrador no tiene alcance asignado")
	}
	return nil
}

func canViewOrder(c entity.Caller, t Target) error {
	switch c.EffectiveFamily() {
	case entity.FamilyBuyer:
		if c.BuyerID == t.BuyerID {
			return nil
		}
	case entity.FamilySupplier:
		if c.SupplierID == t.SupplierID && !workflow.IsPreApproval(t.Status) {
			return nil
		}
	}
	return domain.Unauthorized("el pedido está fuera de su alcance")
}

func canUpdateOrder(c entity.Caller, t Target) error {
	switch c.EffectiveFamily() {
	case entity.FamilyBuyer:
		if c.BuyerID == t.BuyerID {
			return nil
		}
		return domain.Unauthorized("no puede modificar pedidos fuera del alcance de su comprador")
	case entity.FamilySupplier:
		if c.SupplierID == t.SupplierID {
			return nil
		}
		return domain.Unauthorized("no puede modificar pedidos fuera del alcance de su proveedor")
	}
	return domain.Unauthorized("el usuario no tiene alcance para modificar pedidos")
}

func canMoveOrder(c entity.Caller, t Target) error {
	if !c.HasSupplierScope() {
		return domain.Unauthorized("los compradores y administradores no pueden cambiar el estado del pedido directamente")
	}
	if c.SupplierID != t.SupplierID {
		return domain.Unauthorized("no puede mover pedidos fuera del alcance de su proveedor")
	}
	return nil
}

func canDeleteOrder(c entity.Caller, t Target) error {
	if c.IsBuyerApprover() && c.BuyerID == t.BuyerID {
		return nil
	}
	if c.Role == entity.RoleBuyer && c.BuyerID == t.BuyerID && c.UserID == t.CreatedBy &&
		(t.Status == entity.StatusDraft || t.Status == entity.StatusPendingBuyerApproval) {
		return nil
	}
	return domain.Unauthorized("no tiene permiso para eliminar este pedido")
}

func canWriteProduct(c entity.Caller, t Target) error {
	if c.EffectiveFamily() != entity.FamilySupplier {
		return domain.Unauthorized("solo el proveedor dueño del producto puede modificarlo")
	}
	if !c.IsSupplierEditor() {
		return domain.Unauthorized("solo administradores o gerentes del proveedor pueden modificar productos")
	}
	if c.SupplierID != t.SupplierID {
		return domain.Unauthorized("no puede modificar productos de otro proveedor")
	}
	return nil
}

func canCreateUser(c entity.Caller, t Target) error {
	allowed := c.Role.CreatableBy()
	if len(allowed) == 0 {
		return domain.Unauthorized("solo el superadmin o los administradores de empresa pueden crear usuarios")
	}
	for _, r := range allowed {
		if r == t.Role {
			return nil
		}
	}
	return domain.Unauthorized("un %s solo puede crear usuarios %s o %s", c.Role, allowed[0], allowed[1])
}
