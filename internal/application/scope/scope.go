// Package scope filtra las lecturas según el rol y el alcance organizacional del actor.
// Un actor no resuelto ve colecciones vacías.
package scope

import (
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// Resolve construye el Caller desde el usuario persistido; anónimo si no existe.
func Resolve(snap *entity.Snapshot, actorID string) entity.Caller {
	return entity.CallerFromUser(snap.FindUser(actorID))
}

// Orders pedidos visibles para el actor. Los proveedores nunca ven pedidos en pre-aprobación.
func Orders(c entity.Caller, orders []entity.Order) []entity.Order {
	return filter(orders, func(o *entity.Order) bool { return OrderVisible(c, o) })
}

// OrderVisible regla de visibilidad de un pedido individual.
func OrderVisible(c entity.Caller, o *entity.Order) bool {
	if c.IsSuperAdmin() {
		return true
	}
	switch c.EffectiveFamily() {
	case entity.FamilyBuyer:
		return o.BuyerID == c.BuyerID
	case entity.FamilySupplier:
		return o.SupplierID == c.SupplierID && !workflow.IsPreApproval(o.Status)
	}
	return false
}

// Products catálogo visible: el proveedor ve el suyo; los compradores, todos los activos.
func Products(c entity.Caller, products []entity.Product) []entity.Product {
	return filter(products, func(p *entity.Product) bool {
		if c.IsSuperAdmin() {
			return true
		}
		switch c.EffectiveFamily() {
		case entity.FamilySupplier:
			return p.SupplierID == c.SupplierID
		case entity.FamilyBuyer:
			return p.Active
		}
		return false
	})
}

// Suppliers proveedores visibles: todos para compradores, el propio para proveedores.
func Suppliers(c entity.Caller, suppliers []entity.Supplier) []entity.Supplier {
	return filter(suppliers, func(s *entity.Supplier) bool {
		if c.IsSuperAdmin() {
			return true
		}
		switch c.EffectiveFamily() {
		case entity.FamilySupplier:
			return s.ID == c.SupplierID
		case entity.FamilyBuyer:
			return true
		}
		return false
	})
}

// Buyers empresas compradoras visibles. Un proveedor ve las que le enviaron pedidos.
func Buyers(c entity.Caller, buyers []entity.Buyer, orders []entity.Order) []entity.Buyer {
	if c.IsSuperAdmin() {
		return filter(buyers, func(*entity.Buyer) bool { return true })
	}
	switch c.EffectiveFamily() {
	case entity.FamilyBuyer:
		return filter(buyers, func(b *entity.Buyer) bool { return b.ID == c.BuyerID })
	case entity.FamilySupplier:
		clients := make(map[string]bool)
		for _, o := range Orders(c, orders) {
			clients[o.BuyerID] = true
		}
		return filter(buyers, func(b *entity.Buyer) bool { return clients[b.ID] })
	}
	return []entity.Buyer{}
}

// Users usuarios visibles: administradores y gerentes ven su organización; el resto, solo a sí mismo.
func Users(c entity.Caller, users []entity.User) []entity.User {
	return filter(users, func(u *entity.User) bool {
		if c.IsSuperAdmin() || u.ID == c.UserID {
			return !c.Anonymous()
		}
		if !c.Role.IsManagerOrAdmin() && c.Role != entity.RoleAdmin {
			return false
		}
		switch c.EffectiveFamily() {
		case entity.FamilyBuyer:
			return u.BuyerID == c.BuyerID
		case entity.FamilySupplier:
			return u.SupplierID == c.SupplierID
		}
		return false
	})
}

// AuditFilter filtros explícitos del listado de auditoría; siempre restringen, nunca amplían.
type AuditFilter struct {
	BuyerID    string
	SupplierID string
}

// AuditLogs entradas visibles para el actor con los filtros aplicados, en el orden recibido.
func AuditLogs(c entity.Caller, logs []entity.AuditLog, f AuditFilter) []entity.AuditLog {
	return filter(logs, func(l *entity.AuditLog) bool {
		if !AuditVisible(c, l) {
			return false
		}
		if f.BuyerID != "" && l.BuyerID != f.BuyerID {
			return false
		}
		if f.SupplierID != "" && l.SupplierID != f.SupplierID {
			return false
		}
		return true
	})
}

// AuditVisible regla de visibilidad de una entrada de auditoría.
func AuditVisible(c entity.Caller, l *entity.AuditLog) bool {
	if c.IsSuperAdmin() {
		return true
	}
	switch c.EffectiveFamily() {
	case entity.FamilyBuyer:
		return c.BuyerID != "" && l.BuyerID == c.BuyerID
	case entity.FamilySupplier:
		return c.SupplierID != "" && l.SupplierID == c.SupplierID
	}
	return false
}

func filter[T any](items []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
