package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

var (
	superAdmin      = entity.Caller{UserID: "u-super", Role: entity.RoleSuperAdmin}
	buyer           = entity.Caller{UserID: "u-b", Role: entity.RoleBuyer, BuyerID: "B1"}
	buyerManager    = entity.Caller{UserID: "u-bm", Role: entity.RoleBuyerManager, BuyerID: "B1"}
	supplierManager = entity.Caller{UserID: "u-sm", Role: entity.RoleSupplierManager, SupplierID: "S1"}
	supplier        = entity.Caller{UserID: "u-s", Role: entity.RoleSupplier, SupplierID: "S1"}
	buyerAdmin      = entity.Caller{UserID: "u-ba", Role: entity.RoleBuyerAdmin, BuyerID: "B1"}
	supplierAdmin   = entity.Caller{UserID: "u-sa", Role: entity.RoleSupplierAdmin, SupplierID: "S1"}
	adminBuyer      = entity.Caller{UserID: "u-ab", Role: entity.RoleAdmin, BuyerID: "B1"}
	adminSupplier   = entity.Caller{UserID: "u-as", Role: entity.RoleAdmin, SupplierID: "S1"}
	otherBuyer      = entity.Caller{UserID: "u-b2", Role: entity.RoleBuyerManager, BuyerID: "B2"}
	otherSupplier   = entity.Caller{UserID: "u-s2", Role: entity.RoleSupplierManager, SupplierID: "S2"}
)

var order = authz.Target{BuyerID: "B1", SupplierID: "S1", Status: entity.StatusSentToSupplier, CreatedBy: "u-b"}

func TestCanPerform_Matriz(t *testing.T) {
	cases := []struct {
		name   string
		action authz.Action
		caller entity.Caller
		target authz.Target
		allow  bool
	}{
		{"anónimo no crea", authz.OrderCreate, entity.Caller{}, order, false},
		{"superadmin crea", authz.OrderCreate, superAdmin, order, true},
		{"comprador crea en su empresa", authz.OrderCreate, buyer, order, true},
		{"comprador no crea en otra empresa", authz.OrderCreate, buyer, authz.Target{BuyerID: "B2"}, false},
		{"proveedor nunca crea", authz.OrderCreate, supplierManager, order, false},
		{"admin de comprador crea en su alcance", authz.OrderCreate, adminBuyer, order, true},
		{"admin de proveedor no crea fuera de su alcance", authz.OrderCreate, adminSupplier, authz.Target{BuyerID: "B1", SupplierID: "S2"}, false},

		{"gerente comprador aprueba", authz.OrderApprove, buyerManager, order, true},
		{"comprador raso no aprueba", authz.OrderApprove, buyer, order, false},
		{"gerente de otra empresa no aprueba", authz.OrderApprove, otherBuyer, order, false},
		{"proveedor no aprueba", authz.OrderApprove, supplierManager, order, false},
		{"proveedor rechaza", authz.OrderReject, supplier, order, true},
		{"admin de proveedor rechaza", authz.OrderReject, adminSupplier, order, true},
		{"otro proveedor no rechaza", authz.OrderReject, otherSupplier, order, false},

		{"proveedor mueve", authz.OrderMove, supplierManager, order, true},
		{"otro proveedor no mueve", authz.OrderMove, otherSupplier, order, false},
		{"gerente comprador no mueve", authz.OrderMove, buyerManager, order, false},
		{"admin no mueve", authz.OrderMove, adminSupplier, order, false},
		{"superadmin mueve", authz.OrderMove, superAdmin, order, true},

		{"gerente comprador completa", authz.OrderComplete, buyerManager, order, true},
		{"admin de comprador completa", authz.OrderComplete, adminBuyer, order, true},
		{"proveedor no completa", authz.OrderComplete, supplierManager, order, false},
		{"superadmin no completa", authz.OrderComplete, superAdmin, order, false},

		{"gerente comprador elimina", authz.OrderDelete, buyerManager, order, true},
		{"proveedor no elimina", authz.OrderDelete, supplierAdmin, order, false},
		{"comprador no elimina pedido enviado", authz.OrderDelete, buyer, order, false},
		{"comprador elimina su borrador", authz.OrderDelete, buyer, authz.Target{BuyerID: "B1", Status: entity.StatusPendingBuyerApproval, CreatedBy: "u-b"}, true},

		{"proveedor no ve pre-aprobación", authz.OrderView, supplier, authz.Target{SupplierID: "S1", Status: entity.StatusPendingBuyerApproval}, false},
		{"proveedor ve enviado", authz.OrderView, supplier, order, true},

		{"gerente proveedor edita producto", authz.ProductWrite, supplierManager, authz.Target{SupplierID: "S1"}, true},
		{"proveedor raso no edita producto", authz.ProductWrite, supplier, authz.Target{SupplierID: "S1"}, false},
		{"comprador no edita producto", authz.ProductWrite, buyerAdmin, authz.Target{SupplierID: "S1"}, false},
		{"admin de proveedor edita producto", authz.ProductWrite, adminSupplier, authz.Target{SupplierID: "S1"}, true},

		{"superadmin gestiona proveedores", authz.SupplierManage, superAdmin, authz.Target{}, true},
		{"admin de proveedor no gestiona proveedores", authz.SupplierManage, supplierAdmin, authz.Target{}, false},
		{"superadmin no crea otro superadmin", authz.UserCreate, superAdmin, authz.Target{Role: entity.RoleSuperAdmin}, false},
		{"buyer_admin crea gerente", authz.UserCreate, buyerAdmin, authz.Target{Role: entity.RoleBuyerManager}, true},
		{"buyer_admin no crea admin de proveedor", authz.UserCreate, buyerAdmin, authz.Target{Role: entity.RoleSupplierAdmin}, false},
		{"admin no crea usuarios", authz.UserCreate, adminBuyer, authz.Target{Role: entity.RoleBuyer}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.CanPerform(tc.action, tc.caller, tc.target)
			if tc.allow {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
