package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

func sampleOrders() []entity.Order {
	return []entity.Order{
		{ID: "o-draft", BuyerID: "B1", SupplierID: "S1", Status: entity.StatusDraft},
		{ID: "o-pba", BuyerID: "B1", SupplierID: "S1", Status: entity.StatusPendingBuyerApproval},
		{ID: "o-rbb", BuyerID: "B1", SupplierID: "S1", Status: entity.StatusRejectedByBuyer},
		{ID: "o-sent", BuyerID: "B1", SupplierID: "S1", Status: entity.StatusSentToSupplier},
		{ID: "o-other-sup", BuyerID: "B1", SupplierID: "S2", Status: entity.StatusShipped},
		{ID: "o-other-buyer", BuyerID: "B2", SupplierID: "S1", Status: entity.StatusAcceptedBySupplier},
	}
}

func ids(orders []entity.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestOrders_AislamientoDeProveedor(t *testing.T) {
	for _, c := range []entity.Caller{
		{UserID: "u-s", Role: entity.RoleSupplier, SupplierID: "S1"},
		{UserID: "u-as", Role: entity.RoleAdmin, SupplierID: "S1"},
	} {
		got := scope.Orders(c, sampleOrders())
		assert.ElementsMatch(t, []string{"o-sent", "o-other-buyer"}, ids(got), string(c.Role))
		for _, o := range got {
			assert.Equal(t, "S1", o.SupplierID)
		}
	}
}

func TestOrders_CompradorVeSuEmpresa(t *testing.T) {
	got := scope.Orders(entity.Caller{UserID: "u-b", Role: entity.RoleBuyer, BuyerID: "B1"}, sampleOrders())
	assert.ElementsMatch(t, []string{"o-draft", "o-pba", "o-rbb", "o-sent", "o-other-sup"}, ids(got))
}

func TestOrders_SuperadminYAnonimo(t *testing.T) {
	assert.Len(t, scope.Orders(entity.Caller{UserID: "u-super", Role: entity.RoleSuperAdmin}, sampleOrders()), 6)
	assert.Empty(t, scope.Orders(entity.Caller{}, sampleOrders()))
	assert.Empty(t, scope.Orders(entity.Caller{UserID: "u-x", Role: entity.RoleAdmin}, sampleOrders()), "admin sin alcance no ve nada")
}

func TestAuditLogs_VisibilidadYFiltros(t *testing.T) {
	logs := []entity.AuditLog{
		{ID: "1", BuyerID: "B1", SupplierID: "S1"},
		{ID: "2", BuyerID: "B2", SupplierID: "S1"},
		{ID: "3", BuyerID: "B1", SupplierID: "S2"},
		{ID: "4"},
	}
	super := entity.Caller{UserID: "u-super", Role: entity.RoleSuperAdmin}
	assert.Len(t, scope.AuditLogs(super, logs, scope.AuditFilter{}), 4)
	assert.Len(t, scope.AuditLogs(super, logs, scope.AuditFilter{SupplierID: "S1"}), 2)

	buyer := entity.Caller{UserID: "u-b", Role: entity.RoleBuyerAdmin, BuyerID: "B1"}
	got := scope.AuditLogs(buyer, logs, scope.AuditFilter{BuyerID: "B2"})
	assert.Empty(t, got, "un filtro explícito no amplía el alcance")
	assert.Len(t, scope.AuditLogs(buyer, logs, scope.AuditFilter{}), 2)

	supplier := entity.Caller{UserID: "u-s", Role: entity.RoleSupplierManager, SupplierID: "S2"}
	assert.Len(t, scope.AuditLogs(supplier, logs, scope.AuditFilter{}), 1)

	assert.Empty(t, scope.AuditLogs(entity.Caller{}, logs, scope.AuditFilter{}))
}

func TestUsers_Visibilidad(t *testing.T) {
	users := []entity.User{
		{ID: "u-ba", Role: entity.RoleBuyerAdmin, BuyerID: "B1"},
		{ID: "u-b", Role: entity.RoleBuyer, BuyerID: "B1"},
		{ID: "u-b2", Role: entity.RoleBuyer, BuyerID: "B2"},
		{ID: "u-s", Role: entity.RoleSupplier, SupplierID: "S1"},
	}
	admin := entity.CallerFromUser(&users[0])
	assert.Len(t, scope.Users(admin, users), 2)

	plain := entity.CallerFromUser(&users[1])
	got := scope.Users(plain, users)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "u-b", got[0].ID)
	}
}

func TestBuyers_ProveedorVeSusClientes(t *testing.T) {
	buyers := []entity.Buyer{{ID: "B1"}, {ID: "B2"}, {ID: "B3"}}
	c := entity.Caller{UserID: "u-s", Role: entity.RoleSupplier, SupplierID: "S1"}
	got := scope.Buyers(c, buyers, sampleOrders())
	assert.Len(t, got, 2)
}

func TestProducts_CatalogoVisible(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", SupplierID: "S1", Active: true},
		{ID: "p2", SupplierID: "S2", Active: true},
		{ID: "p3", SupplierID: "S1", Active: false},
	}
	buyer := entity.Caller{UserID: "u-b", Role: entity.RoleBuyer, BuyerID: "B1"}
	assert.Len(t, scope.Products(buyer, products), 2)

	supplier := entity.Caller{UserID: "u-s", Role: entity.RoleSupplier, SupplierID: "S1"}
	assert.Len(t, scope.Products(supplier, products), 2)
}
