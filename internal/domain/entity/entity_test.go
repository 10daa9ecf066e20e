package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

func TestRole_Familias(t *testing.T) {
	cases := map[entity.Role]entity.Family{
		entity.RoleSuperAdmin:      entity.FamilyPlatform,
		entity.RoleAdmin:           entity.FamilyPlatform,
		entity.RoleBuyer:           entity.FamilyBuyer,
		entity.RoleBuyerManager:    entity.FamilyBuyer,
		entity.RoleBuyerAdmin:      entity.FamilyBuyer,
		entity.RoleSupplier:        entity.FamilySupplier,
		entity.RoleSupplierManager: entity.FamilySupplier,
		entity.RoleSupplierAdmin:   entity.FamilySupplier,
	}
	require.Len(t, cases, len(entity.AllRoles), "cada rol debe tener familia")
	for role, fam := range cases {
		assert.Equal(t, fam, role.Family(), string(role))
	}

	_, ok := entity.ParseRole("bodeguero")
	assert.False(t, ok, "roles desconocidos no son válidos")
}

func TestCaller_AdminConAlcanceActuaComoSuFamilia(t *testing.T) {
	buyerAdmin := entity.Caller{UserID: "u1", Role: entity.RoleAdmin, BuyerID: "B1"}
	supplierAdmin := entity.Caller{UserID: "u2", Role: entity.RoleAdmin, SupplierID: "S1"}

	assert.Equal(t, entity.FamilyBuyer, buyerAdmin.EffectiveFamily())
	assert.True(t, buyerAdmin.IsBuyerApprover())
	assert.False(t, buyerAdmin.HasBuyerScope(), "por rol, admin no es familia comprador")

	assert.Equal(t, entity.FamilySupplier, supplierAdmin.EffectiveFamily())
	assert.True(t, supplierAdmin.IsSupplierEditor())

	assert.Equal(t, entity.FamilyNone, entity.Caller{}.EffectiveFamily())
}

func TestUser_MissingScope(t *testing.T) {
	assert.NotEmpty(t, (&entity.User{Role: entity.RoleSupplier}).MissingScope())
	assert.NotEmpty(t, (&entity.User{Role: entity.RoleBuyerManager}).MissingScope())
	assert.NotEmpty(t, (&entity.User{Role: entity.RoleAdmin}).MissingScope())
	assert.Empty(t, (&entity.User{Role: entity.RoleAdmin, BuyerID: "B1"}).MissingScope())
	assert.Empty(t, (&entity.User{Role: entity.RoleSuperAdmin}).MissingScope())
}

// Recalcular el valor con las mismas líneas dos veces produce el mismo resultado.
func TestOrder_RecalculateValueIdempotente(t *testing.T) {
	o := entity.Order{Items: []entity.OrderLine{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(30), LineTotal: decimal.NewFromInt(60)},
		{ProductID: "p2", Quantity: 4, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(40)},
	}, OrderValue: decimal.NewFromInt(999)}

	o.RecalculateValue()
	first := o.OrderValue
	o.RecalculateValue()

	assert.True(t, first.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.Equal(o.OrderValue))
}

func TestSnapshot_CloneNoCompartePedidos(t *testing.T) {
	s := &entity.Snapshot{
		Orders:    []entity.Order{{ID: "o1", Items: []entity.OrderLine{{ProductID: "p1", Quantity: 1}}}},
		AuditLogs: []entity.AuditLog{{ID: "a1", Metadata: map[string]any{"status": "pending"}}},
	}
	c := s.Clone()
	c.Orders[0].Items[0].Quantity = 50
	c.AuditLogs[0].Metadata["status"] = "shipped"

	assert.Equal(t, 1, s.Orders[0].Items[0].Quantity)
	assert.Equal(t, "pending", s.AuditLogs[0].Metadata["status"])
}

func TestSnapshot_RemoveOrder(t *testing.T) {
	s := &entity.Snapshot{Orders: []entity.Order{{ID: "o1"}, {ID: "o2"}}}
	assert.True(t, s.RemoveOrder("o1"))
	assert.False(t, s.RemoveOrder("o1"))
	require.Len(t, s.Orders, 1)
	assert.Equal(t, "o2", s.Orders[0].ID)
}
