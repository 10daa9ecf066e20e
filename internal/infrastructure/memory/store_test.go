package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

func testOptions() memory.MigrationOptions {
	return memory.MigrationOptions{
		SuperAdminEmail:    "super@mayorista.test",
		SuperAdminPassword: "secreto",
		BcryptCost:         bcrypt.MinCost,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Store
// ─────────────────────────────────────────────────────────────────────────────

func TestStore_RunPublicaSoloSiPersiste(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewVolatileRepository(nil)
	store, rep, err := memory.Open(ctx, repo, testOptions(), logger.Nop())
	require.NoError(t, err)
	assert.True(t, rep.SuperAdminCreated)

	err = store.Run(ctx, func(s *entity.Snapshot) error {
		s.Suppliers = append(s.Suppliers, entity.Supplier{ID: "S1", Name: "Acme"})
		return nil
	})
	require.NoError(t, err)

	repo.FailWith = errors.New("disco lleno")
	err = store.Run(ctx, func(s *entity.Snapshot) error {
		s.Suppliers = append(s.Suppliers, entity.Supplier{ID: "S2", Name: "Beta"})
		return nil
	})
	require.Error(t, err)

	_ = store.View(ctx, func(s *entity.Snapshot) error {
		assert.Len(t, s.Suppliers, 1, "el estado no debe cambiar si la persistencia falla")
		assert.NotNil(t, s.FindSupplier("S1"))
		return nil
	})
}

func TestStore_RunDescartaCopiaSiFnFalla(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewVolatileRepository(nil)
	store, _, err := memory.Open(ctx, repo, testOptions(), logger.Nop())
	require.NoError(t, err)
	saves := repo.Saves()

	err = store.Run(ctx, func(s *entity.Snapshot) error {
		s.Users = nil
		return errors.New("regla violada")
	})
	require.Error(t, err)
	assert.Equal(t, saves, repo.Saves())
	assert.NotEmpty(t, store.Snapshot().Users)
}

// ─────────────────────────────────────────────────────────────────────────────
// Migración
// ─────────────────────────────────────────────────────────────────────────────

func legacySnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		Users: []entity.User{
			{ID: "u-1", Name: "Ana", Email: "ana@b1.test", Role: entity.RoleBuyer, BuyerID: "B1", LegacyPassword: "demo123"},
		},
		Products: []entity.Product{
			{ID: "p-1", SupplierID: "S1", Name: "Café"},
			{ID: "p-2", Name: "Té"},
		},
		OrderStatuses: []entity.OrderStatus{
			{ID: entity.StatusShipped, Name: "Shipped", Order: 3},
			{ID: "quality-check", Name: "Quality Check", Order: 2.5},
		},
		Orders: []entity.Order{
			{ID: "o-1", BuyerID: "B1", Status: "packing", Items: []entity.OrderLine{{ProductID: "p-1", Quantity: 1}}},
			{ID: "o-2", BuyerID: "B1", Status: "submitted", ApprovalStatus: entity.ApprovalAccepted, CreatedBy: "u-1"},
			{ID: "o-3", BuyerID: "B1", Status: "invoiced", Items: []entity.OrderLine{{ProductID: "p-9", Quantity: 2}}},
			{ID: "o-4", BuyerID: "B1", Status: "desconocido", SupplierID: "S1"},
			{ID: "o-5", BuyerID: "B1", Status: entity.StatusSentToSupplier, SupplierID: "S1"},
		},
	}
}

func TestMigrate_NormalizaDocumentoAntiguo(t *testing.T) {
	snap := legacySnapshot()
	opts := testOptions()
	opts.SupplierLookup = map[string]string{"p-2": "S2"}
	opts.DefaultSupplierID = "sup-default"

	rep, err := memory.Migrate(snap, opts)
	require.NoError(t, err)

	super := snap.FindUser(memory.SuperAdminID)
	require.NotNil(t, super)
	assert.True(t, super.Protected)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(super.PasswordHash), []byte("secreto")))

	ana := snap.FindUser("u-1")
	assert.Empty(t, ana.LegacyPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ana.PasswordHash), []byte("demo123")))
	assert.Equal(t, 1, rep.PasswordsHashed)

	assert.Equal(t, "S2", snap.FindProduct("p-2").SupplierID)

	assert.Equal(t, entity.StatusConfirmed, snap.FindOrder("o-1").Status)
	assert.Equal(t, "S1", snap.FindOrder("o-1").SupplierID)
	assert.Equal(t, entity.ApprovalPending, snap.FindOrder("o-1").ApprovalStatus)
	assert.Equal(t, entity.StatusPending, snap.FindOrder("o-2").Status)
	assert.Equal(t, entity.ApprovalAccepted, snap.FindOrder("o-2").ApprovalStatus)
	assert.Equal(t, entity.StatusCompleted, snap.FindOrder("o-3").Status)
	assert.Empty(t, snap.FindOrder("o-3").Items, "las líneas de productos inexistentes se eliminan")
	assert.Equal(t, 1, rep.LinesDropped)
	assert.Equal(t, entity.StatusPending, snap.FindOrder("o-4").Status)
	assert.Equal(t, entity.StatusSentToSupplier, snap.FindOrder("o-5").Status, "los estados vigentes se conservan")

	// catálogo reservado + etapa personalizada al final
	qc := snap.FindStatus("quality-check")
	require.NotNil(t, qc)
	assert.GreaterOrEqual(t, qc.Order, float64(100))
	assert.NotNil(t, snap.FindStatus(entity.StatusDraft))
	assert.Equal(t, 1, rep.CustomStagesKept)
}

func TestMigrate_Idempotente(t *testing.T) {
	snap := legacySnapshot()
	_, err := memory.Migrate(snap, testOptions())
	require.NoError(t, err)
	before := snap.Clone()

	rep, err := memory.Migrate(snap, testOptions())
	require.NoError(t, err)
	assert.False(t, rep.SuperAdminCreated)
	assert.Zero(t, rep.StatusesNormalized)
	assert.Zero(t, rep.PasswordsHashed)
	assert.Equal(t, before, snap)
}

func TestMigrate_UnSoloSuperadminProtegido(t *testing.T) {
	snap := &entity.Snapshot{Users: []entity.User{
		{ID: "a", Role: entity.RoleSuperAdmin},
		{ID: "b", Role: entity.RoleSuperAdmin, Protected: true},
	}}
	rep, err := memory.Migrate(snap, testOptions())
	require.NoError(t, err)

	assert.False(t, snap.FindUser("a").Protected)
	assert.True(t, snap.FindUser("b").Protected)
	assert.Equal(t, []string{"a"}, rep.ExtraSuperAdmins)
}

func TestMigrate_SinSuperadminNiConfiguracionFalla(t *testing.T) {
	_, err := memory.Migrate(&entity.Snapshot{}, memory.MigrationOptions{})
	assert.Error(t, err)
}
