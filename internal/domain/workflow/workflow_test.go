package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// ─────────────────────────────────────────────────────────────────────────────
// Avance solo hacia adelante
// ─────────────────────────────────────────────────────────────────────────────

func TestPlanMove_RetrocesoSiempreFalla(t *testing.T) {
	cat := workflow.NewCatalog(workflow.ReservedStatuses())
	statuses := workflow.ReservedStatuses()

	for _, from := range statuses {
		for _, to := range statuses {
			if cat.Rank(workflow.Normalize(to.ID)) >= cat.Rank(from.ID) {
				continue
			}
			_, err := cat.PlanMove(from.ID, to.ID)
			require.Error(t, err, "%s -> %s", from.ID, to.ID)
			assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "%s -> %s", from.ID, to.ID)
		}
	}
}

func TestPlanMove_NormalizaConfirmed(t *testing.T) {
	cat := workflow.NewCatalog(nil)

	p, err := cat.PlanMove(entity.StatusSentToSupplier, entity.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAcceptedBySupplier, p.Target)
	assert.Equal(t, entity.StatusConfirmed, p.Requested)

	// confirmed y accepted_by_supplier son la misma etapa: no es retroceso
	_, err = cat.PlanMove(entity.StatusConfirmed, entity.StatusAcceptedBySupplier)
	assert.NoError(t, err)
}

func TestPlanMove_EstadoDesconocido(t *testing.T) {
	cat := workflow.NewCatalog(nil)
	_, err := cat.PlanMove(entity.StatusPending, "packing")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─────────────────────────────────────────────────────────────────────────────
// Precondiciones de fase
// ─────────────────────────────────────────────────────────────────────────────

func TestCheckPhase(t *testing.T) {
	cases := []struct {
		name    string
		from    entity.StatusID
		target  entity.StatusID
		wantErr bool
		msg     string
	}{
		{"envío sin aceptación", entity.StatusSentToSupplier, entity.StatusShipped, true, "aceptado por el proveedor antes del envío"},
		{"envío tras aceptación", entity.StatusAcceptedBySupplier, entity.StatusShipped, false, ""},
		{"envío idempotente", entity.StatusShipped, entity.StatusShipped, false, ""},
		{"completar sin envío", entity.StatusAcceptedBySupplier, entity.StatusCompleted, true, "enviado antes de completarse"},
		{"completar desde enviado", entity.StatusShipped, entity.StatusCompleted, false, ""},
		{"terminal", entity.StatusRejectedBySupplier, entity.StatusShipped, true, "terminal"},
		{"pre-aprobación", entity.StatusPendingBuyerApproval, entity.StatusSentToSupplier, true, "no fueron enviados"},
		{"rechazo del proveedor", entity.StatusSentToSupplier, entity.StatusRejectedBySupplier, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := workflow.CheckPhase(workflow.Plan{From: tc.from, Requested: tc.target, Target: tc.target})
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestRequiresBuyerApproval(t *testing.T) {
	cat := workflow.NewCatalog(nil)
	assert.True(t, cat.RequiresBuyerApproval(entity.RoleBuyer, entity.StatusAcceptedBySupplier, entity.ApprovalPending))
	assert.False(t, cat.RequiresBuyerApproval(entity.RoleBuyer, entity.StatusAcceptedBySupplier, entity.ApprovalAccepted))
	assert.False(t, cat.RequiresBuyerApproval(entity.RoleBuyer, entity.StatusPending, entity.ApprovalPending))
	assert.False(t, cat.RequiresBuyerApproval(entity.RoleBuyerManager, entity.StatusShipped, entity.ApprovalPending))
}

// ─────────────────────────────────────────────────────────────────────────────
// Etapas personalizadas
// ─────────────────────────────────────────────────────────────────────────────

func TestNextCustom_SeAgregaDespuesDeLasReservadas(t *testing.T) {
	statuses := workflow.ReservedStatuses()

	qc, err := workflow.NextCustom(statuses, "Control de Calidad")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusID("control-de-calidad"), qc.ID)
	assert.Equal(t, float64(workflow.CustomRankBase), qc.Order)
	statuses = append(statuses, qc)

	next, err := workflow.NextCustom(statuses, "Facturación Pendiente")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusID("facturacion-pendiente"), next.ID)
	assert.Greater(t, next.Order, qc.Order)

	cat := workflow.NewCatalog(append(statuses, next))
	assert.Greater(t, cat.Rank(next.ID), cat.Rank(entity.StatusCompleted))
}

func TestNextCustom_Errores(t *testing.T) {
	statuses := workflow.ReservedStatuses()

	_, err := workflow.NextCustom(statuses, "  ¡¿ ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = workflow.NextCustom(statuses, "Shipped")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestNewCatalog_IgnoraRangosPersistidosDeReservadas(t *testing.T) {
	cat := workflow.NewCatalog([]entity.OrderStatus{{ID: entity.StatusShipped, Order: 0.1}})
	assert.Greater(t, cat.Rank(entity.StatusShipped), cat.Rank(entity.StatusAcceptedBySupplier))
}
