package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// planStatus corre la guardia de cambio de estado sobre next y aplica el destino normalizado.
// Orden: existencia de la etapa, avance hacia adelante, rol y alcance, fase,
// aprobación obligatoria para pedidos de compradores.
func planStatus(snap *entity.Snapshot, caller entity.Caller, next *entity.Order, requested entity.StatusID) (workflow.Plan, error) {
	catalog := workflow.NewCatalog(snap.OrderStatuses)
	plan, err := catalog.PlanMove(next.Status, requested)
	if err != nil {
		return plan, err
	}

	action := authz.OrderMove
	if plan.Target == entity.StatusCompleted {
		action = authz.OrderComplete
	}
	if err := authz.CanPerform(action, caller, authz.OrderTarget(next)); err != nil {
		return plan, err
	}
	if err := workflow.CheckPhase(plan); err != nil {
		return plan, err
	}

	var creatorRole entity.Role
	if creator := snap.FindUser(next.CreatedBy); creator != nil {
		creatorRole = creator.Role
	}
	if catalog.RequiresBuyerApproval(creatorRole, plan.Target, next.ApprovalStatus) {
		return plan, domain.InvalidTransition("los pedidos creados por compradores requieren aprobación de un gerente o administrador antes de avanzar")
	}

	next.Status = plan.Target
	return plan, nil
}

// applyApproval cambia el eje de aprobación. En pre-aprobación decide el lado comprador
// (gerente, administrador o superadmin): aceptar envía al proveedor y rechazar termina en
// rejected_by_buyer. Fuera de pre-aprobación la aprobación del comprador ya está resuelta:
// solo el lado proveedor puede rechazar, y el pedido termina en rejected_by_supplier.
func applyApproval(caller entity.Caller, next *entity.Order, approval entity.ApprovalStatus, note *string) error {
	if !approval.Valid() {
		return domain.Validation("estado de aprobación desconocido: %s", approval)
	}
	if workflow.IsTerminal(next.Status) {
		return domain.InvalidTransition("el pedido está en estado terminal %s", next.Status)
	}
	action := authz.OrderApprove
	if approval == entity.ApprovalRejected {
		action = authz.OrderReject
	}
	if err := authz.CanPerform(action, caller, authz.OrderTarget(next)); err != nil {
		return err
	}

	buyerSide := caller.IsSuperAdmin() || (caller.IsBuyerApprover() && caller.BuyerID == next.BuyerID)
	if workflow.IsPreApproval(next.Status) {
		if !buyerSide {
			return domain.InvalidTransition("no se puede actuar sobre pedidos que no fueron enviados al proveedor")
		}
		setApproval(caller, next, approval, note)
		switch approval {
		case entity.ApprovalAccepted:
			next.Status = entity.StatusSentToSupplier
		case entity.ApprovalRejected:
			next.Status = entity.StatusRejectedByBuyer
		}
		return nil
	}

	supplierSide := caller.IsSuperAdmin() || (caller.EffectiveFamily() == entity.FamilySupplier && caller.SupplierID == next.SupplierID)
	switch {
	case approval == entity.ApprovalRejected && supplierSide:
		if next.Status == entity.StatusShipped || next.Status == entity.StatusCompleted {
			return domain.InvalidTransition("no se puede rechazar un pedido en estado %s", next.Status)
		}
		setApproval(caller, next, approval, note)
		next.Status = entity.StatusRejectedBySupplier
	case approval == entity.ApprovalAccepted && buyerSide:
		setApproval(caller, next, approval, note)
	default:
		return domain.InvalidTransition("la aprobación del comprador ya fue resuelta; el pedido está en %s", next.Status)
	}
	return nil
}

func setApproval(caller entity.Caller, next *entity.Order, approval entity.ApprovalStatus, note *string) {
	next.ApprovalStatus = approval
	if note != nil {
		next.ApproverNote = *note
	}
	if approval == entity.ApprovalAccepted {
		next.ApprovedBy = caller.UserID
	}
}

// Move cambia la etapa de un pedido. confirmed se guarda como accepted_by_supplier; la
// auditoría conserva el id pedido.
func (s *Service) Move(ctx context.Context, actorID, orderID, status string) (*dto.OrderResponse, error) {
	var (
		moved entity.Order
		plan  workflow.Plan
	)
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		order := snap.FindOrder(orderID)
		if order == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		caller := scope.Resolve(snap, actorID)
		next := order.Clone()
		var err error
		plan, err = planStatus(snap, caller, &next, entity.StatusID(status))
		if err != nil {
			return err
		}
		next.Version++
		next.UpdatedAt = s.rec.Now()
		*order = next

		recordStatusChange(s.rec, snap, caller, order, plan)
		moved = order.Clone()
		return nil
	})
	if err != nil {
		return nil, s.rejected("move", actorID, orderID, err)
	}
	s.obs.StatusChanged(plan.From, plan.Target)
	s.log.Info().Str("order", orderID).Str("from", string(plan.From)).Str("to", string(plan.Target)).Str("actor", actorID).Msg("estado de pedido actualizado")
	return toOrderResponse(&moved), nil
}

func recordStatusChange(rec *audit.Recorder, snap *entity.Snapshot, caller entity.Caller, order *entity.Order, plan workflow.Plan) {
	rec.Record(snap, audit.Event{
		Action:     entity.ActionOrderStatusChanged,
		Summary:    fmt.Sprintf("Pedido %s movido de %s a %s", order.OrderNumber, plan.From, plan.Requested),
		ActorID:    caller.UserID,
		BuyerID:    order.BuyerID,
		SupplierID: order.SupplierID,
		EntityType: "order",
		EntityID:   order.ID,
		EntityName: order.OrderNumber,
		Metadata: map[string]any{
			"from":   string(plan.From),
			"status": string(plan.Requested),
			"stored": string(plan.Target),
		},
	})
}
