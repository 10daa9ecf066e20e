package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// Duplicate copia un pedido visible en uno nuevo: etapa y aprobación vuelven a pending,
// número <original>-R y valor recalculado desde las líneas.
func (s *Service) Duplicate(ctx context.Context, actorID, orderID string) (*dto.OrderResponse, error) {
	var dup entity.Order
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		src := snap.FindOrder(orderID)
		if src == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.OrderView, caller, authz.OrderTarget(src)); err != nil {
			return err
		}
		if err := authz.CanPerform(authz.OrderDuplicate, caller, authz.OrderTarget(src)); err != nil {
			return err
		}

		now := s.rec.Now()
		dup = src.Clone()
		dup.ID = uuid.New().String()
		dup.OrderNumber = src.OrderNumber + "-R"
		dup.Status = entity.StatusPending
		dup.ApprovalStatus = entity.ApprovalPending
		dup.ApprovedBy = ""
		dup.ApproverNote = ""
		dup.CreatedBy = caller.UserID
		dup.Version = 1
		dup.CreatedAt = now
		dup.UpdatedAt = now
		dup.RecalculateValue()
		snap.Orders = append(snap.Orders, dup)

		s.rec.Record(snap, audit.Event{
			Action:     entity.ActionOrderDuplicated,
			Summary:    fmt.Sprintf("Pedido %s duplicado como %s", src.OrderNumber, dup.OrderNumber),
			ActorID:    caller.UserID,
			BuyerID:    dup.BuyerID,
			SupplierID: dup.SupplierID,
			EntityType: "order",
			EntityID:   dup.ID,
			EntityName: dup.OrderNumber,
			Metadata:   map[string]any{"sourceOrder": src.ID},
		})
		dup = dup.Clone()
		return nil
	})
	if err != nil {
		return nil, s.rejected("duplicate", actorID, orderID, err)
	}
	s.obs.OrderCreated(dup.Status)
	s.log.Info().Str("order", dup.ID).Str("source", orderID).Str("actor", actorID).Msg("pedido duplicado")
	return toOrderResponse(&dup), nil
}

// Delete elimina un pedido. Pueden hacerlo el superadmin, los aprobadores del comprador
// dueño y el comprador que lo creó mientras siga en borrador o pendiente de aprobación.
func (s *Service) Delete(ctx context.Context, actorID, orderID string) error {
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		order := snap.FindOrder(orderID)
		if order == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.OrderDelete, caller, authz.OrderTarget(order)); err != nil {
			return err
		}
		removed := *order
		snap.RemoveOrder(orderID)

		s.rec.Record(snap, audit.Event{
			Action:     entity.ActionOrderDeleted,
			Summary:    fmt.Sprintf("Pedido %s eliminado", removed.OrderNumber),
			ActorID:    caller.UserID,
			BuyerID:    removed.BuyerID,
			SupplierID: removed.SupplierID,
			EntityType: "order",
			EntityID:   removed.ID,
			EntityName: removed.OrderNumber,
			Metadata:   map[string]any{"status": string(removed.Status), "orderValue": removed.OrderValue.String()},
		})
		return nil
	})
	if err != nil {
		return s.rejected("delete", actorID, orderID, err)
	}
	s.log.Info().Str("order", orderID).Str("actor", actorID).Msg("pedido eliminado")
	return nil
}
