package orders

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// Update aplica cambios parciales. Un cambio de approval_status pasa por la transición de
// aprobación; un cambio de status, por la guardia completa de estados; el resto de campos
// exige el alcance del actor sobre el pedido. Si cambian las líneas, order_value se recalcula
// y el valor enviado por el cliente se ignora.
func (s *Service) Update(ctx context.Context, actorID, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var (
		updated entity.Order
		plan    *workflow.Plan
		from    entity.StatusID
	)
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		order := snap.FindOrder(orderID)
		if order == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		if in.ExpectedVersion != nil && *in.ExpectedVersion != order.Version {
			return domain.Conflict("el pedido %s fue modificado por otro usuario (versión %d, esperada %d)",
				order.OrderNumber, order.Version, *in.ExpectedVersion)
		}
		if (in.BuyerID != nil && *in.BuyerID != order.BuyerID) || (in.SupplierID != nil && *in.SupplierID != order.SupplierID) {
			return domain.Validation("no se puede cambiar el comprador ni el proveedor de un pedido")
		}

		caller := scope.Resolve(snap, actorID)
		from = order.Status
		next := order.Clone()
		var changed []string

		if in.ApprovalStatus != nil && entity.ApprovalStatus(*in.ApprovalStatus) != order.ApprovalStatus {
			if err := applyApproval(caller, &next, entity.ApprovalStatus(*in.ApprovalStatus), in.ApproverNote); err != nil {
				return err
			}
			changed = append(changed, "approvalStatus")
		}

		if in.Status != nil {
			requested := entity.StatusID(*in.Status)
			if requested != next.Status && workflow.Normalize(requested) != next.Status {
				p, err := planStatus(snap, caller, &next, requested)
				if err != nil {
					return err
				}
				plan = &p
			}
		}

		fields, err := applyFields(snap, &next, in)
		if err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := authz.CanPerform(authz.OrderUpdate, caller, authz.OrderTarget(order)); err != nil {
				return err
			}
			if caller.EffectiveFamily() == entity.FamilySupplier && workflow.IsPreApproval(order.Status) {
				return domain.InvalidTransition("no se puede actuar sobre pedidos que no fueron enviados al proveedor")
			}
			changed = append(changed, fields...)
		}

		if len(changed) == 0 && plan == nil {
			updated = order.Clone()
			return nil
		}

		next.Version++
		next.UpdatedAt = s.rec.Now()
		*order = next

		if plan != nil {
			recordStatusChange(s.rec, snap, caller, order, *plan)
		} else {
			meta := map[string]any{"fields": changed}
			if slices.Contains(changed, "approvalStatus") {
				meta["approvalStatus"] = string(order.ApprovalStatus)
			}
			if order.Status != from {
				meta["from"] = string(from)
				meta["status"] = string(order.Status)
			}
			s.rec.Record(snap, audit.Event{
				Action:     entity.ActionOrderUpdated,
				Summary:    fmt.Sprintf("Pedido %s actualizado", order.OrderNumber),
				ActorID:    caller.UserID,
				BuyerID:    order.BuyerID,
				SupplierID: order.SupplierID,
				EntityType: "order",
				EntityID:   order.ID,
				EntityName: order.OrderNumber,
				Metadata:   meta,
			})
		}
		updated = order.Clone()
		return nil
	})
	if err != nil {
		return nil, s.rejected("update", actorID, orderID, err)
	}
	if updated.Status != from {
		s.obs.StatusChanged(from, updated.Status)
		s.log.Info().Str("order", orderID).Str("from", string(from)).Str("to", string(updated.Status)).Str("actor", actorID).Msg("estado de pedido actualizado")
	}
	return toOrderResponse(&updated), nil
}

// applyFields mezcla los campos simples y las líneas; devuelve los nombres de campos cambiados.
func applyFields(snap *entity.Snapshot, next *entity.Order, in dto.UpdateOrderRequest) ([]string, error) {
	var changed []string
	set := func(name string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, name)
		}
	}
	set("expectedShipDate", &next.ExpectedShipDate, in.ExpectedShipDate)
	set("paymentTerms", &next.PaymentTerms, in.PaymentTerms)
	set("warehouse", &next.Warehouse, in.Warehouse)
	set("notes", &next.Notes, in.Notes)
	if in.ApprovalStatus == nil {
		set("approverNote", &next.ApproverNote, in.ApproverNote)
	}

	if in.Items != nil {
		items, err := buildLines(snap, next.SupplierID, snap.FindBuyer(next.BuyerID), *in.Items)
		if err != nil {
			return nil, err
		}
		next.Items = items
		next.RecalculateValue()
		changed = append(changed, "items")
	}
	return changed, nil
}
