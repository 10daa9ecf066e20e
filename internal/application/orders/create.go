package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// Create crea un pedido. El rol del creador fija el estado inicial:
//   - buyer: pending_buyer_approval / pending
//   - buyer_admin, buyer_manager: sent_to_supplier / accepted
//   - resto (admin con alcance, superadmin): lo indicado en la entrada, por defecto pending / pending
//
// Los proveedores nunca crean pedidos.
func (s *Service) Create(ctx context.Context, creatorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var created entity.Order
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, creatorID)
		if err := authz.CanPerform(authz.OrderCreate, caller, authz.Target{BuyerID: in.BuyerID, SupplierID: in.SupplierID}); err != nil {
			return err
		}
		buyer := snap.FindBuyer(in.BuyerID)
		if buyer == nil {
			return domain.NotFound("empresa compradora %s no encontrada", in.BuyerID)
		}
		if snap.FindSupplier(in.SupplierID) == nil {
			return domain.NotFound("proveedor %s no encontrado", in.SupplierID)
		}
		items, err := buildLines(snap, in.SupplierID, buyer, in.Items)
		if err != nil {
			return err
		}
		status, approval, err := initialState(caller, workflow.NewCatalog(snap.OrderStatuses), in)
		if err != nil {
			return err
		}

		now := s.rec.Now()
		order := entity.Order{
			ID:               uuid.New().String(),
			OrderNumber:      strings.TrimSpace(in.OrderNumber),
			BuyerID:          in.BuyerID,
			SupplierID:       in.SupplierID,
			Status:           status,
			ApprovalStatus:   approval,
			Items:            items,
			OrderValue:       entity.CalculateOrderValue(items),
			ExpectedShipDate: in.ExpectedShipDate,
			PaymentTerms:     in.PaymentTerms,
			Warehouse:        in.Warehouse,
			Notes:            in.Notes,
			CreatedBy:        caller.UserID,
			Version:          1,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if in.OrderValue != nil {
			order.OrderValue = *in.OrderValue
		}
		if order.OrderNumber == "" {
			order.OrderNumber = fmt.Sprintf("PO-%s-%s", now.Format("20060102"), strings.ToUpper(order.ID[:6]))
		}
		if order.PaymentTerms == "" {
			order.PaymentTerms = buyer.PaymentTerms
		}
		if approval == entity.ApprovalAccepted && caller.IsBuyerApprover() {
			order.ApprovedBy = caller.UserID
		}

		snap.Orders = append(snap.Orders, order)
		buyer.LastOrderDate = &now

		s.rec.Record(snap, audit.Event{
			Action:     entity.ActionOrderCreated,
			Summary:    fmt.Sprintf("Pedido %s creado para %s", order.OrderNumber, buyer.Name),
			ActorID:    caller.UserID,
			BuyerID:    order.BuyerID,
			SupplierID: order.SupplierID,
			EntityType: "order",
			EntityID:   order.ID,
			EntityName: order.OrderNumber,
			Metadata: map[string]any{
				"status":         string(order.Status),
				"approvalStatus": string(order.ApprovalStatus),
				"orderValue":     order.OrderValue.String(),
			},
		})
		created = order.Clone()
		return nil
	})
	if err != nil {
		return nil, s.rejected("create", creatorID, "", err)
	}
	s.obs.OrderCreated(created.Status)
	s.log.Info().Str("order", created.ID).Str("status", string(created.Status)).Str("actor", creatorID).Msg("pedido creado")
	return toOrderResponse(&created), nil
}

func initialState(caller entity.Caller, catalog workflow.Catalog, in dto.CreateOrderRequest) (entity.StatusID, entity.ApprovalStatus, error) {
	switch caller.Role {
	case entity.RoleBuyer:
		return entity.StatusPendingBuyerApproval, entity.ApprovalPending, nil
	case entity.RoleBuyerAdmin, entity.RoleBuyerManager:
		return entity.StatusSentToSupplier, entity.ApprovalAccepted, nil
	}

	status := entity.StatusPending
	if in.Status != "" {
		status = entity.StatusID(in.Status)
		if !catalog.Has(status) {
			return "", "", domain.Validation("estado desconocido: %s", in.Status)
		}
		status = workflow.Normalize(status)
	}
	approval := entity.ApprovalPending
	if in.ApprovalStatus != "" {
		approval = entity.ApprovalStatus(in.ApprovalStatus)
		if !approval.Valid() {
			return "", "", domain.Validation("estado de aprobación desconocido: %s", in.ApprovalStatus)
		}
	}
	return status, approval, nil
}
