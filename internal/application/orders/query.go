package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// List pedidos visibles para el actor, más recientes primero.
func (s *Service) List(ctx context.Context, actorID string) ([]dto.OrderResponse, error) {
	var visible []entity.Order
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		visible = scope.Orders(scope.Resolve(snap, actorID), snap.Orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].CreatedAt.After(visible[j].CreatedAt) })
	out := make([]dto.OrderResponse, 0, len(visible))
	for i := range visible {
		out = append(out, *toOrderResponse(&visible[i]))
	}
	return out, nil
}

// Get un pedido visible para el actor.
func (s *Service) Get(ctx context.Context, actorID, orderID string) (*dto.OrderResponse, error) {
	var found entity.Order
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		order := snap.FindOrder(orderID)
		if order == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		if err := authz.CanPerform(authz.OrderView, scope.Resolve(snap, actorID), authz.OrderTarget(order)); err != nil {
			return err
		}
		found = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(&found), nil
}

// Summary cantidad y valor de los pedidos visibles por etapa, en el orden del catálogo.
func (s *Service) Summary(ctx context.Context, actorID string) (*dto.OrderSummaryResponse, error) {
	out := &dto.OrderSummaryResponse{Items: []dto.OrderSummaryItem{}, TotalValue: decimal.Zero}
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if caller.Anonymous() {
			return nil
		}
		byStatus := make(map[entity.StatusID]*dto.OrderSummaryItem)
		for _, st := range sortedStatuses(snap.OrderStatuses) {
			out.Items = append(out.Items, dto.OrderSummaryItem{Status: string(st.ID), Name: st.Name, Value: decimal.Zero})
		}
		for i := range out.Items {
			byStatus[entity.StatusID(out.Items[i].Status)] = &out.Items[i]
		}
		for _, o := range scope.Orders(caller, snap.Orders) {
			item, ok := byStatus[o.Status]
			if !ok {
				continue
			}
			item.Count++
			item.Value = item.Value.Add(o.OrderValue)
			out.TotalCount++
			out.TotalValue = out.TotalValue.Add(o.OrderValue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListStatuses catálogo de etapas ordenado por rango.
func (s *Service) ListStatuses(ctx context.Context, actorID string) ([]dto.OrderStatusResponse, error) {
	out := []dto.OrderStatusResponse{}
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		if scope.Resolve(snap, actorID).Anonymous() {
			return nil
		}
		for _, st := range sortedStatuses(snap.OrderStatuses) {
			out = append(out, toStatusResponse(st))
		}
		return nil
	})
	return out, err
}

// AddStatus agrega una etapa personalizada después de todas las existentes (solo superadmin).
func (s *Service) AddStatus(ctx context.Context, actorID, name string) (*dto.OrderStatusResponse, error) {
	var added entity.OrderStatus
	err := s.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.StatusCatalogManage, caller, authz.Target{}); err != nil {
			return err
		}
		st, err := workflow.NextCustom(snap.OrderStatuses, name)
		if err != nil {
			return err
		}
		snap.OrderStatuses = append(snap.OrderStatuses, st)
		s.rec.Record(snap, audit.Event{
			Action:     entity.ActionOrderStatusAdded,
			Summary:    fmt.Sprintf("Etapa %s agregada al flujo de pedidos", st.Name),
			ActorID:    caller.UserID,
			EntityType: "order_status",
			EntityID:   string(st.ID),
			EntityName: st.Name,
			Metadata:   map[string]any{"order": st.Order},
		})
		added = st
		return nil
	})
	if err != nil {
		return nil, s.rejected("add_status", actorID, "", err)
	}
	resp := toStatusResponse(added)
	return &resp, nil
}

// RenderPDF orden de compra en PDF de un pedido visible para el actor.
func (s *Service) RenderPDF(ctx context.Context, actorID, orderID string) ([]byte, string, error) {
	if s.pdf == nil {
		return nil, "", errNoPDF
	}
	var data PDFData
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		order := snap.FindOrder(orderID)
		if order == nil {
			return domain.NotFound("pedido %s no encontrado", orderID)
		}
		if err := authz.CanPerform(authz.OrderView, scope.Resolve(snap, actorID), authz.OrderTarget(order)); err != nil {
			return err
		}
		data.Order = order.Clone()
		if st := snap.FindStatus(order.Status); st != nil {
			data.Status = *st
		} else {
			data.Status = entity.OrderStatus{ID: order.Status, Name: string(order.Status)}
		}
		if b := snap.FindBuyer(order.BuyerID); b != nil {
			cp := *b
			data.Buyer = &cp
		}
		if sup := snap.FindSupplier(order.SupplierID); sup != nil {
			cp := *sup
			data.Supplier = &cp
		}
		data.Products = make(map[string]entity.Product, len(order.Items))
		for _, l := range order.Items {
			if p := snap.FindProduct(l.ProductID); p != nil {
				data.Products[p.ID] = *p
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	body, err := s.pdf.GenerateOrderPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF del pedido: %w", err)
	}
	return body, fmt.Sprintf("orden-%s.pdf", data.Order.OrderNumber), nil
}

func sortedStatuses(statuses []entity.OrderStatus) []entity.OrderStatus {
	out := append([]entity.OrderStatus(nil), statuses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func toStatusResponse(st entity.OrderStatus) dto.OrderStatusResponse {
	return dto.OrderStatusResponse{ID: string(st.ID), Name: st.Name, Order: st.Order, Reserved: st.Reserved}
}
