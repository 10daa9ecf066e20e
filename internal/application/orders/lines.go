package orders

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// buildLines valida las líneas contra el catálogo del proveedor y completa precio y total.
// Un precio en cero toma el del nivel del comprador; el total siempre es precio por cantidad.
func buildLines(snap *entity.Snapshot, supplierID string, buyer *entity.Buyer, in []dto.OrderLineRequest) ([]entity.OrderLine, error) {
	tier := ""
	if buyer != nil {
		tier = buyer.PriceTierID
	}
	lines := make([]entity.OrderLine, 0, len(in))
	for _, l := range in {
		if l.Quantity <= 0 {
			return nil, domain.Validation("la cantidad del producto %s debe ser mayor que cero", l.ProductID)
		}
		p := snap.FindProduct(l.ProductID)
		if p == nil {
			return nil, domain.NotFound("producto %s no encontrado", l.ProductID)
		}
		if p.SupplierID != supplierID {
			return nil, domain.Validation("el producto %s no pertenece al proveedor %s", p.SKU, supplierID)
		}
		if l.UnitPrice.IsNegative() || l.LineTotal.IsNegative() {
			return nil, domain.Validation("el precio y el total de la línea %s no pueden ser negativos", p.SKU)
		}
		price := l.UnitPrice
		if price.IsZero() {
			price = p.PriceFor(tier)
		}
		total := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		if !l.LineTotal.IsZero() && !l.LineTotal.Equal(total) {
			return nil, domain.Validation("el total de la línea %s (%s) no coincide con precio por cantidad (%s)", p.SKU, l.LineTotal, total)
		}
		lines = append(lines, entity.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: price,
			LineTotal: total,
		})
	}
	return lines, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		BuyerID:          o.BuyerID,
		SupplierID:       o.SupplierID,
		Status:           string(o.Status),
		ApprovalStatus:   string(o.ApprovalStatus),
		Items:            items,
		OrderValue:       o.OrderValue,
		ExpectedShipDate: o.ExpectedShipDate,
		PaymentTerms:     o.PaymentTerms,
		Warehouse:        o.Warehouse,
		Notes:            o.Notes,
		CreatedBy:        o.CreatedBy,
		ApprovedBy:       o.ApprovedBy,
		ApproverNote:     o.ApproverNote,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
