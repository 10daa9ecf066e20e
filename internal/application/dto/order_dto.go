package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de pedido. Si line_total es cero se calcula como quantity * unit_price;
// si unit_price es cero se usa el precio del producto para el nivel del comprador.
type OrderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CreateOrderRequest entrada para crear un pedido. Status y approval_status solo se respetan
// para creadores que no son de la familia comprador.
type CreateOrderRequest struct {
	OrderNumber      string             `json:"order_number"`
	BuyerID          string             `json:"buyer_id" validate:"required"`
	SupplierID       string             `json:"supplier_id" validate:"required"`
	Items            []OrderLineRequest `json:"items"`
	OrderValue       *decimal.Decimal   `json:"order_value"`
	Status           string             `json:"status"`
	ApprovalStatus   string             `json:"approval_status"`
	ExpectedShipDate string             `json:"expected_ship_date"`
	PaymentTerms     string             `json:"payment_terms"`
	Warehouse        string             `json:"warehouse"`
	Notes            string             `json:"notes"`
}

// UpdateOrderRequest cambios parciales. order_value se ignora: el valor se recalcula desde items.
// expected_version activa el control de concurrencia optimista.
type UpdateOrderRequest struct {
	Status           *string             `json:"status"`
	ApprovalStatus   *string             `json:"approval_status"`
	ApproverNote     *string             `json:"approver_note"`
	Items            *[]OrderLineRequest `json:"items"`
	OrderValue       *decimal.Decimal    `json:"order_value"`
	BuyerID          *string             `json:"buyer_id"`
	SupplierID       *string             `json:"supplier_id"`
	ExpectedShipDate *string             `json:"expected_ship_date"`
	PaymentTerms     *string             `json:"payment_terms"`
	Warehouse        *string             `json:"warehouse"`
	Notes            *string             `json:"notes"`
	ExpectedVersion  *int                `json:"expected_version"`
}

// MoveOrderRequest cambio de etapa.
type MoveOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderLineResponse línea de pedido.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number"`
	BuyerID          string              `json:"buyer_id"`
	SupplierID       string              `json:"supplier_id"`
	Status           string              `json:"status"`
	ApprovalStatus   string              `json:"approval_status"`
	Items            []OrderLineResponse `json:"items"`
	OrderValue       decimal.Decimal     `json:"order_value"`
	ExpectedShipDate string              `json:"expected_ship_date,omitempty"`
	PaymentTerms     string              `json:"payment_terms,omitempty"`
	Warehouse        string              `json:"warehouse,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	CreatedBy        string              `json:"created_by"`
	ApprovedBy       string              `json:"approved_by,omitempty"`
	ApproverNote     string              `json:"approver_note,omitempty"`
	Version          int                 `json:"version"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderStatusResponse etapa del catálogo.
type OrderStatusResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Order    float64 `json:"order"`
	Reserved bool    `json:"reserved"`
}

// CreateOrderStatusRequest nueva etapa personalizada.
type CreateOrderStatusRequest struct {
	Name string `json:"name" validate:"required"`
}

// OrderSummaryItem cantidad y valor de pedidos por etapa.
type OrderSummaryItem struct {
	Status string          `json:"status"`
	Name   string          `json:"name"`
	Count  int             `json:"count"`
	Value  decimal.Decimal `json:"value"`
}

// OrderSummaryResponse resumen de los pedidos visibles.
type OrderSummaryResponse struct {
	Items      []OrderSummaryItem `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalValue decimal.Decimal    `json:"total_value"`
}
