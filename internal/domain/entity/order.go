package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus eje secundario de aprobación interna del comprador.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalAccepted ApprovalStatus = "accepted"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid indica si el valor pertenece al conjunto conocido.
func (a ApprovalStatus) Valid() bool {
	return a == ApprovalPending || a == ApprovalAccepted || a == ApprovalRejected
}

// OrderLine línea de pedido.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Order pedido mayorista. Status y ApprovalStatus solo cambian a través del servicio de pedidos.
// OrderValue siempre es la suma de Items[].LineTotal después de cualquier cambio de líneas.
type Order struct {
	ID               string          `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	BuyerID          string          `json:"buyerId"`
	SupplierID       string          `json:"supplierId"`
	Status           StatusID        `json:"status"`
	ApprovalStatus   ApprovalStatus  `json:"approvalStatus"`
	Items            []OrderLine     `json:"items"`
	OrderValue       decimal.Decimal `json:"orderValue"`
	ExpectedShipDate string          `json:"expectedShipDate,omitempty"`
	PaymentTerms     string          `json:"paymentTerms,omitempty"`
	Warehouse        string          `json:"warehouse,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        string          `json:"createdBy"`
	ApprovedBy       string          `json:"approvedBy,omitempty"`
	ApproverNote     string          `json:"approverNote,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CalculateOrderValue suma de LineTotal.
func CalculateOrderValue(items []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// RecalculateValue recalcula OrderValue desde las líneas actuales.
func (o *Order) RecalculateValue() {
	o.OrderValue = CalculateOrderValue(o.Items)
}

// Clone copia profunda (las líneas no se comparten).
func (o Order) Clone() Order {
	c := o
	c.Items = cloneSlice(o.Items)
	return c
}
