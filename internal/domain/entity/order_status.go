package entity

// StatusID identificador de una etapa del ciclo de vida del pedido.
type StatusID string

// Etapas reservadas. confirmed y pending se conservan por compatibilidad con datos antiguos.
const (
	StatusDraft                StatusID = "draft"
	StatusPendingBuyerApproval StatusID = "pending_buyer_approval"
	StatusRejectedByBuyer      StatusID = "rejected_by_buyer"
	StatusSentToSupplier       StatusID = "sent_to_supplier"
	StatusPending              StatusID = "pending"
	StatusRejectedBySupplier   StatusID = "rejected_by_supplier"
	StatusAcceptedBySupplier   StatusID = "accepted_by_supplier"
	StatusConfirmed            StatusID = "confirmed"
	StatusShipped              StatusID = "shipped"
	StatusCompleted            StatusID = "completed"
)

// OrderStatus entrada del catálogo de etapas. Order es el rango persistido; las etapas
// reservadas tienen rango fijo y las personalizadas van después de todas ellas.
type OrderStatus struct {
	ID       StatusID `json:"id"`
	Name     string   `json:"name"`
	Order    float64  `json:"order"`
	Reserved bool     `json:"reserved,omitempty"`
}
