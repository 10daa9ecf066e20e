package entity

import "time"

// Estados de una entrada de auditoría.
const (
	AuditStatusSuccess = "success"
	AuditStatusError   = "error"
)

// Orígenes de una entrada de auditoría.
const (
	AuditSourceUI     = "ui"
	AuditSourceAPI    = "api"
	AuditSourceSystem = "system"
)

// Acciones auditadas.
const (
	ActionOrderCreated       = "order.created"
	ActionOrderUpdated       = "order.updated"
	ActionOrderDeleted       = "order.deleted"
	ActionOrderStatusChanged = "order.status_changed"
	ActionOrderDuplicated    = "order.duplicated"
	ActionOrderStatusAdded   = "order.status_added"
	ActionProductCreated     = "product.created"
	ActionProductUpdated     = "product.updated"
	ActionProductDeleted     = "product.deleted"
	ActionUserCreated        = "user.created"
	ActionUserUpdated        = "user.updated"
	ActionUserDeleted        = "user.deleted"
	ActionSupplierCreated    = "supplier.created"
	ActionSupplierUpdated    = "supplier.updated"
	ActionSupplierDeleted    = "supplier.deleted"
	ActionBuyerCreated       = "buyer.created"
	ActionBuyerUpdated       = "buyer.updated"
	ActionBuyerDeleted       = "buyer.deleted"
	ActionAuditExported      = "audit.exported"
)

// AuditLog entrada inmutable del rastro de auditoría. La colección se ordena de más nueva a más antigua.
type AuditLog struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Action     string         `json:"action"`
	Summary    string         `json:"summary"`
	ActorID    string         `json:"actorId,omitempty"`
	ActorName  string         `json:"actorName,omitempty"`
	ActorRole  Role           `json:"actorRole,omitempty"`
	BuyerID    string         `json:"buyerId,omitempty"`
	SupplierID string         `json:"supplierId,omitempty"`
	EntityType string         `json:"entityType,omitempty"`
	EntityID   string         `json:"entityId,omitempty"`
	EntityName string         `json:"entityName,omitempty"`
	Status     string         `json:"status"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Source     string         `json:"source,omitempty"`
}
