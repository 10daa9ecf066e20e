package dto

import "time"

// AuditLogResponse entrada de auditoría.
type AuditLogResponse struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Action     string         `json:"action"`
	Summary    string         `json:"summary"`
	ActorID    string         `json:"actor_id,omitempty"`
	ActorName  string         `json:"actor_name,omitempty"`
	ActorRole  string         `json:"actor_role,omitempty"`
	BuyerID    string         `json:"buyer_id,omitempty"`
	SupplierID string         `json:"supplier_id,omitempty"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   string         `json:"entity_id,omitempty"`
	EntityName string         `json:"entity_name,omitempty"`
	Status     string         `json:"status"`
	Source     string         `json:"source,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// AuditCursor cursor opaco de paginación.
type AuditCursor struct {
	Index int `json:"index"`
}

// AuditLogPageResponse página del listado; next_cursor es null al terminar.
type AuditLogPageResponse struct {
	Items      []AuditLogResponse `json:"items"`
	NextCursor *AuditCursor       `json:"next_cursor"`
}
