// Package audit registra, lista y exporta el rastro de auditoría.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// Event datos de una operación a auditar. ActorID se resuelve a nombre y rol con el snapshot.
type Event struct {
	Action     string
	Summary    string
	ActorID    string
	BuyerID    string
	SupplierID string
	EntityType string
	EntityID   string
	EntityName string
	Status     string
	Source     string
	Metadata   map[string]any
}

// Recorder antepone entradas al log (más nueva primero). Se invoca dentro de Store.Run,
// como último paso de cada escritura exitosa.
type Recorder struct {
	now   func() time.Time
	newID func() string
}

// NewRecorder crea el registrador con reloj de pared y ids uuid.
func NewRecorder() *Recorder {
	return &Recorder{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Now hora del reloj del registrador; los servicios la usan para sellar entidades.
func (r *Recorder) Now() time.Time { return r.now() }

// Record construye la entrada y la antepone en snap.AuditLogs.
func (r *Recorder) Record(snap *entity.Snapshot, ev Event) entity.AuditLog {
	entry := entity.AuditLog{
		ID:         r.newID(),
		Timestamp:  r.now(),
		Action:     ev.Action,
		Summary:    ev.Summary,
		ActorID:    ev.ActorID,
		BuyerID:    ev.BuyerID,
		SupplierID: ev.SupplierID,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		EntityName: ev.EntityName,
		Status:     ev.Status,
		Source:     ev.Source,
		Metadata:   ev.Metadata,
	}
	if entry.Status == "" {
		entry.Status = entity.AuditStatusSuccess
	}
	if entry.Source == "" {
		entry.Source = entity.AuditSourceAPI
	}
	if u := snap.FindUser(ev.ActorID); u != nil {
		entry.ActorName = u.Name
		entry.ActorRole = u.Role
	}

	snap.AuditLogs = append(snap.AuditLogs, entity.AuditLog{})
	copy(snap.AuditLogs[1:], snap.AuditLogs)
	snap.AuditLogs[0] = entry
	return entry
}
