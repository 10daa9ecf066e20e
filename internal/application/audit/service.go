package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

const (
	// PageSize tamaño fijo de página del listado.
	PageSize = 20
	// MaxExportDays rango máximo de una exportación.
	MaxExportDays = 365

	dateLayout = "2006-01-02"
)

// ExportArchiver guarda una copia de la exportación fuera del proceso (p. ej. S3).
type ExportArchiver interface {
	Archive(ctx context.Context, key string, body []byte) (location string, err error)
}

// ExportRenderer representación impresa de una exportación.
type ExportRenderer interface {
	RenderAuditExport(ctx context.Context, p ExportParams, entries []entity.AuditLog) ([]byte, error)
}

// Cursor posición de la siguiente página.
type Cursor struct {
	Index int `json:"index"`
}

// ListParams parámetros del listado. Cursor nil equivale a {index:0}.
type ListParams struct {
	Cursor     *Cursor
	BuyerID    string
	SupplierID string
}

// Page página de resultados; NextCursor es nil cuando no hay más.
type Page struct {
	Items      []entity.AuditLog `json:"items"`
	NextCursor *Cursor           `json:"nextCursor"`
}

// ExportParams rango en formato YYYY-MM-DD, ambos extremos inclusive.
type ExportParams struct {
	From       string
	To         string
	BuyerID    string
	SupplierID string
}

// Service casos de uso de lectura y exportación de auditoría.
type Service struct {
	store    repository.Store
	rec      *Recorder
	archiver ExportArchiver
	renderer ExportRenderer
	log      *logger.Logger
}

// NewService construye el servicio. archiver puede ser nil (sin archivo externo).
func NewService(store repository.Store, rec *Recorder, archiver ExportArchiver, log *logger.Logger) *Service {
	return &Service{store: store, rec: rec, archiver: archiver, log: log}
}

// WithRenderer registra el generador del PDF de exportación.
func (s *Service) WithRenderer(r ExportRenderer) *Service {
	s.renderer = r
	return s
}

// List página de entradas visibles para el actor, más nueva primero.
// La visibilidad se deriva del usuario persistido, nunca de parámetros del cliente.
func (s *Service) List(ctx context.Context, actorID string, p ListParams) (Page, error) {
	start := 0
	if p.Cursor != nil {
		start = p.Cursor.Index
	}
	if start < 0 {
		return Page{}, domain.Validation("cursor inválido: %d", start)
	}

	var page Page
	err := s.store.View(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		visible := scope.AuditLogs(caller, snap.AuditLogs, scope.AuditFilter{BuyerID: p.BuyerID, SupplierID: p.SupplierID})
		page = paginate(visible, start)
		return nil
	})
	return page, err
}

func paginate(items []entity.AuditLog, start int) Page {
	if start >= len(items) {
		return Page{Items: []entity.AuditLog{}}
	}
	end := min(start+PageSize, len(items))
	page := Page{Items: items[start:end]}
	if end < len(items) {
		page.NextCursor = &Cursor{Index: end}
	}
	return page
}

// Export devuelve todas las entradas visibles del rango. El límite de 365 días se valida
// antes de leer el log. La lectura corre bajo View; el archivo externo se escribe fuera del
// candado y la entrada de auditoría se registra al final, solo si todo lo anterior salió bien.
func (s *Service) Export(ctx context.Context, actorID string, p ExportParams) ([]entity.AuditLog, error) {
	caller, result, err := s.collect(ctx, actorID, p)
	if err != nil {
		return nil, err
	}
	meta, err := s.archive(ctx, actorID, p, result)
	if err != nil {
		return nil, err
	}
	meta["format"] = "json"
	if err := s.recordExport(ctx, caller, p, len(result), meta); err != nil {
		return nil, err
	}
	s.log.Info().Str("actor", actorID).Int("entries", len(result)).Msg("auditoría exportada")
	return result, nil
}

// ExportPDF exporta igual que Export y devuelve el reporte impreso. El PDF se genera antes
// de registrar la exportación: un fallo del generador no deja rastro en el log.
func (s *Service) ExportPDF(ctx context.Context, actorID string, p ExportParams) ([]byte, error) {
	if s.renderer == nil {
		return nil, errors.New("generador de PDF de auditoría no configurado")
	}
	caller, entries, err := s.collect(ctx, actorID, p)
	if err != nil {
		return nil, err
	}
	body, err := s.renderer.RenderAuditExport(ctx, p, entries)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de auditoría: %w", err)
	}
	meta, err := s.archive(ctx, actorID, p, entries)
	if err != nil {
		return nil, err
	}
	meta["format"] = "pdf"
	if err := s.recordExport(ctx, caller, p, len(entries), meta); err != nil {
		return nil, err
	}
	s.log.Info().Str("actor", actorID).Int("entries", len(entries)).Msg("auditoría exportada en PDF")
	return body, nil
}

// collect valida el rango y filtra bajo candado de lectura.
func (s *Service) collect(ctx context.Context, actorID string, p ExportParams) (entity.Caller, []entity.AuditLog, error) {
	from, to, err := parseRange(p.From, p.To)
	if err != nil {
		return entity.Caller{}, nil, err
	}

	var (
		caller entity.Caller
		result []entity.AuditLog
	)
	err = s.store.View(ctx, func(snap *entity.Snapshot) error {
		caller = scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.AuditView, caller, authz.Target{}); err != nil {
			return err
		}
		visible := scope.AuditLogs(caller, snap.AuditLogs, scope.AuditFilter{BuyerID: p.BuyerID, SupplierID: p.SupplierID})
		result = make([]entity.AuditLog, 0, len(visible))
		for _, l := range visible {
			day := dayOf(l.Timestamp)
			if !day.Before(from) && !day.After(to) {
				result = append(result, l)
			}
		}
		return nil
	})
	if err != nil {
		return entity.Caller{}, nil, err
	}
	return caller, result, nil
}

// archive sube la copia JSON cuando hay archivador; devuelve la metadata de la exportación.
func (s *Service) archive(ctx context.Context, actorID string, p ExportParams, entries []entity.AuditLog) (map[string]any, error) {
	meta := map[string]any{"from": p.From, "to": p.To, "count": len(entries)}
	if s.archiver == nil {
		return meta, nil
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("codificar exportación: %w", err)
	}
	key := fmt.Sprintf("%s_%s_%s_%d.json", actorID, p.From, p.To, s.rec.Now().Unix())
	location, err := s.archiver.Archive(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("archivar exportación: %w", err)
	}
	meta["archive"] = location
	return meta, nil
}

func (s *Service) recordExport(ctx context.Context, caller entity.Caller, p ExportParams, count int, meta map[string]any) error {
	return s.store.Run(ctx, func(snap *entity.Snapshot) error {
		s.rec.Record(snap, Event{
			Action:     entity.ActionAuditExported,
			Summary:    fmt.Sprintf("Exportación de auditoría %s a %s (%d entradas)", p.From, p.To, count),
			ActorID:    caller.UserID,
			BuyerID:    caller.BuyerID,
			SupplierID: caller.SupplierID,
			EntityType: "audit_log",
			Metadata:   meta,
		})
		return nil
	})
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validation("fecha inicial inválida %q (se espera YYYY-MM-DD)", fromRaw)
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validation("fecha final inválida %q (se espera YYYY-MM-DD)", toRaw)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.Validation("la fecha final es anterior a la inicial")
	}
	if to.Sub(from) > MaxExportDays*24*time.Hour {
		return time.Time{}, time.Time{}, domain.Validation("el rango de exportación no puede superar %d días", MaxExportDays)
	}
	return from, to, nil
}

// dayOf trunca a la fecha UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
