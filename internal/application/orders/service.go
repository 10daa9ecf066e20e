// Package orders implementa la máquina de estados del pedido con su guardia de autorización.
// Toda escritura corre dentro de Store.Run: o pasa la cadena completa de validaciones y se
// aplican el cambio y su entrada de auditoría, o no cambia nada.
package orders

import (
	"context"
	"errors"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// Observer recibe los eventos del ciclo de vida (métricas).
type Observer interface {
	OrderCreated(status entity.StatusID)
	StatusChanged(from, to entity.StatusID)
	Rejected(operation string, kind error)
}

type nopObserver struct{}

func (nopObserver) OrderCreated(entity.StatusID)                   {}
func (nopObserver) StatusChanged(entity.StatusID, entity.StatusID) {}
func (nopObserver) Rejected(string, error)                         {}

// PDFData datos para la orden de compra impresa.
type PDFData struct {
	Order    entity.Order
	Status   entity.OrderStatus
	Buyer    *entity.Buyer
	Supplier *entity.Supplier
	Products map[string]entity.Product
}

// PDFGenerator genera el PDF de una orden de compra.
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, data PDFData) ([]byte, error)
}

// Service casos de uso de pedidos.
type Service struct {
	store repository.Store
	rec   *audit.Recorder
	obs   Observer
	pdf   PDFGenerator
	log   *logger.Logger
}

// NewService construye el servicio con el store y el registrador de auditoría.
func NewService(store repository.Store, rec *audit.Recorder, log *logger.Logger) *Service {
	return &Service{store: store, rec: rec, obs: nopObserver{}, log: log}
}

// WithObserver registra el observador de métricas.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.obs = o
	}
	return s
}

// WithPDF registra el generador de PDF.
func (s *Service) WithPDF(g PDFGenerator) *Service {
	s.pdf = g
	return s
}

// rejected registra en debug y cuenta el rechazo antes de devolver el error.
func (s *Service) rejected(op, actorID, orderID string, err error) error {
	kind := domain.KindOf(err)
	if kind == nil {
		return err
	}
	s.obs.Rejected(op, kind)
	s.log.Debug().Str("op", op).Str("actor", actorID).Str("order", orderID).Err(err).Msg("operación de pedido rechazada")
	return err
}

var errNoPDF = errors.New("generador de PDF no configurado")
