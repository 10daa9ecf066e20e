// Package workflow define el catálogo de etapas del pedido y las reglas de transición
// que no dependen del actor: existencia, sinónimos, avance solo hacia adelante y fases.
package workflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// CustomRankBase rango de la primera etapa personalizada; todas van después de las reservadas.
const CustomRankBase = 100

// reserved orden total fijo de las etapas reservadas. confirmed comparte rango con
// accepted_by_supplier: son la misma etapa con dos ids.
var reserved = []entity.OrderStatus{
	{ID: entity.StatusDraft, Name: "Draft", Order: 0, Reserved: true},
	{ID: entity.StatusPendingBuyerApproval, Name: "Pending Buyer Approval", Order: 1, Reserved: true},
	{ID: entity.StatusRejectedByBuyer, Name: "Rejected by Buyer", Order: 2, Reserved: true},
	{ID: entity.StatusSentToSupplier, Name: "Sent to Supplier", Order: 3, Reserved: true},
	{ID: entity.StatusPending, Name: "Pending", Order: 4, Reserved: true},
	{ID: entity.StatusRejectedBySupplier, Name: "Rejected by Supplier", Order: 5, Reserved: true},
	{ID: entity.StatusAcceptedBySupplier, Name: "Accepted by Supplier", Order: 6, Reserved: true},
	{ID: entity.StatusConfirmed, Name: "Confirmed", Order: 6, Reserved: true},
	{ID: entity.StatusShipped, Name: "Shipped", Order: 7, Reserved: true},
	{ID: entity.StatusCompleted, Name: "Completed", Order: 8, Reserved: true},
}

// ReservedStatuses copia del catálogo reservado.
func ReservedStatuses() []entity.OrderStatus {
	return append([]entity.OrderStatus(nil), reserved...)
}

// IsReserved indica si el id es una etapa reservada.
func IsReserved(id entity.StatusID) bool {
	for _, s := range reserved {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Normalize aplica los sinónimos externos: confirmed se guarda como accepted_by_supplier.
func Normalize(id entity.StatusID) entity.StatusID {
	if id == entity.StatusConfirmed {
		return entity.StatusAcceptedBySupplier
	}
	return id
}

// IsPreApproval etapas internas del comprador que el proveedor nunca ve.
func IsPreApproval(id entity.StatusID) bool {
	switch id {
	case entity.StatusDraft, entity.StatusPendingBuyerApproval, entity.StatusRejectedByBuyer:
		return true
	}
	return false
}

// IsTerminal etapas de rechazo: no admiten más cambios de estado.
func IsTerminal(id entity.StatusID) bool {
	return id == entity.StatusRejectedByBuyer || id == entity.StatusRejectedBySupplier
}

// IsAccepted aceptado por el proveedor (cualquiera de los dos ids).
func IsAccepted(id entity.StatusID) bool {
	return id == entity.StatusAcceptedBySupplier || id == entity.StatusConfirmed
}

// Catalog vista de solo lectura del catálogo con rangos resueltos.
type Catalog struct {
	ranks map[entity.StatusID]float64
}

// NewCatalog construye el catálogo: las etapas reservadas siempre usan su rango fijo;
// las personalizadas, el rango persistido.
func NewCatalog(statuses []entity.OrderStatus) Catalog {
	c := Catalog{ranks: make(map[entity.StatusID]float64, len(reserved)+len(statuses))}
	for _, s := range reserved {
		c.ranks[s.ID] = s.Order
	}
	for _, s := range statuses {
		if IsReserved(s.ID) {
			continue
		}
		c.ranks[s.ID] = s.Order
	}
	return c
}

// Has indica si el id existe en el catálogo.
func (c Catalog) Has(id entity.StatusID) bool {
	_, ok := c.ranks[id]
	return ok
}

// Rank rango de la etapa. Una etapa desconocida (dato antiguo) se considera al final.
func (c Catalog) Rank(id entity.StatusID) float64 {
	if r, ok := c.ranks[id]; ok {
		return r
	}
	return float64(1 << 53)
}

// AssertForward falla si next está antes que current.
func (c Catalog) AssertForward(current, next entity.StatusID) error {
	if c.Rank(next) < c.Rank(current) {
		return domain.InvalidTransition("transición inválida: no se puede retroceder de %s a %s", current, next)
	}
	return nil
}

// NextCustom crea la siguiente etapa personalizada a partir de un nombre legible.
// El id es un slug ASCII del nombre; falla si está vacío o ya existe.
func NextCustom(statuses []entity.OrderStatus, name string) (entity.OrderStatus, error) {
	name = strings.TrimSpace(name)
	id := entity.StatusID(Slug(name))
	if id == "" {
		return entity.OrderStatus{}, domain.Validation("el nombre de la etapa es obligatorio")
	}
	rank := float64(CustomRankBase - 1)
	for _, s := range statuses {
		if s.ID == id {
			return entity.OrderStatus{}, domain.Conflict("la etapa %s ya existe", id)
		}
		if !IsReserved(s.ID) && s.Order > rank {
			rank = s.Order
		}
	}
	if IsReserved(id) {
		return entity.OrderStatus{}, domain.Conflict("la etapa %s es reservada", id)
	}
	return entity.OrderStatus{ID: id, Name: name, Order: rank + 1}, nil
}

// Slug "Control de Calidad" -> "control-de-calidad"; elimina tildes y símbolos.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-':
			if b.Len() > 0 && !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
