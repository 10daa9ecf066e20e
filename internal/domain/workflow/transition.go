package workflow

import (
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// Plan resultado de validar una petición de cambio de estado.
type Plan struct {
	From      entity.StatusID
	Requested entity.StatusID // id pedido por el actor (se audita tal cual)
	Target    entity.StatusID // id normalizado que se guarda
}

// PlanMove valida existencia, normaliza sinónimos y exige avance hacia adelante.
// No depende del actor: cualquier retroceso falla con InvalidTransition.
func (c Catalog) PlanMove(current, requested entity.StatusID) (Plan, error) {
	if !c.Has(requested) {
		return Plan{}, domain.Validation("estado desconocido: %s", requested)
	}
	target := Normalize(requested)
	if err := c.AssertForward(current, target); err != nil {
		return Plan{}, err
	}
	return Plan{From: current, Requested: requested, Target: target}, nil
}

// CheckPhase precondiciones de fase para un cambio ya autorizado:
//   - las etapas de rechazo son terminales;
//   - nadie mueve un pedido que sigue en el circuito interno del comprador
//     (solo sale de ahí por aprobación);
//   - shipped exige aceptación previa del proveedor;
//   - completed exige envío previo.
func CheckPhase(p Plan) error {
	if IsTerminal(p.From) && p.Target != p.From {
		return domain.InvalidTransition("el pedido está en estado terminal %s", p.From)
	}
	if IsPreApproval(p.From) {
		return domain.InvalidTransition("no se puede actuar sobre pedidos que no fueron enviados al proveedor")
	}
	switch p.Target {
	case entity.StatusShipped:
		if !IsAccepted(p.From) && p.From != entity.StatusShipped {
			return domain.InvalidTransition("el pedido debe ser aceptado por el proveedor antes del envío")
		}
	case entity.StatusCompleted:
		if p.From != entity.StatusShipped && p.From != entity.StatusCompleted {
			return domain.InvalidTransition("el pedido debe estar enviado antes de completarse")
		}
	}
	return nil
}

// RequiresBuyerApproval un pedido creado por un comprador raso no puede avanzar más allá
// de pending sin aprobación aceptada.
func (c Catalog) RequiresBuyerApproval(creatorRole entity.Role, target entity.StatusID, approval entity.ApprovalStatus) bool {
	movingForward := c.Rank(target) > c.Rank(entity.StatusPending)
	return creatorRole == entity.RoleBuyer && movingForward && approval != entity.ApprovalAccepted
}
