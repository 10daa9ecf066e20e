package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/scope"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/authz"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// OrgUseCase altas, cambios y bajas de proveedores y empresas compradoras (solo superadmin).
type OrgUseCase struct {
	store repository.Store
	rec   *audit.Recorder
	log   *logger.Logger
}

// NewOrgUseCase construye el caso de uso.
func NewOrgUseCase(store repository.Store, rec *audit.Recorder, log *logger.Logger) *OrgUseCase {
	return &OrgUseCase{store: store, rec: rec, log: log}
}

// ─── Proveedores ────────────────────────────────────────────────────────────

// ListSuppliers proveedores visibles para el actor.
func (uc *OrgUseCase) ListSuppliers(ctx context.Context, actorID string) ([]dto.SupplierResponse, error) {
	out := []dto.SupplierResponse{}
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		for _, s := range scope.Suppliers(scope.Resolve(snap, actorID), snap.Suppliers) {
			out = append(out, toSupplierResponse(&s))
		}
		return nil
	})
	return out, err
}

// CreateSupplier crea un proveedor.
func (uc *OrgUseCase) CreateSupplier(ctx context.Context, actorID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	var created entity.Supplier
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.SupplierManage, caller, authz.Target{}); err != nil {
			return err
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return domain.Validation("el nombre del proveedor es obligatorio")
		}
		s := entity.Supplier{ID: uuid.New().String(), CreatedAt: uc.rec.Now()}
		applySupplier(&s, in)
		snap.Suppliers = append(snap.Suppliers, s)
		uc.recordSupplier(snap, caller, entity.ActionSupplierCreated, "creado", &s)
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("supplier", created.ID).Str("actor", actorID).Msg("proveedor creado")
	resp := toSupplierResponse(&created)
	return &resp, nil
}

// UpdateSupplier reemplaza los datos del proveedor.
func (uc *OrgUseCase) UpdateSupplier(ctx context.Context, actorID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	var updated entity.Supplier
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.SupplierManage, caller, authz.Target{}); err != nil {
			return err
		}
		s := snap.FindSupplier(id)
		if s == nil {
			return domain.NotFound("proveedor %s no encontrado", id)
		}
		if strings.TrimSpace(in.Name) == "" {
			return domain.Validation("el nombre del proveedor es obligatorio")
		}
		applySupplier(s, in)
		uc.recordSupplier(snap, caller, entity.ActionSupplierUpdated, "actualizado", s)
		updated = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toSupplierResponse(&updated)
	return &resp, nil
}

// DeleteSupplier elimina un proveedor sin usuarios, productos ni pedidos asociados.
func (uc *OrgUseCase) DeleteSupplier(ctx context.Context, actorID, id string) error {
	return uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.SupplierManage, caller, authz.Target{}); err != nil {
			return err
		}
		s := snap.FindSupplier(id)
		if s == nil {
			return domain.NotFound("proveedor %s no encontrado", id)
		}
		if n := supplierRefs(snap, id); n > 0 {
			return domain.Conflict("el proveedor %s tiene %d registros asociados", s.Name, n)
		}
		removed := *s
		snap.RemoveSupplier(id)
		uc.recordSupplier(snap, caller, entity.ActionSupplierDeleted, "eliminado", &removed)
		return nil
	})
}

func (uc *OrgUseCase) recordSupplier(snap *entity.Snapshot, caller entity.Caller, action, verb string, s *entity.Supplier) {
	uc.rec.Record(snap, audit.Event{
		Action:     action,
		Summary:    fmt.Sprintf("Proveedor %s %s", s.Name, verb),
		ActorID:    caller.UserID,
		SupplierID: s.ID,
		EntityType: "supplier",
		EntityID:   s.ID,
		EntityName: s.Name,
	})
}

func supplierRefs(snap *entity.Snapshot, id string) int {
	n := 0
	for _, u := range snap.Users {
		if u.SupplierID == id {
			n++
		}
	}
	for _, p := range snap.Products {
		if p.SupplierID == id {
			n++
		}
	}
	for _, o := range snap.Orders {
		if o.SupplierID == id {
			n++
		}
	}
	return n
}

func applySupplier(s *entity.Supplier, in dto.SupplierRequest) {
	s.Name = strings.TrimSpace(in.Name)
	s.Region = in.Region
	s.Website = in.Website
	s.Categories = nonNil(in.Categories)
	s.Tags = in.Tags
	s.Rating = in.Rating
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		Region:     s.Region,
		Website:    s.Website,
		Categories: nonNil(s.Categories),
		Tags:       nonNil(s.Tags),
		Rating:     s.Rating,
		CreatedAt:  s.CreatedAt,
	}
}

// ─── Empresas compradoras ───────────────────────────────────────────────────

// ListBuyers empresas compradoras visibles para el actor.
func (uc *OrgUseCase) ListBuyers(ctx context.Context, actorID string) ([]dto.BuyerResponse, error) {
	out := []dto.BuyerResponse{}
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		for _, b := range scope.Buyers(scope.Resolve(snap, actorID), snap.Buyers, snap.Orders) {
			out = append(out, toBuyerResponse(&b))
		}
		return nil
	})
	return out, err
}

// ListTiers niveles de precio; visibles para cualquier usuario autenticado.
func (uc *OrgUseCase) ListTiers(ctx context.Context, actorID string) ([]dto.BuyerTierResponse, error) {
	out := []dto.BuyerTierResponse{}
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		if scope.Resolve(snap, actorID).Anonymous() {
			return nil
		}
		for _, t := range snap.BuyerTiers {
			out = append(out, dto.BuyerTierResponse{
				ID:                  t.ID,
				Name:                t.Name,
				Description:         t.Description,
				Multiplier:          t.Multiplier,
				DefaultPaymentTerms: t.DefaultPaymentTerms,
			})
		}
		return nil
	})
	return out, err
}

// CreateBuyer crea una empresa compradora. Sin términos de pago usa los del nivel.
func (uc *OrgUseCase) CreateBuyer(ctx context.Context, actorID string, in dto.BuyerRequest) (*dto.BuyerResponse, error) {
	var created entity.Buyer
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.BuyerManage, caller, authz.Target{}); err != nil {
			return err
		}
		b := entity.Buyer{ID: uuid.New().String(), CreatedAt: uc.rec.Now()}
		if err := applyBuyer(snap, &b, in); err != nil {
			return err
		}
		snap.Buyers = append(snap.Buyers, b)
		uc.recordBuyer(snap, caller, entity.ActionBuyerCreated, "creada", &b)
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("buyer", created.ID).Str("actor", actorID).Msg("empresa compradora creada")
	resp := toBuyerResponse(&created)
	return &resp, nil
}

// UpdateBuyer reemplaza los datos de la empresa compradora.
func (uc *OrgUseCase) UpdateBuyer(ctx context.Context, actorID, id string, in dto.BuyerRequest) (*dto.BuyerResponse, error) {
	var updated entity.Buyer
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.BuyerManage, caller, authz.Target{}); err != nil {
			return err
		}
		b := snap.FindBuyer(id)
		if b == nil {
			return domain.NotFound("empresa compradora %s no encontrada", id)
		}
		next := *b
		if err := applyBuyer(snap, &next, in); err != nil {
			return err
		}
		*b = next
		uc.recordBuyer(snap, caller, entity.ActionBuyerUpdated, "actualizada", b)
		updated = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toBuyerResponse(&updated)
	return &resp, nil
}

// DeleteBuyer elimina una empresa compradora sin usuarios ni pedidos asociados.
func (uc *OrgUseCase) DeleteBuyer(ctx context.Context, actorID, id string) error {
	return uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.BuyerManage, caller, authz.Target{}); err != nil {
			return err
		}
		b := snap.FindBuyer(id)
		if b == nil {
			return domain.NotFound("empresa compradora %s no encontrada", id)
		}
		refs := 0
		for _, u := range snap.Users {
			if u.BuyerID == id {
				refs++
			}
		}
		for _, o := range snap.Orders {
			if o.BuyerID == id {
				refs++
			}
		}
		if refs > 0 {
			return domain.Conflict("la empresa compradora %s tiene %d registros asociados", b.Name, refs)
		}
		removed := *b
		snap.RemoveBuyer(id)
		uc.recordBuyer(snap, caller, entity.ActionBuyerDeleted, "eliminada", &removed)
		return nil
	})
}

func (uc *OrgUseCase) recordBuyer(snap *entity.Snapshot, caller entity.Caller, action, verb string, b *entity.Buyer) {
	uc.rec.Record(snap, audit.Event{
		Action:     action,
		Summary:    fmt.Sprintf("Empresa compradora %s %s", b.Name, verb),
		ActorID:    caller.UserID,
		BuyerID:    b.ID,
		EntityType: "buyer",
		EntityID:   b.ID,
		EntityName: b.Name,
	})
}

func applyBuyer(snap *entity.Snapshot, b *entity.Buyer, in dto.BuyerRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Validation("el nombre de la empresa compradora es obligatorio")
	}
	if in.CreditLimit.IsNegative() || in.CreditUsed.IsNegative() {
		return domain.Validation("los montos de crédito no pueden ser negativos")
	}
	terms := in.PaymentTerms
	if in.PriceTierID != "" {
		tier := findTier(snap, in.PriceTierID)
		if tier == nil {
			return domain.NotFound("nivel de precios %s no encontrado", in.PriceTierID)
		}
		if terms == "" {
			terms = tier.DefaultPaymentTerms
		}
	}
	b.Name = name
	b.Channel = in.Channel
	b.Region = in.Region
	b.Website = in.Website
	b.Tags = nonNil(in.Tags)
	b.CreditLimit = in.CreditLimit
	b.CreditUsed = in.CreditUsed
	b.PriceTierID = in.PriceTierID
	b.PaymentTerms = terms
	return nil
}

func findTier(snap *entity.Snapshot, id string) *entity.BuyerTier {
	for i := range snap.BuyerTiers {
		if snap.BuyerTiers[i].ID == id {
			return &snap.BuyerTiers[i]
		}
	}
	return nil
}

func toBuyerResponse(b *entity.Buyer) dto.BuyerResponse {
	return dto.BuyerResponse{
		ID:              b.ID,
		Name:            b.Name,
		Channel:         b.Channel,
		Region:          b.Region,
		Website:         b.Website,
		Tags:            nonNil(b.Tags),
		CreditLimit:     b.CreditLimit,
		CreditUsed:      b.CreditUsed,
		AvailableCredit: b.AvailableCredit(),
		PriceTierID:     b.PriceTierID,
		PaymentTerms:    b.PaymentTerms,
		LastOrderDate:   b.LastOrderDate,
		CreatedAt:       b.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
