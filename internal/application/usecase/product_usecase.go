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

// DefaultCurrency moneda de un producto creado sin moneda explícita.
const DefaultCurrency = "USD"

// ProductUseCase catálogo de productos por proveedor. SKU único por proveedor.
type ProductUseCase struct {
	store repository.Store
	rec   *audit.Recorder
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store, rec *audit.Recorder, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{store: store, rec: rec, log: log}
}

// List productos visibles para el actor.
func (uc *ProductUseCase) List(ctx context.Context, actorID string) ([]dto.ProductResponse, error) {
	out := []dto.ProductResponse{}
	err := uc.store.View(ctx, func(snap *entity.Snapshot) error {
		for _, p := range scope.Products(scope.Resolve(snap, actorID), snap.Products) {
			out = append(out, toProductResponse(&p))
		}
		return nil
	})
	return out, err
}

// Create crea un producto. El proveedor se toma del actor salvo para superadmin.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var created entity.Product
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		caller := scope.Resolve(snap, actorID)
		supplierID := in.SupplierID
		if !caller.IsSuperAdmin() && caller.EffectiveFamily() == entity.FamilySupplier && supplierID == "" {
			supplierID = caller.SupplierID
		}
		if err := authz.CanPerform(authz.ProductWrite, caller, authz.Target{SupplierID: supplierID}); err != nil {
			return err
		}
		if snap.FindSupplier(supplierID) == nil {
			return domain.NotFound("proveedor %s no encontrado", supplierID)
		}

		p := entity.Product{
			ID:            uuid.New().String(),
			SupplierID:    supplierID,
			Name:          strings.TrimSpace(in.Name),
			SKU:           strings.TrimSpace(in.SKU),
			BasePrice:     in.BasePrice,
			Currency:      in.Currency,
			Description:   in.Description,
			OriginCountry: in.OriginCountry,
			Active:        true,
			Category:      in.Category,
			Image:         in.Image,
			Stock:         toStock(in.Stock),
			TierPrices:    toTierPrices(in.TierPrices),
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		if p.Currency == "" {
			p.Currency = DefaultCurrency
		}
		if err := validateProduct(snap, &p); err != nil {
			return err
		}

		snap.Products = append(snap.Products, p)
		uc.recordProduct(snap, caller, entity.ActionProductCreated, "creado", &p, nil)
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product", created.ID).Str("sku", created.SKU).Str("actor", actorID).Msg("producto creado")
	resp := toProductResponse(&created)
	return &resp, nil
}

// Update cambios parciales de un producto. El proveedor dueño no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated entity.Product
	err := uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		existing := snap.FindProduct(id)
		if existing == nil {
			return domain.NotFound("producto %s no encontrado", id)
		}
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.ProductWrite, caller, authz.Target{SupplierID: existing.SupplierID}); err != nil {
			return err
		}

		next := *existing
		var changed []string
		str := func(name string, dst, src *string) {
			if src != nil && strings.TrimSpace(*src) != *dst {
				*dst = strings.TrimSpace(*src)
				changed = append(changed, name)
			}
		}
		str("sku", &next.SKU, in.SKU)
		str("name", &next.Name, in.Name)
		str("currency", &next.Currency, in.Currency)
		str("description", &next.Description, in.Description)
		str("originCountry", &next.OriginCountry, in.OriginCountry)
		str("category", &next.Category, in.Category)
		str("image", &next.Image, in.Image)
		if in.BasePrice != nil && !in.BasePrice.Equal(next.BasePrice) {
			next.BasePrice = *in.BasePrice
			changed = append(changed, "basePrice")
		}
		if in.Active != nil && *in.Active != next.Active {
			next.Active = *in.Active
			changed = append(changed, "active")
		}
		if in.Stock != nil {
			next.Stock = toStock(*in.Stock)
			changed = append(changed, "stock")
		}
		if in.TierPrices != nil {
			next.TierPrices = toTierPrices(*in.TierPrices)
			changed = append(changed, "tierPrices")
		}
		if len(changed) == 0 {
			updated = *existing
			return nil
		}
		if err := validateProduct(snap, &next); err != nil {
			return err
		}
		*existing = next
		uc.recordProduct(snap, caller, entity.ActionProductUpdated, "actualizado", existing, map[string]any{"fields": changed})
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(&updated)
	return &resp, nil
}

// Delete elimina un producto. Las líneas de pedido que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, id string) error {
	return uc.store.Run(ctx, func(snap *entity.Snapshot) error {
		existing := snap.FindProduct(id)
		if existing == nil {
			return domain.NotFound("producto %s no encontrado", id)
		}
		caller := scope.Resolve(snap, actorID)
		if err := authz.CanPerform(authz.ProductWrite, caller, authz.Target{SupplierID: existing.SupplierID}); err != nil {
			return err
		}
		removed := *existing
		snap.RemoveProduct(id)
		uc.recordProduct(snap, caller, entity.ActionProductDeleted, "eliminado", &removed, nil)
		return nil
	})
}

func (uc *ProductUseCase) recordProduct(snap *entity.Snapshot, caller entity.Caller, action, verb string, p *entity.Product, meta map[string]any) {
	uc.rec.Record(snap, audit.Event{
		Action:     action,
		Summary:    fmt.Sprintf("Producto %s %s", p.Name, verb),
		ActorID:    caller.UserID,
		SupplierID: p.SupplierID,
		EntityType: "product",
		EntityID:   p.ID,
		EntityName: p.Name,
		Metadata:   meta,
	})
}

// validateProduct campos obligatorios, montos no negativos y SKU único dentro del proveedor.
func validateProduct(snap *entity.Snapshot, p *entity.Product) error {
	if p.SKU == "" || p.Name == "" {
		return domain.Validation("sku y nombre son obligatorios")
	}
	if p.BasePrice.IsNegative() {
		return domain.Validation("el precio base no puede ser negativo")
	}
	for _, tp := range p.TierPrices {
		if tp.TierID == "" || tp.Price.IsNegative() {
			return domain.Validation("precio por nivel inválido")
		}
	}
	if p.Stock.StockLevel < 0 || p.Stock.MinThreshold < 0 || p.Stock.Reserved < 0 {
		return domain.Validation("las existencias no pueden ser negativas")
	}
	for _, other := range snap.Products {
		if other.ID != p.ID && other.SupplierID == p.SupplierID && strings.EqualFold(other.SKU, p.SKU) {
			return domain.Conflict("el SKU %s ya existe para este proveedor", p.SKU)
		}
	}
	return nil
}

func toStock(s dto.ProductStockDTO) entity.ProductStock {
	return entity.ProductStock{
		StockLevel:   s.StockLevel,
		MinThreshold: s.MinThreshold,
		Reserved:     s.Reserved,
		LeadTimeDays: s.LeadTimeDays,
	}
}

func toTierPrices(in []dto.TierPriceDTO) []entity.TierPrice {
	out := make([]entity.TierPrice, 0, len(in))
	for _, tp := range in {
		out = append(out, entity.TierPrice{TierID: tp.TierID, Price: tp.Price})
	}
	return out
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	tiers := make([]dto.TierPriceDTO, 0, len(p.TierPrices))
	for _, tp := range p.TierPrices {
		tiers = append(tiers, dto.TierPriceDTO{TierID: tp.TierID, Price: tp.Price})
	}
	return dto.ProductResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		SKU:           p.SKU,
		Name:          p.Name,
		BasePrice:     p.BasePrice,
		Currency:      p.Currency,
		Description:   p.Description,
		OriginCountry: p.OriginCountry,
		Active:        p.Active,
		Category:      p.Category,
		Image:         p.Image,
		Stock: dto.ProductStockDTO{
			StockLevel:   p.Stock.StockLevel,
			MinThreshold: p.Stock.MinThreshold,
			Reserved:     p.Stock.Reserved,
			LeadTimeDays: p.Stock.LeadTimeDays,
		},
		BelowThreshold: p.Stock.BelowThreshold(),
		TierPrices:     tiers,
	}
}
