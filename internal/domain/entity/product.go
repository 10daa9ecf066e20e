package entity

import (
	"github.com/shopspring/decimal"
)

// ProductStock sub-registro de existencias del producto.
type ProductStock struct {
	StockLevel   int `json:"stockLevel"`
	MinThreshold int `json:"minThreshold"`
	Reserved     int `json:"reserved,omitempty"`
	LeadTimeDays int `json:"leadTimeDays,omitempty"`
}

// Available existencias no reservadas.
func (s ProductStock) Available() int { return s.StockLevel - s.Reserved }

// BelowThreshold existencias disponibles por debajo del mínimo.
func (s ProductStock) BelowThreshold() bool { return s.Available() < s.MinThreshold }

// TierPrice precio especial por nivel de comprador.
type TierPrice struct {
	TierID string          `json:"tierId"`
	Price  decimal.Decimal `json:"price"`
}

// Product SKU del catálogo de un proveedor. SKU único por proveedor.
type Product struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplierId"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	OriginCountry string          `json:"originCountry,omitempty"`
	Active        bool            `json:"active"`
	Category      string          `json:"category,omitempty"`
	Image         string          `json:"image,omitempty"`
	Stock         ProductStock    `json:"stock"`
	TierPrices    []TierPrice     `json:"tierPrices"`
}

// PriceFor precio para un nivel; si no hay precio especial usa BasePrice.
func (p *Product) PriceFor(tierID string) decimal.Decimal {
	for _, tp := range p.TierPrices {
		if tp.TierID == tierID {
			return tp.Price
		}
	}
	return p.BasePrice
}
