package dto

import "github.com/shopspring/decimal"

// ProductStockDTO existencias.
type ProductStockDTO struct {
	StockLevel   int `json:"stock_level"`
	MinThreshold int `json:"min_threshold"`
	Reserved     int `json:"reserved"`
	LeadTimeDays int `json:"lead_time_days"`
}

// TierPriceDTO precio por nivel de comprador.
type TierPriceDTO struct {
	TierID string          `json:"tier_id"`
	Price  decimal.Decimal `json:"price"`
}

// CreateProductRequest entrada para crear un producto. supplier_id se fuerza al del actor
// salvo para superadmin.
type CreateProductRequest struct {
	SupplierID    string          `json:"supplier_id"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	BasePrice     decimal.Decimal `json:"base_price"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	OriginCountry string          `json:"origin_country"`
	Active        *bool           `json:"active"`
	Category      string          `json:"category"`
	Image         string          `json:"image"`
	Stock         ProductStockDTO `json:"stock"`
	TierPrices    []TierPriceDTO  `json:"tier_prices"`
}

// UpdateProductRequest cambios parciales (el proveedor dueño no cambia).
type UpdateProductRequest struct {
	SKU           *string          `json:"sku"`
	Name          *string          `json:"name"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	Currency      *string          `json:"currency"`
	Description   *string          `json:"description"`
	OriginCountry *string          `json:"origin_country"`
	Active        *bool            `json:"active"`
	Category      *string          `json:"category"`
	Image         *string          `json:"image"`
	Stock         *ProductStockDTO `json:"stock"`
	TierPrices    *[]TierPriceDTO  `json:"tier_prices"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	SupplierID     string          `json:"supplier_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	BasePrice      decimal.Decimal `json:"base_price"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description,omitempty"`
	OriginCountry  string          `json:"origin_country,omitempty"`
	Active         bool            `json:"active"`
	Category       string          `json:"category,omitempty"`
	Image          string          `json:"image,omitempty"`
	Stock          ProductStockDTO `json:"stock"`
	BelowThreshold bool            `json:"below_threshold"`
	TierPrices     []TierPriceDTO  `json:"tier_prices"`
}
