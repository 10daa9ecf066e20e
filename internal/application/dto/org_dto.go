package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierRequest alta o cambio completo de proveedor.
type SupplierRequest struct {
	Name       string   `json:"name" validate:"required"`
	Region     string   `json:"region"`
	Website    string   `json:"website"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Rating     *float64 `json:"rating"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Region     string    `json:"region,omitempty"`
	Website    string    `json:"website,omitempty"`
	Categories []string  `json:"categories"`
	Tags       []string  `json:"tags"`
	Rating     *float64  `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// BuyerRequest alta o cambio completo de empresa compradora.
type BuyerRequest struct {
	Name         string          `json:"name" validate:"required"`
	Channel      string          `json:"channel"`
	Region       string          `json:"region"`
	Website      string          `json:"website"`
	Tags         []string        `json:"tags"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreditUsed   decimal.Decimal `json:"credit_used"`
	PriceTierID  string          `json:"price_tier_id"`
	PaymentTerms string          `json:"payment_terms"`
}

// BuyerResponse salida de una empresa compradora.
type BuyerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Channel         string          `json:"channel,omitempty"`
	Region          string          `json:"region,omitempty"`
	Website         string          `json:"website,omitempty"`
	Tags            []string        `json:"tags"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreditUsed      decimal.Decimal `json:"credit_used"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	PriceTierID     string          `json:"price_tier_id"`
	PaymentTerms    string          `json:"payment_terms"`
	LastOrderDate   *time.Time      `json:"last_order_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BuyerTierResponse nivel de precios.
type BuyerTierResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Multiplier          decimal.Decimal `json:"multiplier"`
	DefaultPaymentTerms string          `json:"default_payment_terms,omitempty"`
}
