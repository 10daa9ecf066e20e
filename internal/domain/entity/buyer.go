package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buyer organización compradora (tenant de compras).
type Buyer struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Channel       string          `json:"channel,omitempty"`
	Region        string          `json:"region,omitempty"`
	Website       string          `json:"website,omitempty"`
	Tags          []string        `json:"tags"`
	OwnerID       string          `json:"ownerId,omitempty"`
	Health        string          `json:"health,omitempty"` // healthy, watch, at-risk
	CreditLimit   decimal.Decimal `json:"creditLimit"`
	CreditUsed    decimal.Decimal `json:"creditUsed"`
	PriceTierID   string          `json:"priceTierId"`
	PaymentTerms  string          `json:"paymentTerms"`
	LastOrderDate *time.Time      `json:"lastOrderDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AvailableCredit crédito disponible (límite - usado), nunca negativo.
func (b *Buyer) AvailableCredit() decimal.Decimal {
	avail := b.CreditLimit.Sub(b.CreditUsed)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// BuyerTier nivel de precios aplicable a compradores.
type BuyerTier struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Multiplier          decimal.Decimal `json:"multiplier"`
	DefaultPaymentTerms string          `json:"defaultPaymentTerms,omitempty"`
}
