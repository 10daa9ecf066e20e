package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25":        "25,00",
		"25000":     "25.000,00",
		"1000000.5": "1.000.000,50",
		"-1234.5":   "-1.234,50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateOrderPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("mayorista-api")
	data := orders.PDFData{
		Order: entity.Order{
			OrderNumber:    "PO-20260101-ABC123",
			Status:         entity.StatusSentToSupplier,
			ApprovalStatus: entity.ApprovalAccepted,
			Items: []entity.OrderLine{
				{ProductID: "p1", Quantity: 10, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(100)},
				{ProductID: "borrado", Quantity: 1, UnitPrice: decimal.NewFromInt(5), LineTotal: decimal.NewFromInt(5)},
			},
			OrderValue: decimal.NewFromInt(105),
			CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Status:   entity.OrderStatus{ID: entity.StatusSentToSupplier, Name: "Sent to Supplier"},
		Buyer:    &entity.Buyer{Name: "Tiendas Uno"},
		Supplier: &entity.Supplier{Name: "Acme"},
		Products: map[string]entity.Product{"p1": {ID: "p1", SKU: "CAF-1", Name: "Café"}},
	}

	body, err := g.GenerateOrderPDF(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRenderAuditExport(t *testing.T) {
	g := NewMarotoPDFGenerator("mayorista-api")
	entries := []entity.AuditLog{
		{Timestamp: time.Now(), Action: entity.ActionOrderCreated, Summary: "Pedido creado", ActorName: "Ana", ActorRole: entity.RoleBuyer, Status: entity.AuditStatusSuccess},
		{Timestamp: time.Now(), Action: entity.ActionUserCreated, Summary: "Usuario creado", Status: entity.AuditStatusSuccess},
	}

	body, err := g.RenderAuditExport(context.Background(), audit.ExportParams{From: "2026-01-01", To: "2026-01-31"}, entries)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
