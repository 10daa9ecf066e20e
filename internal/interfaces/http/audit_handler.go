package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// AuditHandler consulta y exportación del rastro de auditoría.
type AuditHandler struct {
	svc *audit.Service
	errorHandler
}

// NewAuditHandler construye el handler.
func NewAuditHandler(svc *audit.Service, eh errorHandler) *AuditHandler {
	return &AuditHandler{svc: svc, errorHandler: eh}
}

// List godoc
// @Summary      Listar auditoría (20 por página)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        cursor       query  int     false  "Índice de inicio (next_cursor.index)"
// @Param        buyer_id     query  string  false  "Filtrar por comprador"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Success      200  {object}  dto.AuditLogPageResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	p := audit.ListParams{BuyerID: c.Query("buyer_id"), SupplierID: c.Query("supplier_id")}
	if raw := c.Query("cursor"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cursor debe ser un entero"})
		}
		p.Cursor = &audit.Cursor{Index: idx}
	}
	page, err := h.svc.List(c.UserContext(), GetUserID(c), p)
	if err != nil {
		return h.respond(c, err)
	}
	out := dto.AuditLogPageResponse{Items: toAuditResponses(page.Items)}
	if page.NextCursor != nil {
		out.NextCursor = &dto.AuditCursor{Index: page.NextCursor.Index}
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar auditoría por rango de fechas (máximo 365 días)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        from         query  string  true   "YYYY-MM-DD"
// @Param        to           query  string  true   "YYYY-MM-DD"
// @Param        buyer_id     query  string  false  "Filtrar por comprador"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        format       query  string  false  "json (default) o pdf"
// @Success      200  {array}  dto.AuditLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit-logs/export [get]
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	p := audit.ExportParams{
		From:       c.Query("from"),
		To:         c.Query("to"),
		BuyerID:    c.Query("buyer_id"),
		SupplierID: c.Query("supplier_id"),
	}
	switch format := c.Query("format", "json"); format {
	case "json":
		entries, err := h.svc.Export(c.UserContext(), GetUserID(c), p)
		if err != nil {
			return h.respond(c, err)
		}
		return c.JSON(toAuditResponses(entries))
	case "pdf":
		body, err := h.svc.ExportPDF(c.UserContext(), GetUserID(c), p)
		if err != nil {
			return h.respond(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "auditoria_"+p.From+"_"+p.To+".pdf"))
		return c.Send(body)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o pdf"})
	}
}

func toAuditResponses(in []entity.AuditLog) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, len(in))
	for _, l := range in {
		out = append(out, dto.AuditLogResponse{
			ID:         l.ID,
			Timestamp:  l.Timestamp,
			Action:     l.Action,
			Summary:    l.Summary,
			ActorID:    l.ActorID,
			ActorName:  l.ActorName,
			ActorRole:  string(l.ActorRole),
			BuyerID:    l.BuyerID,
			SupplierID: l.SupplierID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Status:     l.Status,
			Source:     l.Source,
			Metadata:   l.Metadata,
		})
	}
	return out
}
