package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
)

// OrderHandler ciclo de vida de pedidos y catálogo de etapas.
type OrderHandler struct {
	svc *orders.Service
	errorHandler
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service, eh errorHandler) *OrderHandler {
	return &OrderHandler{svc: svc, errorHandler: eh}
}

// List godoc
// @Summary      Listar pedidos visibles
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar pedido
// @Description  Cambios parciales. Si incluye status pasa por las mismas reglas que /move.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Cambios"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover pedido a otra etapa
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.MoveOrderRequest  true  "Etapa destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/move [post]
func (h *OrderHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Move(c.UserContext(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Duplicate godoc
// @Summary      Duplicar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      201  {object}  dto.OrderResponse
// @Router       /api/orders/{id}/duplicate [post]
func (h *OrderHandler) Duplicate(c *fiber.Ctx) error {
	out, err := h.svc.Duplicate(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.svc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}

// PDF godoc
// @Summary      Orden de compra en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	body, filename, err := h.svc.RenderPDF(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(body)
}

// Summary godoc
// @Summary      Resumen de pedidos por etapa
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderSummaryResponse
// @Router       /api/orders/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	out, err := h.svc.Summary(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// ListStatuses godoc
// @Summary      Catálogo de etapas
// @Tags         order-statuses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderStatusResponse
// @Router       /api/order-statuses [get]
func (h *OrderHandler) ListStatuses(c *fiber.Ctx) error {
	out, err := h.svc.ListStatuses(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// AddStatus godoc
// @Summary      Agregar etapa personalizada
// @Tags         order-statuses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderStatusRequest  true  "Nombre"
// @Success      201   {object}  dto.OrderStatusResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/order-statuses [post]
func (h *OrderHandler) AddStatus(c *fiber.Ctx) error {
	var in dto.CreateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.AddStatus(c.UserContext(), GetUserID(c), in.Name)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
