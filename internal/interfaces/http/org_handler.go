package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/usecase"
)

// OrgHandler proveedores, compradores y niveles de precio.
type OrgHandler struct {
	uc *usecase.OrgUseCase
	errorHandler
}

// NewOrgHandler construye el handler.
func NewOrgHandler(uc *usecase.OrgUseCase, eh errorHandler) *OrgHandler {
	return &OrgHandler{uc: uc, errorHandler: eh}
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *OrgHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear proveedor (superadmin)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *OrgHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSupplier(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor (superadmin)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [patch]
func (h *OrgHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSupplier(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor (superadmin)
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *OrgHandler) DeleteSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.DeleteSupplier(c.UserContext(), GetUserID(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}

// ListBuyers godoc
// @Summary      Listar compradores visibles
// @Tags         buyers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BuyerResponse
// @Router       /api/buyers [get]
func (h *OrgHandler) ListBuyers(c *fiber.Ctx) error {
	out, err := h.uc.ListBuyers(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateBuyer godoc
// @Summary      Crear comprador (superadmin)
// @Tags         buyers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BuyerRequest  true  "Datos del comprador"
// @Success      201   {object}  dto.BuyerResponse
// @Router       /api/buyers [post]
func (h *OrgHandler) CreateBuyer(c *fiber.Ctx) error {
	var in dto.BuyerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBuyer(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateBuyer godoc
// @Summary      Actualizar comprador (superadmin)
// @Tags         buyers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del comprador"
// @Param        body  body  dto.BuyerRequest  true  "Datos del comprador"
// @Success      200   {object}  dto.BuyerResponse
// @Router       /api/buyers/{id} [patch]
func (h *OrgHandler) UpdateBuyer(c *fiber.Ctx) error {
	var in dto.BuyerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateBuyer(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// DeleteBuyer godoc
// @Summary      Eliminar comprador (superadmin)
// @Tags         buyers
// @Security     Bearer
// @Param        id   path  string  true  "ID del comprador"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/buyers/{id} [delete]
func (h *OrgHandler) DeleteBuyer(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.DeleteBuyer(c.UserContext(), GetUserID(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}

// ListTiers godoc
// @Summary      Niveles de precio
// @Tags         buyers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BuyerTierResponse
// @Router       /api/buyer-tiers [get]
func (h *OrgHandler) ListTiers(c *fiber.Ctx) error {
	out, err := h.uc.ListTiers(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
