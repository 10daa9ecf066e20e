package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
)

// LoginObserver cuenta intentos de login (métricas).
type LoginObserver interface {
	LoginAttempt(ok bool)
}

type nopLoginObserver struct{}

func (nopLoginObserver) LoginAttempt(bool) {}

// AuthHandler maneja login y la identidad actual.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	obs LoginObserver
	errorHandler
}

// NewAuthHandler construye el handler de auth. obs puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, obs LoginObserver, eh errorHandler) *AuthHandler {
	if obs == nil {
		obs = nopLoginObserver{}
	}
	return &AuthHandler{uc: uc, obs: obs, errorHandler: eh}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	h.obs.LoginAttempt(err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
