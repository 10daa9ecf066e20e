package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mayorista-api/internal/domain"
)

func TestError_KindYMensaje(t *testing.T) {
	err := domain.Unauthorized("solo %s puede crear proveedores", "superadmin")

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "solo superadmin puede crear proveedores", err.Error())
}

func TestKindOf_AtraviesaWrapping(t *testing.T) {
	wrapped := fmt.Errorf("mover pedido: %w", domain.InvalidTransition("no se puede retroceder"))

	assert.Equal(t, domain.ErrInvalidTransition, domain.KindOf(wrapped))
	assert.Nil(t, domain.KindOf(errors.New("fallo de red")))
}
