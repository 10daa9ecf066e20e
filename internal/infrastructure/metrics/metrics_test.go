package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

func TestObserver_CuentaTransicionesYRechazos(t *testing.T) {
	m := New("test")

	m.OrderCreated(entity.StatusPendingBuyerApproval)
	m.StatusChanged(entity.StatusSentToSupplier, entity.StatusAcceptedBySupplier)
	m.StatusChanged(entity.StatusSentToSupplier, entity.StatusAcceptedBySupplier)
	m.Rejected("move", domain.ErrInvalidTransition)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("pending_buyer_approval")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("sent_to_supplier", "accepted_by_supplier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("move", "invalid_transition")))
}

func TestObserveHTTP(t *testing.T) {
	m := New("test")
	m.ObserveHTTP("GET", "/api/orders", "200", 15*time.Millisecond)
	m.LoginAttempt(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/orders", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("error")))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "conflict", KindLabel(domain.Conflict("x")))
	assert.Equal(t, "not_found", KindLabel(domain.NotFound("x")))
	assert.Equal(t, "internal", KindLabel(assert.AnError))
}
