// Package metrics expone métricas Prometheus del API: peticiones HTTP, intentos de login
// y eventos del ciclo de vida de pedidos.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

var _ orders.Observer = (*Metrics)(nil)

// Metrics colectores en un registro propio (no el global) para poder instanciar varios en tests.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	created      *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// New registra los colectores con el prefijo dado (METRICS_PREFIX).
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		created: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_orders_created_total",
			Help: "Orders created by initial status",
		}, []string{"status"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_order_transitions_total",
			Help: "Order status transitions",
		}, []string{"from", "to"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_order_rejections_total",
			Help: "Rejected order operations by operation and error kind",
		}, []string{"operation", "kind"}),
	}
}

// Handler endpoint /metrics sobre el registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveHTTP registra una petición. path es la ruta de la plantilla, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// LoginAttempt cuenta un intento de login.
func (m *Metrics) LoginAttempt(ok bool) {
	result := "error"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) OrderCreated(status entity.StatusID) {
	m.created.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) StatusChanged(from, to entity.StatusID) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) Rejected(op string, kind error) {
	m.rejections.WithLabelValues(op, KindLabel(kind)).Inc()
}

// KindLabel nombre estable del tipo de error de dominio.
func KindLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	}
	return "internal"
}
