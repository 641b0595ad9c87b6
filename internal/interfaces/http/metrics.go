package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores Prometheus de la API.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	reports  *prometheus.CounterVec
	backups  *prometheus.CounterVec
}

// NewMetrics registra las métricas en reg. Cada app usa su propio registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Reportes exportados por recurso y formato",
		}, []string{"resource", "format"}),
		backups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backups_total",
			Help: "Respaldos ejecutados por estado final",
		}, []string{"status"}),
	}
}

// Las etiquetas se copian antes de registrarlas: los strings de fiber.Ctx apuntan a buffers
// que se reutilizan al terminar la petición.
func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	method, route = utils.CopyString(method), utils.CopyString(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) reportGenerated(resource, format string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(resource, utils.CopyString(format)).Inc()
}

func (m *Metrics) backupFinished(status string) {
	if m == nil {
		return
	}
	m.backups.WithLabelValues(status).Inc()
}
