// Package metrics expone contadores Prometheus de las evaluaciones de vida útil.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/caducidad-api/internal/domain/entity"
)

const namespace = "caducidad"

// Recorder implementa shelflife.MetricsRecorder con un registro propio,
// así los tests no chocan con el registro global.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	alerts      *prometheus.CounterVec
}

// NewRecorder registra los contadores y los colectores de proceso y runtime.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluaciones de vida útil por estrategia y estado.",
		}, []string{"strategy", "status"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Entradas rechazadas por motivo.",
		}, []string{"reason"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_shown_total",
			Help:      "Alertas mostradas al usuario por estado.",
		}, []string{"status"}),
	}
	reg.MustRegister(
		r.evaluations, r.rejections, r.alerts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveEvaluation cuenta una evaluación y, si se mostró, la alerta.
func (r *Recorder) ObserveEvaluation(strategy string, kind entity.StatusKind, surfaced bool) {
	status := statusLabel(kind)
	r.evaluations.WithLabelValues(strategy, status).Inc()
	if surfaced {
		r.alerts.WithLabelValues(status).Inc()
	}
}

// ObserveRejection cuenta una entrada rechazada.
func (r *Recorder) ObserveRejection(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}

// Registry registro subyacente (tests y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler handler HTTP en formato de exposición Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func statusLabel(kind entity.StatusKind) string {
	if kind == entity.StatusNone {
		return "none"
	}
	return string(kind)
}
