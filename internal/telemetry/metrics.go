package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты запуска для метки result.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	invocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chorewheel_invocations_total",
		Help: "Total rotation invocations by result",
	}, []string{"result"})

	invocationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chorewheel_invocation_errors_total",
		Help: "Failed rotation invocations by error kind",
	}, []string{"kind"})

	deliveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chorewheel_delivery_duration_seconds",
		Help:    "Duration of the announcement call to the messaging endpoint",
		Buckets: prometheus.DefBuckets,
	})

	currentTurn = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chorewheel_current_turn",
		Help: "Rotation pointer persisted by the last successful invocation",
	})
)

// ObserveInvocation учитывает завершённый запуск.
// kind — вид ошибки (пустой для успешного запуска).
func ObserveInvocation(kind string) {
	if kind == "" {
		invocationsTotal.WithLabelValues(ResultSuccess).Inc()
		return
	}
	invocationsTotal.WithLabelValues(ResultFailure).Inc()
	invocationErrorsTotal.WithLabelValues(kind).Inc()
}

// ObserveDelivery учитывает длительность отправки объявления.
func ObserveDelivery(d time.Duration) {
	deliveryDuration.Observe(d.Seconds())
}

// SetCurrentTurn фиксирует сохранённое значение указателя ротации.
func SetCurrentTurn(turn int) {
	currentTurn.Set(float64(turn))
}
