// Package telemetry обеспечивает наблюдаемость chorewheel.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики запусков ротации
//
// Все бинарники используют единый формат логирования;
// scheduler и worker экспортируют метрики на /metrics endpoint.
package telemetry
