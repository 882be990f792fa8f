// Package mq доставляет триггеры ротации через RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация триггеров
//   - consumer.go   — потребление триггеров
//
// Типы сообщений:
//   - rotation.trigger — пора выполнить ротацию
//
// Exchanges:
//   - chorewheel.rotations — триггеры ротации
//   - chorewheel.dlq       — dead letter queue для неудачных запусков
package mq
