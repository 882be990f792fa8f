// Package cli реализует операторскую утилиту chorewheel.
//
// # Обзор
//
// CLI работает напрямую с хранилищем состояния и брокером:
// готовит запись ротации, показывает её, строит предпросмотр
// объявления и отправляет триггер ротации в RabbitMQ.
//
// # Ключевые компоненты
//
// ## Deps
//
// Замыкания для ленивого открытия хранилища и publisher'а.
// Открываются только командами, которым они нужны, после парсинга флагов.
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
//
// ## Commands
//
//   - state init:  создать или перезаписать запись (флаги или YAML-файл)
//   - state show:  показать участников, дела и текущий ход
//   - preview:     показать объявление следующего запуска без отправки
//   - trigger:     опубликовать rotation.trigger для chorewheel-worker
package cli
