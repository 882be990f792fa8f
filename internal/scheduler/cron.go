package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Plan — разобранное расписание запусков.
type Plan struct {
	expr     string
	schedule cron.Schedule
	loc      *time.Location
}

// ParsePlan разбирает cron-выражение в заданном часовом поясе.
// Некорректный timezone заменяется на UTC.
func ParsePlan(cronExpr, timezone string) (*Plan, error) {
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		// Fallback на UTC если timezone невалидный
		loc = time.UTC
	}

	return &Plan{expr: cronExpr, schedule: schedule, loc: loc}, nil
}

// Next вычисляет следующее время запуска строго после from (в UTC).
func (p *Plan) Next(from time.Time) time.Time {
	return p.schedule.Next(from.In(p.loc)).UTC()
}

// String возвращает исходное выражение.
func (p *Plan) String() string {
	return p.expr
}

// Location возвращает часовой пояс расписания.
func (p *Plan) Location() *time.Location {
	return p.loc
}

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(cronExpr string) error {
	_, err := cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}
