// Package scheduler запускает ротацию по cron-расписанию.
//
// Scheduler вычисляет ближайшее время по CHORE_SCHEDULE, спит до него
// и вызывает Fire ровно один раз на каждое наступившее время.
//
// Структура:
//   - scheduler.go — цикл ожидания и вызова Fire
//   - cron.go      — парсинг cron-выражений и вычисление следующего времени
//
// Использование:
//
//	plan, err := scheduler.ParsePlan("0 9 * * 1", "Europe/Moscow")
//	sched := scheduler.New(scheduler.Config{
//	    Plan:   plan,
//	    Fire:   func(ctx context.Context, due time.Time) error { ... },
//	    Logger: logger,
//	})
//
//	err := sched.Run(ctx) // до отмены ctx
//
// Ошибка Fire логируется и не останавливает цикл; повторов нет,
// следующий вызов будет только в следующее время по расписанию.
//
// Scheduler не защищает от параллельных запусков: два экземпляра
// с одинаковым расписанием вызовут Fire дважды.
package scheduler
