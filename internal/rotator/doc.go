// Package rotator реализует один запуск ротации дежурств.
//
// Запуск строго линейный:
//
//  1. Читает RotationState по ключу "latest"
//  2. Распределяет дела: chores[i] → people[(current_turn + i) mod len(people)]
//  3. Формирует объявление
//  4. Отправляет объявление в канал
//  5. Только после успешной отправки сохраняет current_turn + 1 (mod len(people))
//
// Использование:
//
//	rot := rotator.New(rotator.Config{
//	    Store:    repo.NewRotationRepo(pool),
//	    Notifier: discord.New(discordCfg),
//	    Logger:   logger,
//	})
//
//	result := rot.Handle(ctx, payload)
//
// Повторов нет: любая ошибка превращается в результат со statusCode 500.
// Если сохранение упало после отправки, сообщение уже ушло и следующий
// запуск повторит то же распределение.
//
// Параллельные запуски не исключаются: два одновременных запуска прочитают
// одно и то же current_turn, оба отправят объявление, и один сдвиг потеряется.
package rotator
