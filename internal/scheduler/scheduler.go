package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	getAvailability "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
)

const warmUpTimeout = 30 * time.Second

// AvailabilityUseCase интерфейс юзкейса расчёта доступности
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически прогревает кеш доступности для заданных пользователей,
// чтобы первый запрос дашборда не ждал походов в календарь
type Scheduler struct {
	cron         *cron.Cron
	availability AvailabilityUseCase
	userIDs      []int64
	logger       Logger
}

// New создает новый экземпляр планировщика
func New(availability AvailabilityUseCase, userIDs []int64, logger Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		availability: availability,
		userIDs:      userIDs,
		logger:       logger,
	}
}

// Start регистрирует задачу прогрева по расписанию spec (формат crontab)
// и запускает планировщик
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.warmUp); err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler: started with spec=%q for %d users", spec, len(s.userIDs))
	return nil
}

// Stop останавливает планировщик и дожидается завершения запущенных задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}

// warmUp прогревает кеш доступности для всех настроенных пользователей.
// Ошибка по одному пользователю не прерывает прогрев остальных.
func (s *Scheduler) warmUp() {
	for _, userID := range s.userIDs {
		ctx, cancel := context.WithTimeout(context.Background(), warmUpTimeout)

		if _, err := s.availability.Execute(ctx, &getAvailability.Request{UserID: userID}); err != nil {
			s.logger.Warn("Scheduler: warm-up failed for user=%d: %v", userID, err)
		} else {
			s.logger.Info("Scheduler: warmed availability cache for user=%d", userID)
		}

		cancel()
	}
}
