package get_availability

import (
	"fmt"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// validatePolicy валидирует конфигурацию рабочего дня.
// Все поля должны быть положительными, а границы дня и обеда упорядочены:
// work start < lunch start < lunch end < work end
func validatePolicy(policy domain.WorkDayPolicy) error {
	if !policy.HasPositiveFields() {
		return fmt.Errorf("%w: all policy fields must be positive", ErrInvalidPolicy)
	}
	if !policy.IsOrdered() {
		return fmt.Errorf("%w: expected workStartHour < lunchStartHour < lunchEndHour < workEndHour", ErrInvalidPolicy)
	}
	if policy.WorkEndHour > 24 {
		return fmt.Errorf("%w: workEndHour must not exceed 24", ErrInvalidPolicy)
	}
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Окно либо не задано целиком (usecase подставит окно по умолчанию),
	// либо задано корректно
	if req.From.IsZero() != req.To.IsZero() {
		return fmt.Errorf("%w: from and to must be provided together", ErrInvalidRange)
	}
	if req.From.IsZero() {
		return nil
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}
	if req.To.Sub(req.From) > domain.MaxScanRangeDays*24*time.Hour {
		return fmt.Errorf("%w: scan window exceeds %d days", ErrInvalidRange, domain.MaxScanRangeDays)
	}

	return nil
}
