package get_availability

import (
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
	getAvailability "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From string            `json:"from"`
	To   string            `json:"to"`
	Days []AvailabilityDay `json:"days"`
}

// AvailabilityDay один день со свободными окнами
type AvailabilityDay struct {
	Date             string       `json:"date"`
	Periods          []FreePeriod `json:"periods"`
	TotalFreeMinutes int          `json:"totalFreeMinutes"`
	Summary          string       `json:"summary"`
	Details          string       `json:"details"`
}

// FreePeriod свободный интервал внутри рабочего дня
type FreePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]AvailabilityDay, len(resp.Days))
	for i, day := range resp.Days {
		periods := make([]FreePeriod, len(day.Periods))
		for j, p := range day.Periods {
			periods[j] = FreePeriod{Start: p.Start, End: p.End}
		}

		days[i] = AvailabilityDay{
			Date:             day.Date.Format(domain.DateFormat),
			Periods:          periods,
			TotalFreeMinutes: day.TotalFreeMinutes,
			Summary:          day.Summary,
			Details:          day.Details,
		}
	}

	return &AvailabilityResponse{
		From: resp.From.Format(domain.DateFormat),
		To:   resp.To.Format(domain.DateFormat),
		Days: days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Пустые from/to означают окно по умолчанию. Даты интерпретируются как
// полночь в таймзоне расчёта: парсинг в UTC сдвигал бы окно на день назад
// для таймзон с отрицательным смещением
func ToUseCaseRequest(userID int64, fromStr, toStr string, loc *time.Location) (*getAvailability.Request, error) {
	req := &getAvailability.Request{UserID: userID}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}
