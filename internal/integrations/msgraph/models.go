package msgraph

import (
	"fmt"
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// graphDateTimeFormat формат временных меток Graph API (без таймзоны,
// таймзона приходит отдельным полем)
const graphDateTimeFormat = "2006-01-02T15:04:05.9999999"

// calendarViewResponse страница ответа GET /me/calendarView
type calendarViewResponse struct {
	Value    []graphEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

// graphEvent модель события из Graph API
type graphEvent struct {
	Subject        string              `json:"subject"`
	IsAllDay       bool                `json:"isAllDay"`
	Start          graphDateTime       `json:"start"`
	End            graphDateTime       `json:"end"`
	ResponseStatus graphResponseStatus `json:"responseStatus"`
}

// graphDateTime временная метка Graph API с отдельной таймзоной
type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// graphResponseStatus статус ответа пользователя на приглашение
type graphResponseStatus struct {
	Response string `json:"response"`
}

// errorResponse модель ошибки Graph API
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Parse конвертирует метку Graph API в time.Time
func (d graphDateTime) Parse() (time.Time, error) {
	loc := time.UTC
	if d.TimeZone != "" && d.TimeZone != "UTC" {
		parsed, err := time.LoadLocation(d.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown timezone %q: %w", d.TimeZone, err)
		}
		loc = parsed
	}

	t, err := time.ParseInLocation(graphDateTimeFormat, d.DateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable dateTime %q: %w", d.DateTime, err)
	}
	return t, nil
}

// toDomainEvent конвертирует событие Graph API в доменную модель.
// Ошибка означает, что событие нужно пропустить, а не провалить весь запрос
func toDomainEvent(ev graphEvent) (domain.CalendarEvent, error) {
	start, err := ev.Start.Parse()
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("start: %w", err)
	}
	end, err := ev.End.Parse()
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("end: %w", err)
	}

	return domain.CalendarEvent{
		Subject:        ev.Subject,
		Start:          start,
		End:            end,
		IsAllDay:       ev.IsAllDay,
		ResponseStatus: domain.EventResponseStatus(ev.ResponseStatus.Response),
	}, nil
}
