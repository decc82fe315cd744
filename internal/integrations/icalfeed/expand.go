package icalfeed

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// maxOccurrencesPerEvent защитный лимит разворачивания одного события,
// чтобы некорректный RRULE не породил огромный список
const maxOccurrencesPerEvent = 1000

// expandEvents разворачивает parsedEvent в конкретные события внутри окна
// [rangeStart, rangeEnd). Поддерживаются одиночные события, RRULE-повторения
// и EXDATE-исключения
func expandEvents(events []parsedEvent, rangeStart, rangeEnd time.Time) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(events))

	for _, ev := range events {
		if ev.RawRRule == "" {
			if ev.Start.Before(rangeEnd) && ev.End.After(rangeStart) {
				out = append(out, toDomainEvent(ev, ev.Start, ev.End))
			}
			continue
		}

		out = append(out, expandRecurring(ev, rangeStart, rangeEnd)...)
	}

	return out
}

// expandRecurring разворачивает одно повторяющееся событие.
// Нечитаемый RRULE не фатален: событие просто пропускается
func expandRecurring(ev parsedEvent, rangeStart, rangeEnd time.Time) []domain.CalendarEvent {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between работает в таймзоне события
	occTimes := set.Between(
		rangeStart.In(ev.Start.Location()),
		rangeEnd.In(ev.Start.Location()),
		true,
	)
	if len(occTimes) > maxOccurrencesPerEvent {
		occTimes = occTimes[:maxOccurrencesPerEvent]
	}

	duration := ev.End.Sub(ev.Start)
	out := make([]domain.CalendarEvent, 0, len(occTimes))
	for _, occStart := range occTimes {
		out = append(out, toDomainEvent(ev, occStart, occStart.Add(duration)))
	}

	return out
}

func toDomainEvent(ev parsedEvent, start, end time.Time) domain.CalendarEvent {
	status := domain.ResponseAccepted
	if ev.Declined {
		status = domain.ResponseDeclined
	}
	return domain.CalendarEvent{
		Subject:        ev.Summary,
		Start:          start,
		End:            end,
		IsAllDay:       ev.AllDay,
		ResponseStatus: status,
	}
}
