package icalfeed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent нормализованное представление VEVENT до разворачивания
// повторений
type parsedEvent struct {
	UID      string
	Summary  string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Declined bool

	RawRRule string
	ExDates  []time.Time
}

// parseFeed разбирает ICS-документ в список parsedEvent.
// Нечитаемые VEVENT пропускаются по одному: один битый компонент
// не проваливает весь фид
func parseFeed(body []byte) ([]parsedEvent, int, error) {
	if len(body) == 0 {
		return nil, 0, fmt.Errorf("%w: empty body", ErrParseFailed)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	events := make([]parsedEvent, 0, len(cal.Events()))
	skipped := 0

	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	return events, skipped, nil
}

func parseVEvent(ve *ical.VEvent) (parsedEvent, error) {
	var out parsedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	// DTSTART/DTEND через хелперы библиотеки (они учитывают VTIMEZONE/TZID)
	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("unparseable DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, fmt.Errorf("unparseable DTEND: %w", err)
	}
	out.Start = start
	out.End = end

	// All-day: VALUE=DATE либо значение без времени (YYYYMMDD)
	if dtStart := ve.GetProperty(ical.ComponentPropertyDtStart); dtStart != nil {
		if params := dtStart.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(dtStart.Value, "T") {
			out.AllDay = true
		}
	}

	// STATUS:CANCELLED трактуем как отклоненное событие - пользователь
	// свободен в этом интервале
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		if strings.EqualFold(p.Value, "CANCELLED") {
			out.Declined = true
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	// EXDATE может встречаться несколько раз и содержать список значений
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, terr := parseICSTime(part); terr == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// parseICSTime разбирает базовые ICS-формы даты/времени
func parseICSTime(v string) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.UTC)
	default:
		return time.ParseInLocation("20060102", v, time.UTC)
	}
}
