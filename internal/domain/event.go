package domain

import "time"

// EventResponseStatus represents the user's reply to a calendar invitation
type EventResponseStatus string

const (
	ResponseNone                EventResponseStatus = "none"
	ResponseOrganizer           EventResponseStatus = "organizer"
	ResponseAccepted            EventResponseStatus = "accepted"
	ResponseTentativelyAccepted EventResponseStatus = "tentativelyAccepted"
	ResponseDeclined            EventResponseStatus = "declined"
	ResponseNotResponded        EventResponseStatus = "notResponded"
)

// CalendarEvent represents a normalized calendar event as delivered by a
// calendar source (Microsoft Graph or an ICS feed)
type CalendarEvent struct {
	Subject        string
	Start          time.Time
	End            time.Time
	IsAllDay       bool
	ResponseStatus EventResponseStatus
}

// IsDeclined returns true if the user has declined the event.
// A declined event means the user is free in that interval.
func (e *CalendarEvent) IsDeclined() bool {
	return e.ResponseStatus == ResponseDeclined
}

// Interval returns the busy interval occupied by the event
func (e *CalendarEvent) Interval() TimeInterval {
	return TimeInterval{Start: e.Start, End: e.End}
}

// HasValidTimes returns true if the event carries a usable time range
func (e *CalendarEvent) HasValidTimes() bool {
	return !e.Start.IsZero() && !e.End.IsZero() && e.Start.Before(e.End)
}
