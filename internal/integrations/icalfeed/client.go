package icalfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// maxFeedBytes защитный лимит размера ICS-документа
const maxFeedBytes = 10 << 20 // 10 MiB

// Client источник календарных событий из опубликованного ICS-фида
// (альтернатива Microsoft Graph для пользователей с iCalendar-подпиской)
type Client struct {
	feedURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ICS-фида
func NewClient(feedURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Events получает события фида в окне [rangeStart, rangeEnd) с
// разворачиванием повторений. При недоступности фида возвращается
// ErrServiceDegraded - вызывающая сторона продолжает с пустым списком
func (c *Client) Events(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.CalendarEvent, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		c.log.Error("ICS feed unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	parsed, skipped, err := parseFeed(body)
	if err != nil {
		c.log.Error("ICS feed unreadable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	if skipped > 0 {
		c.log.Warn("Events: skipped %d malformed VEVENT components", skipped)
	}

	events := expandEvents(parsed, rangeStart, rangeEnd)

	c.log.Info("Events: expanded %d events from %d feed components for [%s, %s)",
		len(events), len(parsed),
		rangeStart.Format(domain.DateFormat), rangeEnd.Format(domain.DateFormat))

	return events, nil
}

// fetch загружает тело ICS-фида с повторами на временных ошибках
func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: failed to create request: %v", ErrInternal, err))
			}
			req.Header.Set("Accept", "text/calendar")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrFetchFailed, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("%w: status code %d", ErrFetchFailed, resp.StatusCode)
				// Клиентские ошибки (кроме 429) повторять бессмысленно
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
					return retry.Unrecoverable(err)
				}
				return err
			}

			body, err = io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
			if err != nil {
				return fmt.Errorf("%w: failed to read body: %v", ErrFetchFailed, err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
	)
	if err != nil {
		return nil, err
	}

	return body, nil
}
