package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
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

// maxPages ограничение пагинации calendarView на один запрос
const maxPages = 10

// Client клиент для работы с календарем Microsoft Graph
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента Microsoft Graph.
// Получение и обновление OAuth-токена - ответственность вызывающей стороны
func NewClient(baseURL string, accessToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Events получает события календаря в окне [rangeStart, rangeEnd)
// с graceful degradation: при недоступности Graph API возвращается
// ErrServiceDegraded, и вызывающая сторона продолжает с пустым списком
func (c *Client) Events(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.CalendarEvent, error) {
	events, err := c.GetCalendarView(ctx, rangeStart, rangeEnd)
	if err != nil {
		c.log.Error("Graph API unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	return events, nil
}

// GetCalendarView получает события календаря пользователя в указанном окне.
// Временные ошибки (429, 5xx, сеть) повторяются с экспоненциальной
// задержкой и джиттером; ошибки авторизации не повторяются
func (c *Client) GetCalendarView(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.CalendarEvent, error) {
	params := url.Values{}
	params.Set("startDateTime", rangeStart.UTC().Format(time.RFC3339))
	params.Set("endDateTime", rangeEnd.UTC().Format(time.RFC3339))
	params.Set("$select", "subject,isAllDay,start,end,responseStatus")
	params.Set("$top", "100")

	pageURL := fmt.Sprintf("%s/me/calendarView?%s", c.baseURL, params.Encode())

	events := make([]domain.CalendarEvent, 0)

	for page := 0; pageURL != "" && page < maxPages; page++ {
		var resp *calendarViewResponse

		err := retry.Do(
			func() error {
				var reqErr error
				resp, reqErr = c.fetchPage(ctx, pageURL)
				if reqErr != nil {
					// Ошибки авторизации и "не найдено" повторять бессмысленно
					if !isTransient(reqErr) {
						return retry.Unrecoverable(reqErr)
					}
				}
				return reqErr
			},
			retry.Context(ctx),
			retry.LastErrorOnly(true),
			retry.Attempts(4),
			retry.Delay(500*time.Millisecond),
			retry.MaxDelay(5*time.Second),
			retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		)
		if err != nil {
			return nil, err
		}

		// Некорректные события пропускаются по одному, не проваливая
		// весь запрос
		for _, raw := range resp.Value {
			ev, convErr := toDomainEvent(raw)
			if convErr != nil {
				c.log.Warn("GetCalendarView: skipping malformed event %q: %v", raw.Subject, convErr)
				continue
			}
			events = append(events, ev)
		}

		pageURL = resp.NextLink
	}

	c.log.Info("GetCalendarView: fetched %d events for [%s, %s)",
		len(events), rangeStart.Format(domain.DateFormat), rangeEnd.Format(domain.DateFormat))

	return events, nil
}

// fetchPage выполняет один запрос страницы calendarView
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*calendarViewResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, readGraphError(resp.Body))
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, readGraphError(resp.Body))
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: status code %d: %s", ErrTransient, resp.StatusCode, readGraphError(resp.Body))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readGraphError(resp.Body))
	}

	var page calendarViewResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &page, nil
}

// readGraphError извлекает структурированную ошибку Graph API из тела
// ответа. Если формат не совпал, возвращает сырое тело
func readGraphError(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))

	var graphErr errorResponse
	if err := json.Unmarshal(body, &graphErr); err == nil && graphErr.Error.Code != "" {
		return fmt.Sprintf("%s: %s", graphErr.Error.Code, graphErr.Error.Message)
	}
	return string(body)
}

// isTransient возвращает true для ошибок, которые имеет смысл повторять
func isTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
