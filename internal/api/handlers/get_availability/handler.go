package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/rckarchitects/crashboard/internal/api/handlers"
	"github.com/rckarchitects/crashboard/internal/api/middleware"
	getAvailability "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange  = "некорректное окно сканирования"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	useCase  GetAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability
// Query params: from (optional, YYYY-MM-DD), to (optional, YYYY-MM-DD).
// Оба параметра задаются вместе; без них используется окно по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidRange):
			h.logger.Warn("GET /availability - Invalid range: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Availability computed successfully: user_id=%d, days_count=%d",
		userID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
