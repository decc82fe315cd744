package update_tile_layout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rckarchitects/crashboard/internal/api/handlers"
	"github.com/rckarchitects/crashboard/internal/api/middleware"
	"github.com/rckarchitects/crashboard/internal/service/tiles"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidBody   = "некорректное тело запроса"
	msgInvalidInput  = "некорректные параметры размещения"
	msgTileNotFound  = "тайл не найден"
	msgForbidden     = "нет доступа к тайлу"
)

type Handler struct {
	service TileService
	logger  Logger
}

func NewHandler(service TileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tiles/layout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tiles/layout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /tiles/layout - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	board, err := h.service.UpdateLayout(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, tiles.ErrInvalidInput):
			h.logger.Warn("PUT /tiles/layout - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, tiles.ErrTileNotFound):
			h.logger.Warn("PUT /tiles/layout - Tile not found: user_id=%d, error=%v", userID, err)
			handlers.RespondNotFound(w, msgTileNotFound)

		case errors.Is(err, tiles.ErrAccessDenied):
			h.logger.Warn("PUT /tiles/layout - Access denied: user_id=%d, error=%v", userID, err)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /tiles/layout - Failed to update layout: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tiles/layout - Layout updated successfully: user_id=%d, tiles_count=%d",
		userID, len(board.Tiles))
	handlers.RespondJSON(w, http.StatusOK, board)
}
