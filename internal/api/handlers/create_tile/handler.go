package create_tile

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
	msgInvalidInput  = "некорректные параметры тайла"
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

// Handle POST /api/v1/tiles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tiles - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /tiles - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	tile, err := h.service.CreateTile(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, tiles.ErrInvalidInput):
			h.logger.Warn("POST /tiles - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tiles - Failed to create tile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tiles - Tile created successfully: user_id=%d, tile_id=%d", userID, tile.ID)
	handlers.RespondJSON(w, http.StatusCreated, tile)
}
