package delete_tile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rckarchitects/crashboard/internal/api/handlers"
	"github.com/rckarchitects/crashboard/internal/api/middleware"
	"github.com/rckarchitects/crashboard/internal/service/tiles"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidTileID = "некорректный ID тайла"
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

// Handle DELETE /api/v1/tiles/{tileId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tileId из URL
	vars := mux.Vars(r)
	tileIDStr := vars["tileId"]

	tileID, err := strconv.ParseInt(tileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tiles/{tileId} - Invalid tile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTileID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /tiles/{tileId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteTile(r.Context(), tileID, userID); err != nil {
		switch {
		case errors.Is(err, tiles.ErrTileNotFound):
			h.logger.Warn("DELETE /tiles/{tileId} - Tile not found: tile_id=%d", tileID)
			handlers.RespondNotFound(w, msgTileNotFound)

		case errors.Is(err, tiles.ErrAccessDenied):
			h.logger.Warn("DELETE /tiles/{tileId} - Access denied: tile_id=%d, user_id=%d", tileID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /tiles/{tileId} - Failed to delete tile: tile_id=%d, error=%v", tileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tiles/{tileId} - Tile deleted successfully: tile_id=%d, user_id=%d", tileID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
