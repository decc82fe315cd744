package get_tiles

import (
	"net/http"

	"github.com/rckarchitects/crashboard/internal/api/handlers"
	"github.com/rckarchitects/crashboard/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/tiles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tiles - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	board, err := h.service.GetBoard(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /tiles - Failed to get board: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tiles - Board retrieved successfully: user_id=%d, tiles_count=%d",
		userID, len(board.Tiles))
	handlers.RespondJSON(w, http.StatusOK, board)
}
