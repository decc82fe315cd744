package update_tile_layout

import (
	"github.com/rckarchitects/crashboard/internal/domain"
	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

// UpdateLayoutRequest HTTP request model
type UpdateLayoutRequest struct {
	Placements []PlacementUpdate `json:"placements"`
}

// PlacementUpdate новое размещение одного тайла
type PlacementUpdate struct {
	TileID   int64 `json:"tileId"`
	Position int   `json:"position"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *UpdateLayoutRequest) ToServiceRequest(userID int64) *models.UpdateLayoutRequest {
	placements := make([]domain.TilePlacement, len(r.Placements))
	for i, p := range r.Placements {
		placements[i] = domain.TilePlacement{
			TileID:   p.TileID,
			Position: p.Position,
			Width:    p.Width,
			Height:   p.Height,
		}
	}

	return &models.UpdateLayoutRequest{
		UserID:     userID,
		Placements: placements,
	}
}
