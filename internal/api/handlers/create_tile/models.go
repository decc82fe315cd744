package create_tile

import (
	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

// CreateTileRequest HTTP request model
type CreateTileRequest struct {
	Kind     string  `json:"kind"`
	Position int     `json:"position"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Config   *string `json:"config,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *CreateTileRequest) ToServiceRequest(userID int64) *models.CreateTileRequest {
	return &models.CreateTileRequest{
		UserID:   userID,
		Kind:     r.Kind,
		Position: r.Position,
		Width:    r.Width,
		Height:   r.Height,
		Config:   r.Config,
	}
}
