package models

import (
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// TileResponse тайл дашборда для выдачи наружу
type TileResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Position  int       `json:"position"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Config    *string   `json:"config,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardResponse доска пользователя: тайлы в порядке position
type BoardResponse struct {
	UserID int64          `json:"user_id"`
	Tiles  []TileResponse `json:"tiles"`
}

// UpdateLayoutRequest запрос на перестановку тайлов доски
type UpdateLayoutRequest struct {
	UserID     int64
	Placements []domain.TilePlacement
}

// CreateTileRequest запрос на добавление тайла на доску
type CreateTileRequest struct {
	UserID   int64
	Kind     string
	Position int
	Width    int
	Height   int
	Config   *string
}

// ToDomainTile конвертирует запрос в доменный тайл
func (r *CreateTileRequest) ToDomainTile() *domain.Tile {
	return &domain.Tile{
		UserID:   r.UserID,
		Kind:     domain.TileKind(r.Kind),
		Position: r.Position,
		Width:    r.Width,
		Height:   r.Height,
		Config:   r.Config,
	}
}

// FromDomainTile конвертирует доменный тайл в модель ответа
func FromDomainTile(t *domain.Tile) TileResponse {
	return TileResponse{
		ID:        t.ID,
		Kind:      string(t.Kind),
		Position:  t.Position,
		Width:     t.Width,
		Height:    t.Height,
		Config:    t.Config,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTiles конвертирует список доменных тайлов
func FromDomainTiles(tiles []*domain.Tile) []TileResponse {
	result := make([]TileResponse, 0, len(tiles))
	for _, t := range tiles {
		result = append(result, FromDomainTile(t))
	}
	return result
}
