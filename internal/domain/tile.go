package domain

import "time"

// TileKind represents the type of content shown in a dashboard tile
type TileKind string

const (
	TileInbox        TileKind = "inbox"
	TileCalendar     TileKind = "calendar"
	TileTasks        TileKind = "tasks"
	TileCRM          TileKind = "crm"
	TileWeather      TileKind = "weather"
	TileNotes        TileKind = "notes"
	TileBookmarks    TileKind = "bookmarks"
	TileTrains       TileKind = "trains"
	TileSuggestions  TileKind = "suggestions"
	TileAvailability TileKind = "availability"
)

// Tile represents a single tile on a user's dashboard grid
type Tile struct {
	ID       int64
	UserID   int64
	Kind     TileKind
	Position int // ordinal within the grid, 0-based
	Width    int // grid columns occupied
	Height   int // grid rows occupied
	Config   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidSpan returns true if the tile dimensions fit the grid limits
func (t *Tile) HasValidSpan() bool {
	return t.Width >= MinTileSpan && t.Width <= MaxTileSpan &&
		t.Height >= MinTileSpan && t.Height <= MaxTileSpan
}

// TilePlacement describes the requested position and size of one tile
// within a layout update
type TilePlacement struct {
	TileID   int64
	Position int
	Width    int
	Height   int
}

// IsKnownTileKind returns true if kind is one of the supported tile types
func IsKnownTileKind(kind TileKind) bool {
	switch kind {
	case TileInbox, TileCalendar, TileTasks, TileCRM, TileWeather,
		TileNotes, TileBookmarks, TileTrains, TileSuggestions, TileAvailability:
		return true
	default:
		return false
	}
}
