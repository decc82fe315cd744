package tiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/rckarchitects/crashboard/internal/domain"
	tileRepo "github.com/rckarchitects/crashboard/internal/infra/storage/tiles"
	"github.com/rckarchitects/crashboard/internal/service/tiles/models"
)

// Service сервис для работы с тайлами дашборда
type Service struct {
	tileRepo  TileRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса тайлов
func NewService(
	tileRepo TileRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tileRepo:  tileRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetBoard получает доску пользователя: все тайлы в порядке позиции
func (s *Service) GetBoard(ctx context.Context, userID int64) (*models.BoardResponse, error) {
	s.logger.Info("GetBoard: fetching tiles for user=%d", userID)

	tiles, err := s.tileRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetBoard: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetBoard - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBoard: successfully fetched %d tiles for user=%d", len(tiles), userID)
	return &models.BoardResponse{
		UserID: userID,
		Tiles:  models.FromDomainTiles(tiles),
	}, nil
}

// UpdateLayout применяет новое размещение тайлов доски
// Все перестановки применяются атомарно: либо весь layout, либо ничего.
// Пользователь может переставлять только собственные тайлы.
func (s *Service) UpdateLayout(ctx context.Context, req *models.UpdateLayoutRequest) (*models.BoardResponse, error) {
	s.logger.Info("UpdateLayout: updating %d placements for user=%d", len(req.Placements), req.UserID)

	if err := validateLayoutRequest(req); err != nil {
		s.logger.Warn("UpdateLayout: invalid request for user=%d: %v", req.UserID, err)
		return nil, err
	}

	var updated []*domain.Tile

	// Serializable: конкурентные перестановки одной доски не должны
	// перемешивать позиции
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		owned, err := s.tileRepo.GetByUserID(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: UpdateLayout - fetch board: %v", ErrInternal, err)
		}

		ownedIDs := make(map[int64]struct{}, len(owned))
		for _, t := range owned {
			ownedIDs[t.ID] = struct{}{}
		}

		for _, p := range req.Placements {
			if _, ok := ownedIDs[p.TileID]; !ok {
				// Чужой или несуществующий тайл - выясняем, что именно
				if _, err := s.tileRepo.GetByID(ctx, p.TileID); err != nil {
					if errors.Is(err, tileRepo.ErrTileNotFound) {
						return fmt.Errorf("%w: tile %d", ErrTileNotFound, p.TileID)
					}
					return fmt.Errorf("%w: UpdateLayout - fetch tile %d: %v", ErrInternal, p.TileID, err)
				}
				return fmt.Errorf("%w: tile %d belongs to another user", ErrAccessDenied, p.TileID)
			}

			if err := s.tileRepo.UpdatePlacement(ctx, p.TileID, p.Position, p.Width, p.Height); err != nil {
				if errors.Is(err, tileRepo.ErrTileNotFound) {
					return fmt.Errorf("%w: tile %d", ErrTileNotFound, p.TileID)
				}
				return fmt.Errorf("%w: UpdateLayout - update tile %d: %v", ErrInternal, p.TileID, err)
			}
		}

		updated, err = s.tileRepo.GetByUserID(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: UpdateLayout - refetch board: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTileNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidInput):
			s.logger.Warn("UpdateLayout: rejected for user=%d: %v", req.UserID, err)
		default:
			s.logger.Error("UpdateLayout: failed for user=%d: %v", req.UserID, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateLayout: successfully updated layout for user=%d", req.UserID)
	return &models.BoardResponse{
		UserID: req.UserID,
		Tiles:  models.FromDomainTiles(updated),
	}, nil
}

// CreateTile добавляет новый тайл на доску пользователя
func (s *Service) CreateTile(ctx context.Context, req *models.CreateTileRequest) (*models.TileResponse, error) {
	s.logger.Info("CreateTile: creating tile kind=%s for user=%d", req.Kind, req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if !domain.IsKnownTileKind(domain.TileKind(req.Kind)) {
		s.logger.Warn("CreateTile: unknown tile kind %q for user=%d", req.Kind, req.UserID)
		return nil, fmt.Errorf("%w: unknown tile kind %q", ErrInvalidInput, req.Kind)
	}
	if req.Position < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", ErrInvalidInput)
	}

	tile := req.ToDomainTile()
	if !tile.HasValidSpan() {
		s.logger.Warn("CreateTile: invalid span %dx%d for user=%d", req.Width, req.Height, req.UserID)
		return nil, fmt.Errorf("%w: invalid span %dx%d", ErrInvalidInput, req.Width, req.Height)
	}

	created, err := s.tileRepo.Create(ctx, tile)
	if err != nil {
		s.logger.Error("CreateTile: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: CreateTile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTile: successfully created tile id=%d for user=%d", created.ID, req.UserID)
	resp := models.FromDomainTile(created)
	return &resp, nil
}

// DeleteTile удаляет тайл с доски пользователя
// Пользователь может удалять только собственные тайлы
func (s *Service) DeleteTile(ctx context.Context, tileID, userID int64) error {
	s.logger.Info("DeleteTile: deleting tile id=%d for user=%d", tileID, userID)

	tile, err := s.tileRepo.GetByID(ctx, tileID)
	if err != nil {
		if errors.Is(err, tileRepo.ErrTileNotFound) {
			s.logger.Warn("DeleteTile: tile id=%d not found", tileID)
			return ErrTileNotFound
		}
		s.logger.Error("DeleteTile: repository error for tile id=%d: %v", tileID, err)
		return fmt.Errorf("%w: DeleteTile - repository error: %v", ErrInternal, err)
	}

	if tile.UserID != userID {
		s.logger.Warn("DeleteTile: access denied for user=%d to tile id=%d", userID, tileID)
		return fmt.Errorf("%w: tile %d belongs to another user", ErrAccessDenied, tileID)
	}

	if err := s.tileRepo.Delete(ctx, tileID); err != nil {
		if errors.Is(err, tileRepo.ErrTileNotFound) {
			return ErrTileNotFound
		}
		s.logger.Error("DeleteTile: repository error for tile id=%d: %v", tileID, err)
		return fmt.Errorf("%w: DeleteTile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTile: successfully deleted tile id=%d for user=%d", tileID, userID)
	return nil
}

// validateLayoutRequest проверяет корректность размещений до открытия транзакции
func validateLayoutRequest(req *models.UpdateLayoutRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(req.Placements) == 0 {
		return fmt.Errorf("%w: placements are required", ErrInvalidInput)
	}

	seenTiles := make(map[int64]struct{}, len(req.Placements))
	seenPositions := make(map[int]struct{}, len(req.Placements))
	for _, p := range req.Placements {
		if p.TileID <= 0 {
			return fmt.Errorf("%w: tile id is required", ErrInvalidInput)
		}
		if _, ok := seenTiles[p.TileID]; ok {
			return fmt.Errorf("%w: tile %d listed twice", ErrInvalidInput, p.TileID)
		}
		seenTiles[p.TileID] = struct{}{}

		if p.Position < 0 {
			return fmt.Errorf("%w: position must be non-negative", ErrInvalidInput)
		}
		if _, ok := seenPositions[p.Position]; ok {
			return fmt.Errorf("%w: position %d listed twice", ErrInvalidInput, p.Position)
		}
		seenPositions[p.Position] = struct{}{}

		span := domain.Tile{Width: p.Width, Height: p.Height}
		if !span.HasValidSpan() {
			return fmt.Errorf("%w: tile %d has invalid span %dx%d", ErrInvalidInput, p.TileID, p.Width, p.Height)
		}
	}
	return nil
}
