package game

import (
	"context"

	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"gorm.io/gorm"
)

const gameTable = "game"

type GameRepository interface {
	SaveGame(ctx context.Context, g *Game) error
}

type GormGameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

func (r *GormGameRepository) SaveGame(ctx context.Context, g *Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return apperrors.NewStorageError(gameTable, "SaveGame", err)
	}
	return nil
}
