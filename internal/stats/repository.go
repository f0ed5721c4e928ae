package stats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/user"
	"gorm.io/gorm"
)

const (
	userTable     = "user"
	gameTable     = "game"
	snapshotTable = "user,game"
)

// Reader is the row store behind a stats computation.
type Reader interface {
	FetchUser(ctx context.Context, playerID uint) (*user.User, error)
	FetchAllUsers(ctx context.Context) ([]user.User, error)
	FetchAttackGames(ctx context.Context, playerID uint) ([]game.Game, error)
	FetchDefenseGames(ctx context.Context, playerID uint) ([]game.Game, error)
}

// Store hands out a Reader whose reads all see the same snapshot.
type Store interface {
	ReadSnapshot(ctx context.Context, fn func(r Reader) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ReadSnapshot(ctx context.Context, fn func(r Reader) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormReader(tx))
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err == nil {
		return nil
	}

	var storageErr *apperrors.StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return apperrors.NewStorageError(snapshotTable, "ReadSnapshot", err)
}

type GormReader struct {
	db *gorm.DB
}

func NewGormReader(db *gorm.DB) *GormReader {
	return &GormReader{db: db}
}

func (r *GormReader) FetchUser(ctx context.Context, playerID uint) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", playerID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError(userTable, "FetchUser", err)
	}
	return &u, nil
}

// FetchAllUsers returns the leaderboard: rating descending, then id so equal
// ratings always rank the same way.
func (r *GormReader) FetchAllUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "overall_rating", "highest_rating").
		Order("overall_rating DESC").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, apperrors.NewStorageError(userTable, "FetchAllUsers", err)
	}
	return users, nil
}

func (r *GormReader) FetchAttackGames(ctx context.Context, playerID uint) ([]game.Game, error) {
	var games []game.Game
	err := r.db.WithContext(ctx).
		Where("attack_id = ?", playerID).
		Order("attack_score DESC").
		Order("id ASC").
		Find(&games).Error
	if err != nil {
		return nil, apperrors.NewStorageError(gameTable, "FetchAttackGames", err)
	}
	return games, nil
}

func (r *GormReader) FetchDefenseGames(ctx context.Context, playerID uint) ([]game.Game, error) {
	var games []game.Game
	err := r.db.WithContext(ctx).
		Where("defend_id = ?", playerID).
		Order("defend_score DESC").
		Order("id ASC").
		Find(&games).Error
	if err != nil {
		return nil, apperrors.NewStorageError(gameTable, "FetchDefenseGames", err)
	}
	return games, nil
}
