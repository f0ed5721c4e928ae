package stats

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"github.com/thesrcielos/RobotArena/internal/metrics"
)

type Service struct {
	store   Store
	metrics metrics.Metrics
}

func NewService(store Store, m metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// GetPlayerStats re-reads the player, both sides of their match history and
// the leaderboard, then aggregates. Any failed read aborts the whole call.
func (s *Service) GetPlayerStats(ctx context.Context, playerID uint) (*StatsResponse, error) {
	start := time.Now()

	var response StatsResponse
	err := s.store.ReadSnapshot(ctx, func(r Reader) error {
		u, err := r.FetchUser(ctx, playerID)
		if err != nil {
			return err
		}
		attackGames, err := r.FetchAttackGames(ctx, playerID)
		if err != nil {
			return err
		}
		defenseGames, err := r.FetchDefenseGames(ctx, playerID)
		if err != nil {
			return err
		}
		leaderboard, err := r.FetchAllUsers(ctx)
		if err != nil {
			return err
		}

		response = MakeResponse(u, attackGames, defenseGames, leaderboard)
		return nil
	})

	elapsed := time.Since(start)
	switch {
	case err == nil:
		s.metrics.StatsRequest(metrics.ResultOK, elapsed)
	case apperrors.IsNotFound(err):
		s.metrics.StatsRequest(metrics.ResultNotFound, elapsed)
		return nil, err
	default:
		s.metrics.StatsRequest(metrics.ResultError, elapsed)
		entry := log.WithError(err).WithField("player_id", playerID)
		var storageErr *apperrors.StorageError
		if errors.As(err, &storageErr) {
			entry = entry.WithFields(log.Fields{"table": storageErr.Table, "operation": storageErr.Operation})
		}
		entry.Error("Error computing player stats")
		return nil, err
	}

	log.WithFields(log.Fields{"player_id": playerID, "duration_ms": elapsed.Milliseconds()}).Debug("Player stats computed")
	return &response, nil
}
