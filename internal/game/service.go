package game

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"github.com/thesrcielos/RobotArena/internal/metrics"
	"github.com/thesrcielos/RobotArena/internal/user"
)

// StatsNotifier tells every instance that the listed players' stats changed.
type StatsNotifier interface {
	PublishStatsUpdated(ctx context.Context, playerIDs ...uint) error
}

type GameService struct {
	repo     GameRepository
	users    user.UserRepository
	notifier StatsNotifier
	metrics  metrics.Metrics
}

func NewGameService(repo GameRepository, users user.UserRepository, notifier StatsNotifier, m metrics.Metrics) *GameService {
	return &GameService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		metrics:  m,
	}
}

// RecordGame stores a finished match reported by callerID, who must have
// played in it.
func (s *GameService) RecordGame(ctx context.Context, callerID uint, req *GameRequest) (*Game, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if callerID != req.AttackID && callerID != req.DefendID {
		return nil, apperrors.NewAppError(403, "only a player in the match can record it", nil)
	}
	if err := s.ensurePlayerExists(ctx, req.AttackID, "attacker"); err != nil {
		return nil, err
	}
	if err := s.ensurePlayerExists(ctx, req.DefendID, "defender"); err != nil {
		return nil, err
	}

	g := &Game{
		AttackID:        req.AttackID,
		DefendID:        req.DefendID,
		AttackScore:     req.AttackScore,
		DefendScore:     req.DefendScore,
		DamageDone:      req.DamageDone,
		RobotsDestroyed: req.RobotsDestroyed,
		EmpsUsed:        req.EmpsUsed,
		IsAttackerAlive: req.IsAttackerAlive,
	}
	if err := s.repo.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	s.metrics.GameRecorded()

	// The match is already stored; a lost notification only delays live pushes.
	if err := s.notifier.PublishStatsUpdated(ctx, g.AttackID, g.DefendID); err != nil {
		log.WithError(err).WithField("game_id", g.ID).Warn("Error publishing stats update")
	}
	return g, nil
}

func (s *GameService) ensurePlayerExists(ctx context.Context, id uint, role string) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewAppError(400, role+" does not exist", err)
		}
		return err
	}
	return nil
}

func (r *GameRequest) Validate() error {
	if r.AttackID == 0 || r.DefendID == 0 {
		return apperrors.NewAppError(400, "attack_id and defend_id are required", nil)
	}
	if r.AttackID == r.DefendID {
		return apperrors.NewAppError(400, "a player cannot attack themselves", nil)
	}
	if r.AttackScore < 0 || r.DefendScore < 0 || r.DamageDone < 0 || r.RobotsDestroyed < 0 || r.EmpsUsed < 0 {
		return apperrors.NewAppError(400, "game counters must not be negative", nil)
	}
	return nil
}
