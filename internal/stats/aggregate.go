package stats

import (
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/user"
)

// MakeResponse folds a player's match history and the leaderboard into a
// StatsResponse. Highest scores are the maximum over each list, so callers
// need not pre-sort. leaderboard must be ordered by rating descending; a
// player missing from it gets position 0.
func MakeResponse(u *user.User, attackGames, defenseGames []game.Game, leaderboard []user.User) StatsResponse {
	stats := StatsResponse{
		Rating:        u.OverallRating,
		HighestRating: u.HighestRating,
		NoOfAttacks:   len(attackGames),
		NoOfDefenses:  len(defenseGames),
	}

	for i, attack := range attackGames {
		if i == 0 || attack.AttackScore > stats.HighestAttackScore {
			stats.HighestAttackScore = attack.AttackScore
		}
		stats.TotalDamageAttack += attack.DamageDone
		stats.NoOfRobotsKilled += attack.RobotsDestroyed
		stats.NoOfEmpsUsed += attack.EmpsUsed
		if !attack.IsAttackerAlive {
			stats.NoOfAttackersSuicided++
		}
	}

	for i, defense := range defenseGames {
		if i == 0 || defense.DefendScore > stats.HighestDefenseScore {
			stats.HighestDefenseScore = defense.DefendScore
		}
		stats.TotalDamageDefense += defense.DamageDone
		stats.NoOfRobotsGotKilled += defense.RobotsDestroyed
	}

	stats.PositionInLeaderboard = leaderboardPosition(u.ID, leaderboard)
	return stats
}

func leaderboardPosition(id uint, leaderboard []user.User) int {
	for i, entry := range leaderboard {
		if entry.ID == id {
			return i + 1
		}
	}
	return 0
}
