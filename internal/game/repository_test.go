package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/testutil"
)

func TestGormGameRepository_SaveGame_Integration(t *testing.T) {
	conn := testutil.SetupTestDatabase(t)
	repo := game.NewGameRepository(conn)
	ctx := context.Background()

	attacker := testutil.CreateUser(t, conn, "attacker", 1000, 1000)
	defender := testutil.CreateUser(t, conn, "defender", 1000, 1000)

	g := &game.Game{
		AttackID:        attacker.ID,
		DefendID:        defender.ID,
		AttackScore:     75,
		DefendScore:     25,
		DamageDone:      120,
		RobotsDestroyed: 3,
		EmpsUsed:        1,
		IsAttackerAlive: false,
	}
	require.NoError(t, repo.SaveGame(ctx, g))
	require.NotZero(t, g.ID)

	var stored game.Game
	require.NoError(t, conn.First(&stored, g.ID).Error)
	assert.Equal(t, 75, stored.AttackScore)
	assert.False(t, stored.IsAttackerAlive)
	assert.False(t, stored.CreatedAt.IsZero())
}
