package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/user"
	"github.com/thesrcielos/RobotArena/pkg/db"
	"gorm.io/gorm"
)

// SetupTestDatabase starts a throwaway Postgres container with the user and
// game tables migrated. Skipped with -short or when Docker is unavailable.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("robotarena_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "robotarena-repository",
			"test-name": t.Name(),
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, conn.AutoMigrate(&user.User{}, &game.Game{}))
	return conn
}

func CreateUser(t *testing.T, conn *gorm.DB, username string, rating, highest int) *user.User {
	t.Helper()
	u := &user.User{
		Username:      username,
		Password:      "hash",
		OverallRating: rating,
		HighestRating: highest,
	}
	require.NoError(t, conn.Create(u).Error)
	return u
}

func CreateGame(t *testing.T, conn *gorm.DB, g game.Game) *game.Game {
	t.Helper()
	require.NoError(t, conn.Create(&g).Error)
	return &g
}
