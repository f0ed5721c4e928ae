package game

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) SaveGame(ctx context.Context, g *Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

type MockStatsNotifier struct {
	mock.Mock
}

func (m *MockStatsNotifier) PublishStatsUpdated(ctx context.Context, playerIDs ...uint) error {
	args := m.Called(ctx, playerIDs)
	return args.Error(0)
}
