package live

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/RobotArena/internal/stats"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) IsConnected(playerID uint) bool {
	args := m.Called(playerID)
	return args.Bool(0)
}

func (m *MockSender) Send(playerID uint, msg OutgoingMessage) bool {
	args := m.Called(playerID, msg)
	return args.Bool(0)
}

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) GetPlayerStats(ctx context.Context, playerID uint) (*stats.StatsResponse, error) {
	args := m.Called(ctx, playerID)
	resp, _ := args.Get(0).(*stats.StatsResponse)
	return resp, args.Error(1)
}
