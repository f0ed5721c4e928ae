package stats

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/user"
)

// MockStore runs the snapshot callback against Reader unless an error is
// configured for ReadSnapshot itself.
type MockStore struct {
	mock.Mock
	Reader *MockReader
}

func (m *MockStore) ReadSnapshot(ctx context.Context, fn func(r Reader) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Reader)
}

type MockReader struct {
	mock.Mock
}

func (m *MockReader) FetchUser(ctx context.Context, playerID uint) (*user.User, error) {
	args := m.Called(ctx, playerID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockReader) FetchAllUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

func (m *MockReader) FetchAttackGames(ctx context.Context, playerID uint) ([]game.Game, error) {
	args := m.Called(ctx, playerID)
	games, _ := args.Get(0).([]game.Game)
	return games, args.Error(1)
}

func (m *MockReader) FetchDefenseGames(ctx context.Context, playerID uint) ([]game.Game, error) {
	args := m.Called(ctx, playerID)
	games, _ := args.Get(0).([]game.Game)
	return games, args.Error(1)
}
