package router

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/RobotArena/websocket/message"
)

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) PushStats(ctx context.Context, recipientID, subjectID uint) {
	m.Called(recipientID, subjectID)
}

func TestRouteMessage_StatsRefresh(t *testing.T) {
	tests := []struct {
		name    string
		payload json.RawMessage
		subject uint
	}{
		{"no payload", nil, 5},
		{"null payload", json.RawMessage(`null`), 5},
		{"own id", json.RawMessage(`{"player_id":5}`), 5},
		{"other player", json.RawMessage(`{"player_id":8}`), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pusher := &mockPusher{}
			pusher.On("PushStats", uint(5), tt.subject).Return()
			r := NewRouter(pusher)

			ok := r.RouteMessage(5, message.Message{Type: message.TypeStatsRefresh, Payload: tt.payload})

			assert.True(t, ok)
			pusher.AssertExpectations(t)
		})
	}
}

func TestRouteMessage_BadPayload(t *testing.T) {
	pusher := &mockPusher{}
	r := NewRouter(pusher)

	ok := r.RouteMessage(5, message.Message{Type: message.TypeStatsRefresh, Payload: json.RawMessage(`{"player_id":"x"}`)})

	assert.True(t, ok)
	pusher.AssertNotCalled(t, "PushStats", mock.Anything, mock.Anything)
}

func TestRouteMessage_UnknownType(t *testing.T) {
	pusher := &mockPusher{}
	r := NewRouter(pusher)

	assert.False(t, r.RouteMessage(5, message.Message{Type: "MOVE"}))
	pusher.AssertNotCalled(t, "PushStats", mock.Anything, mock.Anything)
}
