package live

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"github.com/thesrcielos/RobotArena/internal/stats"
)

const (
	TypeStats = "STATS"
	TypeError = "ERROR"

	pushTimeout = 5 * time.Second
)

type StatsProvider interface {
	GetPlayerStats(ctx context.Context, playerID uint) (*stats.StatsResponse, error)
}

type Sender interface {
	IsConnected(playerID uint) bool
	Send(playerID uint, msg OutgoingMessage) bool
}

type StatsPayload struct {
	PlayerID uint                 `json:"player_id"`
	Stats    *stats.StatsResponse `json:"stats"`
}

type ErrorPayload struct {
	PlayerID uint   `json:"player_id"`
	Message  string `json:"message"`
}

// Pusher recomputes stats from storage and writes them to connected players.
type Pusher struct {
	sender Sender
	stats  StatsProvider
	wg     sync.WaitGroup
}

func NewPusher(sender Sender, provider StatsProvider) *Pusher {
	return &Pusher{sender: sender, stats: provider}
}

// HandleEvent pushes fresh stats to every player named in the event that is
// connected to this instance. Each push runs in its own goroutine so the
// subscriber loop never waits on the database.
func (p *Pusher) HandleEvent(event StatsEvent) {
	for _, playerID := range event.Players {
		if !p.sender.IsConnected(playerID) {
			continue
		}
		p.wg.Add(1)
		go func(playerID uint) {
			defer p.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			defer cancel()
			p.PushStats(ctx, playerID, playerID)
		}(playerID)
	}
}

// Wait blocks until every push started by HandleEvent has finished.
func (p *Pusher) Wait() {
	p.wg.Wait()
}

// PushStats sends subjectID's stats to recipientID.
func (p *Pusher) PushStats(ctx context.Context, recipientID, subjectID uint) {
	response, err := p.stats.GetPlayerStats(ctx, subjectID)
	if err != nil {
		message := "error computing stats"
		if apperrors.IsNotFound(err) {
			message = "player not found"
		}
		p.sender.Send(recipientID, OutgoingMessage{
			Type:    TypeError,
			Payload: ErrorPayload{PlayerID: subjectID, Message: message},
		})
		return
	}

	if !p.sender.Send(recipientID, OutgoingMessage{
		Type:    TypeStats,
		Payload: StatsPayload{PlayerID: subjectID, Stats: response},
	}) {
		log.WithFields(log.Fields{"recipient": recipientID, "subject": subjectID}).Debug("Stats not delivered, player not connected")
	}
}
