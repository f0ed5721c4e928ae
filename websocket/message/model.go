package message

import (
	"encoding/json"
)

const TypeStatsRefresh = "STATS_REFRESH"

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StatsRefreshPayload asks for another player's stats. An empty payload or a
// zero PlayerID means the sender's own stats.
type StatsRefreshPayload struct {
	PlayerID uint `json:"player_id"`
}
