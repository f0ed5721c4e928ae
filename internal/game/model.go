package game

import "time"

// Game is one completed match, stored once and read from both the
// attacker's and the defender's side.
type Game struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AttackID        uint      `gorm:"not null;index" json:"attack_id"`
	DefendID        uint      `gorm:"not null;index" json:"defend_id"`
	AttackScore     int       `gorm:"not null;default:0" json:"attack_score"`
	DefendScore     int       `gorm:"not null;default:0" json:"defend_score"`
	DamageDone      int       `gorm:"not null;default:0" json:"damage_done"`
	RobotsDestroyed int       `gorm:"not null;default:0" json:"robots_destroyed"`
	EmpsUsed        int       `gorm:"not null;default:0" json:"emps_used"`
	IsAttackerAlive bool      `gorm:"not null" json:"is_attacker_alive"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Game) TableName() string {
	return "game"
}

type GameRequest struct {
	AttackID        uint `json:"attack_id"`
	DefendID        uint `json:"defend_id"`
	AttackScore     int  `json:"attack_score"`
	DefendScore     int  `json:"defend_score"`
	DamageDone      int  `json:"damage_done"`
	RobotsDestroyed int  `json:"robots_destroyed"`
	EmpsUsed        int  `json:"emps_used"`
	IsAttackerAlive bool `json:"is_attacker_alive"`
}
