package stats

// StatsResponse is the per-player summary served by the stats endpoint. It is
// rebuilt from storage on every request.
type StatsResponse struct {
	HighestAttackScore    int `json:"highest_attack_score"`
	HighestDefenseScore   int `json:"highest_defense_score"`
	Rating                int `json:"rating"`
	HighestRating         int `json:"highest_rating"`
	PositionInLeaderboard int `json:"position_in_leaderboard"`
	NoOfRobotsKilled      int `json:"no_of_robots_killed"`
	NoOfRobotsGotKilled   int `json:"no_of_robots_got_killed"`
	NoOfEmpsUsed          int `json:"no_of_emps_used"`
	TotalDamageDefense    int `json:"total_damage_defense"`
	TotalDamageAttack     int `json:"total_damage_attack"`
	NoOfAttackersSuicided int `json:"no_of_attackers_suicided"`
	NoOfAttacks           int `json:"no_of_attacks"`
	NoOfDefenses          int `json:"no_of_defenses"`
}
