package domain

import "time"

type User struct {
	Id           string
	Username     string
	PasswordHash string
}

// RankingEntry is one row of the win leaderboard. Username is empty for
// guest players that never registered.
type RankingEntry struct {
	PlayerId  string    `json:"playerId"`
	Username  string    `json:"username,omitempty"`
	Wins      int       `json:"wins"`
	LastWinAt time.Time `json:"lastWinAt"`
}
