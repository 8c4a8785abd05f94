package model

// StatusView is a read-only projection of a match. Which fields are populated depends
// on the match state and whether a brief view was requested.
type StatusView struct {
	State         MatchState
	Board         *Board
	TimeLimit     *int
	TimeRemaining *int
	Player1       *PlayerView
	Player2       *PlayerView
}

// PlayerView is the per-player part of a StatusView
type PlayerView struct {
	Nickname string // Empty in brief views
	Score    int
	Words    []WordScore // Only populated for complete matches in full views
}

// WordScore is a single word from a player's history
type WordScore struct {
	Word  string
	Score int
}
