package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPlayerJoined   EventType = "player_joined"
	EventJoinCancelled  EventType = "join_cancelled"
	EventMatchActivated EventType = "match_activated"
	EventWordPlayed     EventType = "word_played"
	EventMatchCompleted EventType = "match_completed"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	MatchID   MatchID // Zero for user-only events
	Player    string  // Token fingerprint of the acting player, never the token itself
	Payload   any     // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Seat      Seat `json:"seat"`
	TimeLimit int  `json:"time_limit"`
}

// MatchActivatedPayload contains data for match activated events
type MatchActivatedPayload struct {
	Board       string  `json:"board"`
	TimeLimit   int     `json:"time_limit"`
	NextMatchID MatchID `json:"next_match_id"`
}

// WordPlayedPayload contains data for word played events
type WordPlayedPayload struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MatchCompletedPayload contains data for match completed events
type MatchCompletedPayload struct {
	Player1Score int `json:"player1_score"`
	Player2Score int `json:"player2_score"`
}
