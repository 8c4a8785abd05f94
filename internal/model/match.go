package model

import "time"

// MatchID uniquely identifies a match. IDs are allocated in increasing order.
type MatchID int64

// MatchState represents the current phase of a match
type MatchState string

const (
	MatchStatePending  MatchState = "pending"  // Waiting for a second player
	MatchStateActive   MatchState = "active"   // Board dealt, clock running
	MatchStateComplete MatchState = "complete" // Time expired, history frozen
)

// Seat identifies one of the two player positions in a match
type Seat int

const (
	SeatNone Seat = -1
	Seat1    Seat = 0
	Seat2    Seat = 1
)

// Opponent returns the other seat
func (s Seat) Opponent() Seat {
	switch s {
	case Seat1:
		return Seat2
	case Seat2:
		return Seat1
	default:
		return SeatNone
	}
}

// MatchPlayer is one seat of a match
type MatchPlayer struct {
	Token              Token // Empty when the seat is free
	RequestedTimeLimit int   // Seconds, recorded at join
	Score              int
	Words              map[string]int // Uppercased word -> credited score
}

// IsEmpty returns true if nobody occupies the seat
func (p *MatchPlayer) IsEmpty() bool {
	return p.Token == ""
}

// Match is a single two-player game
type Match struct {
	ID    MatchID
	State MatchState

	Players [2]MatchPlayer

	// Set on activation
	Board         *Board
	TimeLimit     int // Seconds, average of both requested limits
	TimeRemaining int // Seconds, recomputed on every observation
	StartedAt     time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMatch creates an empty pending match
func NewMatch(id MatchID, now time.Time) *Match {
	m := &Match{
		ID:        id,
		State:     MatchStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range m.Players {
		m.Players[i].Words = make(map[string]int)
	}
	return m
}

// SeatOf returns the seat occupied by token, or SeatNone
func (m *Match) SeatOf(token Token) Seat {
	if token == "" {
		return SeatNone
	}
	for i := range m.Players {
		if m.Players[i].Token == token {
			return Seat(i)
		}
	}
	return SeatNone
}

// Player returns the player in the given seat
func (m *Match) Player(seat Seat) *MatchPlayer {
	return &m.Players[seat]
}

// SeatedCount returns the number of occupied seats
func (m *Match) SeatedCount() int {
	count := 0
	for i := range m.Players {
		if !m.Players[i].IsEmpty() {
			count++
		}
	}
	return count
}
