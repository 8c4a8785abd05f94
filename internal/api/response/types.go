package response

import (
	"strconv"

	"github.com/mcoot/boggle-go/internal/model"
)

// UserTokenResponse is the response for user registration
type UserTokenResponse struct {
	UserToken string `json:"user_token"`
}

// GameIDResponse is the response for joining a game
type GameIDResponse struct {
	GameID string `json:"game_id"`
}

// GameIDFromModel formats a match id the way it appears in URLs
func GameIDFromModel(id model.MatchID) GameIDResponse {
	return GameIDResponse{GameID: strconv.FormatInt(int64(id), 10)}
}

// ScoreResponse is the response for playing a word
type ScoreResponse struct {
	Score int `json:"score"`
}

// WordScore is one entry of a player's history
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// PlayerStatus is a player's part of a game status
type PlayerStatus struct {
	Nickname    string      `json:"nickname,omitempty"`
	Score       int         `json:"score"`
	WordsPlayed []WordScore `json:"words_played,omitzero"`
}

// GameStatus is the response for a game status query. Fields absent from the
// view are omitted.
type GameStatus struct {
	GameState string        `json:"game_state"`
	Board     string        `json:"board,omitempty"`
	TimeLimit *int          `json:"time_limit,omitempty"`
	TimeLeft  *int          `json:"time_left,omitempty"`
	Player1   *PlayerStatus `json:"player1,omitempty"`
	Player2   *PlayerStatus `json:"player2,omitempty"`
}

// GameStatusFromModel converts a model.StatusView
func GameStatusFromModel(v *model.StatusView) GameStatus {
	status := GameStatus{
		GameState: string(v.State),
		TimeLimit: v.TimeLimit,
		TimeLeft:  v.TimeRemaining,
		Player1:   playerStatusFromModel(v.Player1),
		Player2:   playerStatusFromModel(v.Player2),
	}
	if v.Board != nil {
		status.Board = v.Board.String()
	}
	return status
}

func playerStatusFromModel(p *model.PlayerView) *PlayerStatus {
	if p == nil {
		return nil
	}
	status := &PlayerStatus{
		Nickname: p.Nickname,
		Score:    p.Score,
	}
	if p.Words != nil {
		status.WordsPlayed = make([]WordScore, len(p.Words))
		for i, w := range p.Words {
			status.WordsPlayed[i] = WordScore{Word: w.Word, Score: w.Score}
		}
	}
	return status
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
