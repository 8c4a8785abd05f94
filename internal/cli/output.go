package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		fmt.Fprintf(o.w, "Registered. Token: %s\n", v.UserToken)
	case JoinResult:
		o.printJoinResult(v)
	case PlayResult:
		fmt.Fprintf(o.w, "%s scored %d\n", v.Word, v.Score)
	case GameStatus:
		o.printGameStatus(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type
type RegisterResult struct {
	UserToken string `json:"user_token"`
}

// JoinResult combines the game id with whether the game started
type JoinResult struct {
	GameID string `json:"game_id"`
	Paired bool   `json:"paired"`
}

// PlayResult combines the played word and its score
type PlayResult struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// GameStatus response type (matches API)
type GameStatus struct {
	GameState string        `json:"game_state"`
	Board     string        `json:"board,omitempty"`
	TimeLimit *int          `json:"time_limit,omitempty"`
	TimeLeft  *int          `json:"time_left,omitempty"`
	Player1   *PlayerStatus `json:"player1,omitempty"`
	Player2   *PlayerStatus `json:"player2,omitempty"`
}

// PlayerStatus response type
type PlayerStatus struct {
	Nickname    string      `json:"nickname,omitempty"`
	Score       int         `json:"score"`
	WordsPlayed []WordScore `json:"words_played,omitempty"`
}

// WordScore response type
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Winner returns the nickname of the higher scorer, or "" on a tie
func (g GameStatus) Winner() string {
	if g.Player1 == nil || g.Player2 == nil || g.Player1.Score == g.Player2.Score {
		return ""
	}
	if g.Player1.Score > g.Player2.Score {
		return playerLabel(g.Player1, 1)
	}
	return playerLabel(g.Player2, 2)
}

func playerLabel(p *PlayerStatus, seat int) string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return fmt.Sprintf("Player %d", seat)
}

func (o *Output) printJoinResult(j JoinResult) {
	if j.Paired {
		fmt.Fprintf(o.w, "Game %s started\n", j.GameID)
	} else {
		fmt.Fprintf(o.w, "Waiting for an opponent in game %s\n", j.GameID)
	}
}

func (o *Output) printGameStatus(g GameStatus) {
	fmt.Fprintf(o.w, "State: %s\n", g.GameState)
	if g.TimeLimit != nil {
		fmt.Fprintf(o.w, "Time Limit: %ds\n", *g.TimeLimit)
	}
	if g.TimeLeft != nil {
		fmt.Fprintf(o.w, "Time Left: %ds\n", *g.TimeLeft)
	}

	if g.Board != "" {
		fmt.Fprintln(o.w)
		o.printBoard(g.Board)
	}

	for i, p := range []*PlayerStatus{g.Player1, g.Player2} {
		if p == nil {
			continue
		}
		fmt.Fprintf(o.w, "\n%s: %d points\n", playerLabel(p, i+1), p.Score)
		for _, w := range p.WordsPlayed {
			fmt.Fprintf(o.w, "  - %s (%d)\n", w.Word, w.Score)
		}
	}

	if g.GameState == "complete" && g.Player1 != nil && g.Player2 != nil {
		if winner := g.Winner(); winner != "" {
			fmt.Fprintf(o.w, "\nWinner: %s\n", winner)
		} else {
			fmt.Fprintln(o.w, "\nDraw")
		}
	}
}

// printBoard lays out a row-major board string as a square grid
func (o *Output) printBoard(board string) {
	letters := []rune(board)
	size := 0
	for size*size < len(letters) {
		size++
	}
	if size == 0 || size*size != len(letters) {
		fmt.Fprintf(o.w, "Board: %s\n", board)
		return
	}

	border := "+" + strings.Repeat("---", size) + "+"
	fmt.Fprintln(o.w, border)
	for row := 0; row < size; row++ {
		fmt.Fprint(o.w, "|")
		for _, l := range letters[row*size : (row+1)*size] {
			fmt.Fprintf(o.w, " %c ", l)
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}
