package scoring

import (
	"unicode/utf8"

	"github.com/mcoot/boggle-go/internal/model"
)

// lengthBonuses is the cumulative bonus table: a word earns each bonus whose
// threshold its length exceeds.
var lengthBonuses = []struct {
	over  int
	bonus int
}{
	{over: 2, bonus: 1},
	{over: 4, bonus: 1},
	{over: 5, bonus: 1},
	{over: 6, bonus: 2},
	{over: 7, bonus: 6},
}

// Service scores words and applies the cross-player adjustment rules
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// WordScore returns the base score for a word of the given letters
func (s *Service) WordScore(word string) int {
	return WordScore(word)
}

// WordScore returns the base score for a word: 1-2 letters score 0, 3-4 score 1,
// 5 score 2, 6 score 3, 7 score 5 and 8 or more score 11.
func WordScore(word string) int {
	length := utf8.RuneCountInString(word)
	score := 0
	for _, b := range lengthBonuses {
		if length > b.over {
			score += b.bonus
		}
	}
	return score
}

// Apply records word for the player in seat and returns the score credited for this play.
// If the opponent holds a non-zero score for the word it is taken away from them. A word
// the player already recorded is credited 0.
func (s *Service) Apply(m *model.Match, seat model.Seat, word string, base int) int {
	player := m.Player(seat)
	opponent := m.Player(seat.Opponent())

	if prev := opponent.Words[word]; prev != 0 {
		opponent.Score -= prev
		opponent.Words[word] = 0
	}

	if _, played := player.Words[word]; played {
		return 0
	}

	player.Words[word] = base
	player.Score += base
	return base
}

// Interface for dependency injection
type ServiceInterface interface {
	WordScore(word string) int
	Apply(m *model.Match, seat model.Seat, word string, base int) int
}

var _ ServiceInterface = (*Service)(nil)
