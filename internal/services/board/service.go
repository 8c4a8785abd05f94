package board

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/boggle-go/internal/dependencies/random"
	"github.com/mcoot/boggle-go/internal/model"
)

// Dice are the faces of the sixteen classic cubes. Letters are drawn from the
// concatenation, so common faces are proportionally more likely.
var Dice = []string{
	"AAEEGN", "ABBJOO", "ACHOPS", "AFFKPS",
	"AOOTTW", "CIMOTU", "DEILRX", "DELRVY",
	"DISTTY", "EEGHNW", "EEINSU", "EHRTVW",
	"EIOSST", "ELRTTY", "HIMNQU", "HLNNRZ",
}

var letterPool = []rune(strings.Join(Dice, ""))

// Service generates and validates boards
type Service struct {
	random random.Random
	size   int
}

// New creates a new BoardService producing boards of the given size
func New(random random.Random, size int) *Service {
	if size <= 0 {
		size = model.DefaultBoardSize
	}
	return &Service{
		random: random,
		size:   size,
	}
}

// Size returns the side length of generated boards
func (s *Service) Size() int {
	return s.size
}

// Generate fills every cell independently from the weighted letter pool
func (s *Service) Generate() *model.Board {
	cells := make([]rune, s.size*s.size)
	for i := range cells {
		cells[i] = letterPool[s.random.Intn(len(letterPool))]
	}
	return model.NewBoard(s.size, cells)
}

// CanBeFormed reports whether word can be traced on the board
func (s *Service) CanBeFormed(b *model.Board, word string) bool {
	return CanBeFormed(b, word)
}

// PoolIndex returns the index of the first occurrence of letter in the letter pool
func PoolIndex(letter rune) (int, bool) {
	for i, l := range letterPool {
		if l == letter {
			return i, true
		}
	}
	return 0, false
}

// Parse rebuilds a board from its row-major string form
func Parse(letters string) (*model.Board, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	n := utf8.RuneCountInString(letters)
	size := int(math.Sqrt(float64(n)))
	if n == 0 || size*size != n {
		return nil, model.ErrInvalidBoard
	}
	cells := []rune(letters)
	for _, c := range cells {
		if c < 'A' || c > 'Z' {
			return nil, model.ErrInvalidBoard
		}
	}
	return model.NewBoard(size, cells), nil
}

// CanBeFormed reports whether word (case-insensitive) can be spelled by a path of
// distinct, 8-way adjacent cells. The search is exhaustive depth-first backtracking.
func CanBeFormed(b *model.Board, word string) bool {
	if b == nil {
		return false
	}
	letters := []rune(strings.ToUpper(word))
	if len(letters) == 0 || len(letters) > len(b.Cells) {
		return false
	}
	// A word needing more copies of a letter than the board holds has no path
	available := b.LetterCounts()
	for _, l := range letters {
		available[l]--
		if available[l] < 0 {
			return false
		}
	}

	visited := make([]bool, len(b.Cells))
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if search(b, letters, model.Position{Row: row, Col: col}, visited) {
				return true
			}
		}
	}
	return false
}

// search tries to match letters starting at pos, marking cells as used along the path
func search(b *model.Board, letters []rune, pos model.Position, visited []bool) bool {
	idx := pos.Row*b.Size + pos.Col
	if visited[idx] || b.Get(pos) != letters[0] {
		return false
	}
	if len(letters) == 1 {
		return true
	}

	visited[idx] = true
	for _, next := range b.Neighbors(pos) {
		if search(b, letters[1:], next, visited) {
			visited[idx] = false
			return true
		}
	}
	visited[idx] = false
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate() *model.Board
	CanBeFormed(b *model.Board, word string) bool
	Size() int
}

var _ ServiceInterface = (*Service)(nil)
