package model

import "strings"

// DefaultBoardSize is the side length of a standard board
const DefaultBoardSize = 4

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Board is an immutable square letter grid
type Board struct {
	Size  int
	Cells []rune // Row-major: Cells[row*Size+col]
}

// NewBoard creates a board from row-major letters. len(cells) must be size*size.
func NewBoard(size int, cells []rune) *Board {
	c := make([]rune, len(cells))
	copy(c, cells)
	return &Board{
		Size:  size,
		Cells: c,
	}
}

// Get returns the letter at the given position, or 0 if out of bounds
func (b *Board) Get(pos Position) rune {
	if !b.IsValidPosition(pos) {
		return 0
	}
	return b.Cells[b.index(pos)]
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// Neighbors returns the up to eight positions adjacent to pos, diagonals included
func (b *Board) Neighbors(pos Position) []Position {
	result := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if b.IsValidPosition(n) {
				result = append(result, n)
			}
		}
	}
	return result
}

// LetterCounts returns how many cells hold each letter
func (b *Board) LetterCounts() map[rune]int {
	counts := make(map[rune]int, len(b.Cells))
	for _, c := range b.Cells {
		counts[c]++
	}
	return counts
}

// String returns the letters in row-major order
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.Cells))
	for _, c := range b.Cells {
		sb.WriteRune(c)
	}
	return sb.String()
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.Size + pos.Col
}
