package validator

import (
	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

// Kind is the verdict for a proposed next cell.
type Kind int

const (
	Reject    Kind = iota // ignore the move
	Extend                // append the cell
	Backtrack             // truncate the path to Decision.Index (inclusive)
	Complete              // append the cell and finalize
)

// Decision is the result of Step.
type Decision struct {
	Kind  Kind
	Index int // valid for Backtrack
}

// Owners reports which letter's live connection claims a cell.
type Owners interface {
	OwnerOf(c domain.Coord) (letter string, ok bool)
}

// PathValidator applies the adjacency and blocking rules to in-progress paths.
type PathValidator struct{}

func New() *PathValidator { return &PathValidator{} }

// Step decides what entering next does to path while drawing letter.
func (v *PathValidator) Step(b *board.Board, owners Owners, path []domain.Coord, next domain.Coord, letter string) Decision {
	if len(path) == 0 || letter == "" || !b.InBounds(next) {
		return Decision{Kind: Reject}
	}
	for i, c := range path {
		if c == next {
			return Decision{Kind: Backtrack, Index: i}
		}
	}
	if !path[len(path)-1].Adjacent(next) {
		return Decision{Kind: Reject}
	}
	cell, _ := b.Cell(next)
	if cell.Letter != "" {
		if v.IsTerminus(b, path, next, letter) {
			return Decision{Kind: Complete}
		}
		return Decision{Kind: Reject}
	}
	if cell.IsUsed {
		if owner, ok := owners.OwnerOf(next); !ok || owner != letter {
			return Decision{Kind: Reject}
		}
	}
	return Decision{Kind: Extend}
}

// IsTerminus reports whether c can end a path of letter that started at path[0].
func (v *PathValidator) IsTerminus(b *board.Board, path []domain.Coord, c domain.Coord, letter string) bool {
	if len(path) == 0 || c == path[0] || !b.IsEndpointOf(c, letter) {
		return false
	}
	cell, ok := b.Cell(c)
	return ok && cell.Letter == letter
}
