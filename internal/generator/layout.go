package generator

import (
	"context"
	"fmt"
	"math/rand"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

// Build creates the working board for lvl. Explicit layouts place endpoints on an
// otherwise empty grid; freeform levels shuffle their letter bag into the smallest
// square that fits it. seed drives the shuffle only.
func (g *BoardGenerator) Build(ctx context.Context, lvl *domain.Level, seed int64) (*board.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case len(lvl.Endpoints) > 0 && lvl.Letters != "":
		return nil, ErrMixedLayout
	case len(lvl.Endpoints) > 0:
		return explicit(lvl)
	case lvl.Letters != "":
		rng := rand.New(rand.NewSource(seed))
		return freeform(lvl.Letters, rng)
	default:
		return nil, ErrEmptyLevel
	}
}

func explicit(lvl *domain.Level) (*board.Board, error) {
	if len(lvl.Board) > 0 {
		b, err := board.FromCells(lvl.Width, lvl.Height, lvl.Board, lvl.Endpoints)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
		}
		return b, nil
	}
	b, err := board.New(lvl.Width, lvl.Height, lvl.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
	}
	return b, nil
}

// freeform lays the shuffled bag out row-major; every placed letter becomes an
// endpoint of itself so letters that occur twice form a pair.
func freeform(letters string, rng *rand.Rand) (*board.Board, error) {
	bag := []rune(letters)
	rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })

	side := squareSide(len(bag))
	endpoints := make([]domain.Endpoint, 0, len(bag))
	for i, r := range bag {
		endpoints = append(endpoints, domain.Endpoint{X: i % side, Y: i / side, Letter: string(r)})
	}
	return board.New(side, side, endpoints)
}

// squareSide is the smallest s with s*s >= n.
func squareSide(n int) int {
	s := 1
	for s*s < n {
		s++
	}
	return s
}
