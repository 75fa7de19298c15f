package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/solver"
)

// Validate checks the level schema: exactly one layout, endpoints inside the
// grid on distinct cells, and two endpoints per letter.
func Validate(lvl *domain.Level) error {
	explicit := len(lvl.Endpoints) > 0
	freeform := lvl.Letters != ""
	switch {
	case explicit && freeform:
		return fmt.Errorf("%w: %s: both endpoints and letter bag", ErrMalformedLevel, lvl.ID)
	case freeform:
		return validateBag(lvl)
	case !explicit:
		return fmt.Errorf("%w: %s: unknown layout", ErrMalformedLevel, lvl.ID)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return fmt.Errorf("%w: %s: grid %dx%d", ErrMalformedLevel, lvl.ID, lvl.Width, lvl.Height)
	}
	if lvl.Board != nil && len(lvl.Board) != lvl.Width*lvl.Height {
		return fmt.Errorf("%w: %s: board has %d cells, want %d", ErrMalformedLevel, lvl.ID, len(lvl.Board), lvl.Width*lvl.Height)
	}

	seen := mapset.New[domain.Coord]()
	count := map[string]int{}
	for _, e := range lvl.Endpoints {
		c := e.Coord()
		if c.X < 0 || c.Y < 0 || c.X >= lvl.Width || c.Y >= lvl.Height {
			return fmt.Errorf("%w: %s: endpoint %v outside grid", ErrMalformedLevel, lvl.ID, c)
		}
		if e.Letter == "" {
			return fmt.Errorf("%w: %s: endpoint %v without letter", ErrMalformedLevel, lvl.ID, c)
		}
		if seen.Has(c) {
			return fmt.Errorf("%w: %s: duplicate endpoint %v", ErrMalformedLevel, lvl.ID, c)
		}
		seen.Put(c)
		count[e.Letter]++
	}
	for l, n := range count {
		if n != 2 {
			return fmt.Errorf("%w: %s: letter %s has %d endpoints", ErrMalformedLevel, lvl.ID, l, n)
		}
	}
	return validateBoard(lvl)
}

// validateBag requires every letter of a freeform bag to occur exactly twice.
func validateBag(lvl *domain.Level) error {
	count := map[rune]int{}
	for _, r := range lvl.Letters {
		count[r]++
	}
	for r, n := range count {
		if n != 2 {
			return fmt.Errorf("%w: %s: letter %c occurs %d times in bag", ErrMalformedLevel, lvl.ID, r, n)
		}
	}
	return nil
}

// validateBoard checks a precomputed board against the endpoints: each grid
// cell once, letters only on endpoints, nothing pre-claimed.
func validateBoard(lvl *domain.Level) error {
	if lvl.Board == nil {
		return nil
	}
	ends := make(map[domain.Coord]string, len(lvl.Endpoints))
	for _, e := range lvl.Endpoints {
		ends[e.Coord()] = e.Letter
	}
	seen := mapset.New[domain.Coord]()
	for _, c := range lvl.Board {
		p := c.Coord()
		if p.X < 0 || p.Y < 0 || p.X >= lvl.Width || p.Y >= lvl.Height {
			return fmt.Errorf("%w: %s: board cell %v outside grid", ErrMalformedLevel, lvl.ID, p)
		}
		if seen.Has(p) {
			return fmt.Errorf("%w: %s: board cell %v repeated", ErrMalformedLevel, lvl.ID, p)
		}
		seen.Put(p)
		if c.IsUsed {
			return fmt.Errorf("%w: %s: board cell %v is pre-claimed", ErrMalformedLevel, lvl.ID, p)
		}
		if c.Letter != ends[p] {
			return fmt.Errorf("%w: %s: board cell %v has letter %q, endpoints say %q", ErrMalformedLevel, lvl.ID, p, c.Letter, ends[p])
		}
	}
	return nil
}

func (s *FS) checkSolvable(ctx context.Context, lvl *domain.Level) error {
	if s.solver == nil || lvl.Freeform() {
		return nil
	}
	b, err := board.New(lvl.Width, lvl.Height, lvl.Endpoints)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedLevel, lvl.ID, err)
	}
	_, _, err = s.solver.Solve(ctx, b)
	if errors.Is(err, solver.ErrUnsolvable) {
		return fmt.Errorf("%w: %s: no solution", ErrMalformedLevel, lvl.ID)
	}
	return err
}
