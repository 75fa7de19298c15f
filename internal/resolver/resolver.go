// Package resolver owns the set of live connections and the transactional
// rules for adding and removing them from a board.
package resolver

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

var (
	// ErrZeroLength indicates a path that starts and ends on the same cell.
	ErrZeroLength = errors.New("resolver: path must connect two distinct endpoints")
	// ErrNotContiguous indicates consecutive path cells that are not orthogonal neighbors.
	ErrNotContiguous = errors.New("resolver: path is not an orthogonal chain")
	// ErrRepeatedCell indicates a path visiting a cell twice.
	ErrRepeatedCell = errors.New("resolver: path visits a cell twice")
	// ErrNotEndpoints indicates a path whose ends are not the letter's endpoints.
	ErrNotEndpoints = errors.New("resolver: path must start and end on the letter's endpoints")
)

// Set holds live connections in creation order. At most one exists per letter.
type Set struct {
	paths []domain.WordPath
}

func NewSet() *Set { return &Set{} }

// Len returns the number of live connections.
func (s *Set) Len() int { return len(s.paths) }

// All returns a copy of the live connections, oldest first.
func (s *Set) All() []domain.WordPath {
	out := make([]domain.WordPath, len(s.paths))
	for i, p := range s.paths {
		p.Cells = append([]domain.Cell(nil), p.Cells...)
		out[i] = p
	}
	return out
}

// Get returns the live connection for letter.
func (s *Set) Get(letter string) (domain.WordPath, bool) {
	for _, p := range s.paths {
		if p.Word == letter {
			return p, true
		}
	}
	return domain.WordPath{}, false
}

// Connected reports whether letter has a live connection.
func (s *Set) Connected(letter string) bool {
	_, ok := s.Get(letter)
	return ok
}

// OwnerOf returns the letter whose connection covers c.
func (s *Set) OwnerOf(c domain.Coord) (string, bool) {
	for _, p := range s.paths {
		for _, pc := range p.Cells {
			if pc.Coord() == c {
				return p.Word, true
			}
		}
	}
	return "", false
}

// Finalize turns path into the live connection for letter. Connections that share
// any cell with path, and any previous connection of letter, are evicted and their
// cells restored before the new path is claimed. It returns the new connection and
// the evicted ones.
func (s *Set) Finalize(b *board.Board, letter string, path []domain.Coord) (domain.WordPath, []domain.WordPath, error) {
	if err := check(b, letter, path); err != nil {
		return domain.WordPath{}, nil, err
	}

	onPath := mapset.New[domain.Coord]()
	for _, c := range path {
		onPath.Put(c)
	}
	var kept, evicted []domain.WordPath
	for _, p := range s.paths {
		if p.Word == letter || overlaps(p, onPath) {
			evicted = append(evicted, p)
			continue
		}
		kept = append(kept, p)
	}
	s.paths = kept
	for _, p := range evicted {
		s.release(b, p)
	}

	color := board.ColorFor(letter)
	if start, _ := b.Cell(path[0]); start.Color != "" {
		color = start.Color
	}
	wp := domain.WordPath{Word: letter, StartIndex: b.Index(path[0])}
	for _, c := range path {
		b.Claim(c, color)
		cell, _ := b.Cell(c)
		wp.Cells = append(wp.Cells, cell)
	}
	s.paths = append(s.paths, wp)
	return wp, evicted, nil
}

// Remove deletes letter's connection and restores its cells.
func (s *Set) Remove(b *board.Board, letter string) (domain.WordPath, bool) {
	for i, p := range s.paths {
		if p.Word != letter {
			continue
		}
		s.paths = append(s.paths[:i:i], s.paths[i+1:]...)
		s.release(b, p)
		return p, true
	}
	return domain.WordPath{}, false
}

// Undo removes the most recently created connection.
func (s *Set) Undo(b *board.Board) (domain.WordPath, bool) {
	if len(s.paths) == 0 {
		return domain.WordPath{}, false
	}
	return s.Remove(b, s.paths[len(s.paths)-1].Word)
}

// Reset removes every connection and restores the whole board.
func (s *Set) Reset(b *board.Board) {
	s.paths = nil
	b.RestoreAll()
}

// Won reports whether every endpoint letter on b has a live connection.
// A board without letters is never won.
func (s *Set) Won(b *board.Board) bool {
	letters := b.Letters()
	if len(letters) == 0 {
		return false
	}
	for _, l := range letters {
		if !s.Connected(l) {
			return false
		}
	}
	return true
}

// release restores p's cells that no remaining connection covers.
func (s *Set) release(b *board.Board, p domain.WordPath) {
	for _, c := range p.Cells {
		if _, owned := s.OwnerOf(c.Coord()); owned {
			continue
		}
		b.Restore(c.Coord())
	}
}

func overlaps(p domain.WordPath, cells mapset.Set[domain.Coord]) bool {
	for _, c := range p.Cells {
		if cells.Has(c.Coord()) {
			return true
		}
	}
	return false
}

func check(b *board.Board, letter string, path []domain.Coord) error {
	if len(path) < 2 || path[0] == path[len(path)-1] {
		return ErrZeroLength
	}
	seen := mapset.New[domain.Coord]()
	for i, c := range path {
		if !b.InBounds(c) {
			return fmt.Errorf("%w: %s", board.ErrOutOfBounds, c)
		}
		if seen.Has(c) {
			return fmt.Errorf("%w: %s", ErrRepeatedCell, c)
		}
		seen.Put(c)
		if i > 0 && !path[i-1].Adjacent(c) {
			return fmt.Errorf("%w: %s -> %s", ErrNotContiguous, path[i-1], c)
		}
	}
	if !b.IsEndpointOf(path[0], letter) || !b.IsEndpointOf(path[len(path)-1], letter) {
		return fmt.Errorf("%w: %q", ErrNotEndpoints, letter)
	}
	return nil
}
