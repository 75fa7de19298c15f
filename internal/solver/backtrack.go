// Package solver searches complete Letter-Flow solutions: every letter joined
// to its partner through empty cells, no two paths sharing a cell.
package solver

import (
	"context"
	"errors"

	"github.com/zyedidia/generic/mapset"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

var (
	// ErrUnsolvable is returned when no complete set of connections exists.
	ErrUnsolvable = errors.New("solver: no solution")
	// ErrNoLetters is returned for a board without endpoints.
	ErrNoLetters = errors.New("solver: board has no letters")
	// ErrUnpairedLetter is returned when a letter lacks exactly two endpoints.
	ErrUnpairedLetter = errors.New("solver: letter needs two endpoints")
)

// BacktrackingSolver connects letters in level order, depth first.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

var offsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// search is the state of one run. Claims on the board are ignored: the search
// always starts from the authored layout.
type search struct {
	ctx      context.Context
	b        *board.Board
	letters  []string
	ends     [][2]domain.Coord
	occupied mapset.Set[domain.Coord]
	paths    [][]domain.Coord
	nodes    int
	// found is called with a complete assignment; returning true stops the search.
	found func() bool
}

func newSearch(ctx context.Context, b *board.Board) (*search, error) {
	letters := b.Letters()
	if len(letters) == 0 {
		return nil, ErrNoLetters
	}
	s := &search{
		ctx:      ctx,
		b:        b,
		letters:  letters,
		ends:     make([][2]domain.Coord, len(letters)),
		occupied: mapset.New[domain.Coord](),
		paths:    make([][]domain.Coord, len(letters)),
	}
	for i, l := range letters {
		eps := b.EndpointsOf(l)
		if len(eps) != 2 {
			return nil, ErrUnpairedLetter
		}
		s.ends[i] = [2]domain.Coord{eps[0], eps[1]}
	}
	return s, nil
}

// letter starts the path of letters[i], or reports a complete assignment.
func (s *search) letter(i int) bool {
	if s.ctx.Err() != nil {
		return true
	}
	if i == len(s.letters) {
		return s.found()
	}
	if !s.open(i, s.ends[i][0]) {
		return false
	}
	return s.extend(i, []domain.Coord{s.ends[i][0]})
}

func (s *search) extend(i int, path []domain.Coord) bool {
	s.nodes++
	if s.ctx.Err() != nil {
		return true
	}
	cur, target := path[len(path)-1], s.ends[i][1]
	for _, o := range offsets {
		n := domain.Coord{X: cur.X + o[0], Y: cur.Y + o[1]}
		if n == target {
			s.paths[i] = append(append([]domain.Coord(nil), path...), n)
			if s.letter(i + 1) {
				return true
			}
			continue
		}
		if !s.free(n) {
			continue
		}
		s.occupied.Put(n)
		if s.open(i, n) && s.extend(i, append(path, n)) {
			return true
		}
		s.occupied.Remove(n)
	}
	return false
}

// free reports whether n is an empty cell no path holds.
func (s *search) free(n domain.Coord) bool {
	c, ok := s.b.Cell(n)
	return ok && c.Letter == "" && !s.occupied.Has(n)
}

// open prunes a branch once the head of letters[i] or any later letter is cut
// off from its partner.
func (s *search) open(i int, head domain.Coord) bool {
	if !s.reach(head, s.ends[i][1]) {
		return false
	}
	for j := i + 1; j < len(s.letters); j++ {
		if !s.reach(s.ends[j][0], s.ends[j][1]) {
			return false
		}
	}
	return true
}

func (s *search) reach(from, to domain.Coord) bool {
	visited := mapset.New[domain.Coord]()
	visited.Put(from)
	queue := []domain.Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, o := range offsets {
			n := domain.Coord{X: cur.X + o[0], Y: cur.Y + o[1]}
			if n == to {
				return true
			}
			if visited.Has(n) || !s.free(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return false
}
