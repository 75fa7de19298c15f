// Package hint finds the shortest legal route between a letter's endpoints.
package hint

import (
	"context"
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/ports"
)

var (
	// ErrNoPath indicates the search exhausted the grid without reaching the target.
	ErrNoPath = errors.New("hint: no path between endpoints")
	// ErrAllConnected indicates every letter already has a live connection.
	ErrAllConnected = errors.New("hint: every letter is connected")
	// ErrUnpairedLetter indicates a letter without two endpoints.
	ErrUnpairedLetter = errors.New("hint: letter needs two endpoints")
)

// offsets in visit order: +x, -x, +y, -y. Ties between equal-length routes are
// broken by this order.
var offsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Pathfinder implements breadth-first hint search.
type Pathfinder struct{}

func NewPathfinder() *Pathfinder { return &Pathfinder{} }

// Next returns the first letter, in level order, without a live connection.
// Letters lacking two endpoints can never be routed and are skipped; when only
// such letters remain it returns ErrUnpairedLetter, and ErrAllConnected when
// nothing is left.
func (p *Pathfinder) Next(b *board.Board, conns ports.Connections) (string, error) {
	unpaired := ""
	for _, l := range b.Letters() {
		if conns.Connected(l) {
			continue
		}
		if len(b.EndpointsOf(l)) != 2 {
			if unpaired == "" {
				unpaired = l
			}
			continue
		}
		return l, nil
	}
	if unpaired != "" {
		return "", fmt.Errorf("%w: %q", ErrUnpairedLetter, unpaired)
	}
	return "", ErrAllConnected
}

// Route runs BFS from letter's first endpoint to its second. Cells holding another
// letter block the search; claimed cells do not, since overlaps are resolved when
// the route is finalized.
func (p *Pathfinder) Route(ctx context.Context, b *board.Board, letter string) ([]domain.Coord, error) {
	ends := b.EndpointsOf(letter)
	if len(ends) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnpairedLetter, letter)
	}
	start, target := ends[0], ends[1]
	lo, hi := b.Bounds()

	passable := func(c domain.Coord) bool {
		if c.X < lo.X || c.X > hi.X || c.Y < lo.Y || c.Y > hi.Y {
			return false
		}
		cell, ok := b.Cell(c)
		return ok && (cell.Letter == "" || cell.Letter == letter)
	}

	visited := mapset.New[domain.Coord]()
	parent := make(map[domain.Coord]domain.Coord)
	queue := []domain.Coord{start}
	visited.Put(start)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return pathTo(parent, start, target), nil
		}
		for _, d := range offsets {
			nxt := domain.Coord{X: cur.X + d[0], Y: cur.Y + d[1]}
			if visited.Has(nxt) || !passable(nxt) {
				continue
			}
			visited.Put(nxt)
			parent[nxt] = cur
			queue = append(queue, nxt)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoPath, letter)
}

// pathTo walks parent links back from dest and returns start → dest.
func pathTo(parent map[domain.Coord]domain.Coord, start, dest domain.Coord) []domain.Coord {
	path := []domain.Coord{dest}
	for cur := dest; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
