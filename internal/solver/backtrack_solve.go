package solver

import (
	"context"
	"fmt"
	"time"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/ports"
	"svw.info/powerletter/internal/resolver"
)

// Solve returns one complete set of connections, in level order. The input
// board is not modified.
func (s *BacktrackingSolver) Solve(ctx context.Context, b *board.Board) ([]domain.WordPath, ports.Stats, error) {
	start := time.Now()
	st, err := newSearch(ctx, b)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	var solution [][]domain.Coord
	st.found = func() bool {
		solution = make([][]domain.Coord, len(st.paths))
		copy(solution, st.paths)
		return true
	}
	st.letter(0)
	stats := ports.Stats{Nodes: st.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if solution == nil {
		return nil, stats, ErrUnsolvable
	}

	work := b.Clone()
	work.RestoreAll()
	set := resolver.NewSet()
	for i, path := range solution {
		if _, _, err := set.Finalize(work, st.letters[i], path); err != nil {
			return nil, stats, fmt.Errorf("letter %s: %w", st.letters[i], err)
		}
	}
	return set.All(), stats, nil
}
