package solver

import (
	"context"
	"time"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/ports"
)

// Unique counts solutions up to 2 and reports whether exactly one exists.
// Two solutions differ when any letter takes a different route.
func (s *BacktrackingSolver) Unique(ctx context.Context, b *board.Board) (bool, ports.Stats, error) {
	start := time.Now()
	st, err := newSearch(ctx, b)
	if err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, err
	}
	count := 0
	st.found = func() bool {
		count++
		return count >= 2
	}
	st.letter(0)
	stats := ports.Stats{Nodes: st.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, stats, err
	}
	return count == 1, stats, nil
}
