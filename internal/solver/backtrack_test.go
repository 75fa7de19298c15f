package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/resolver"
)

func ep(x, y int, l string) domain.Endpoint { return domain.Endpoint{X: x, Y: y, Letter: l} }

func mustBoard(t *testing.T, w, h int, eps ...domain.Endpoint) *board.Board {
	t.Helper()
	b, err := board.New(w, h, eps)
	require.NoError(t, err)
	return b
}

func TestSolveConnectsEveryLetter(t *testing.T) {
	// A . . B
	// . . . .
	// A B . .
	b := mustBoard(t, 4, 3, ep(0, 0, "A"), ep(0, 2, "A"), ep(3, 0, "B"), ep(1, 2, "B"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	paths, st, err := NewBacktrackingSolver().Solve(ctx, b)
	require.NoError(t, err, "nodes=%d", st.Nodes)
	require.Len(t, paths, 2)
	assert.Positive(t, st.Nodes)

	// Replaying the answer on a fresh board wins it.
	work := b.Clone()
	set := resolver.NewSet()
	seen := map[domain.Coord]string{}
	for _, wp := range paths {
		for _, c := range wp.Coords() {
			prev, dup := seen[c]
			assert.False(t, dup, "cell %v shared by %s and %s", c, prev, wp.Word)
			seen[c] = wp.Word
		}
		_, evicted, err := set.Finalize(work, wp.Word, wp.Coords())
		require.NoError(t, err)
		assert.Empty(t, evicted)
	}
	assert.True(t, set.Won(work))
	for _, c := range b.Cells() {
		assert.False(t, c.IsUsed, "input board untouched")
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// A B
	// B A
	b := mustBoard(t, 2, 2, ep(0, 0, "A"), ep(1, 1, "A"), ep(1, 0, "B"), ep(0, 1, "B"))
	_, _, err := NewBacktrackingSolver().Solve(context.Background(), b)
	require.ErrorIs(t, err, ErrUnsolvable)
}

func TestSolveRejectsDegenerateBoards(t *testing.T) {
	_, _, err := NewBacktrackingSolver().Solve(context.Background(), mustBoard(t, 2, 2))
	require.ErrorIs(t, err, ErrNoLetters)

	_, _, err = NewBacktrackingSolver().Solve(context.Background(), mustBoard(t, 2, 2, ep(0, 0, "A")))
	require.ErrorIs(t, err, ErrUnpairedLetter)
}

func TestSolveCanceled(t *testing.T) {
	b := mustBoard(t, 3, 3, ep(0, 0, "A"), ep(2, 2, "A"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewBacktrackingSolver().Solve(ctx, b)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnique(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		eps  []domain.Endpoint
		want bool
	}{
		{"single corridor", 3, 1, []domain.Endpoint{ep(0, 0, "A"), ep(2, 0, "A")}, true},
		{"two routes", 3, 2, []domain.Endpoint{ep(0, 0, "A"), ep(2, 0, "A")}, false},
		{"adjacent pairs", 2, 2, []domain.Endpoint{ep(0, 0, "A"), ep(1, 0, "A"), ep(0, 1, "B"), ep(1, 1, "B")}, true},
		{"unsolvable", 2, 2, []domain.Endpoint{ep(0, 0, "A"), ep(1, 1, "A"), ep(1, 0, "B"), ep(0, 1, "B")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _, err := NewBacktrackingSolver().Unique(context.Background(), mustBoard(t, tt.w, tt.h, tt.eps...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
