package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

func xy(x, y int) domain.Coord { return domain.Coord{X: x, Y: y} }

// 3×3: A at (0,0)/(2,0), B at (0,2)/(2,2). Only A carries a level color.
func newBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(3, 3, []domain.Endpoint{
		{X: 0, Y: 0, Letter: "A", Color: "#a00"}, {X: 2, Y: 0, Letter: "A", Color: "#a00"},
		{X: 0, Y: 2, Letter: "B"}, {X: 2, Y: 2, Letter: "B"},
	})
	require.NoError(t, err)
	return b
}

func cell(t *testing.T, b *board.Board, c domain.Coord) domain.Cell {
	t.Helper()
	got, ok := b.Cell(c)
	require.True(t, ok)
	return got
}

func assertAdjacent(t *testing.T, wp domain.WordPath) {
	t.Helper()
	for i := 1; i < len(wp.Cells); i++ {
		require.True(t, wp.Cells[i-1].Coord().Adjacent(wp.Cells[i].Coord()),
			"%s: %v -> %v", wp.Word, wp.Cells[i-1].Coord(), wp.Cells[i].Coord())
	}
}

func TestFinalizeClaimsCells(t *testing.T) {
	b := newBoard(t)
	s := NewSet()

	wp, evicted, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	require.Empty(t, evicted)
	require.Len(t, wp.Cells, 3)
	assert.Equal(t, 0, wp.StartIndex)
	assertAdjacent(t, wp)

	mid := cell(t, b, xy(1, 0))
	assert.True(t, mid.IsUsed)
	assert.Equal(t, "#a00", mid.Color, "start cell color wins")

	owner, ok := s.OwnerOf(xy(1, 0))
	require.True(t, ok)
	assert.Equal(t, "A", owner)
	assert.False(t, s.Won(b))
}

func TestFinalizeDerivesColorFromLetter(t *testing.T) {
	b := newBoard(t)
	s := NewSet()
	_, _, err := s.Finalize(b, "B", []domain.Coord{xy(0, 2), xy(1, 2), xy(2, 2)})
	require.NoError(t, err)
	assert.Equal(t, board.ColorFor("B"), cell(t, b, xy(1, 2)).Color)
}

func TestFinalizeRejectsBadPaths(t *testing.T) {
	b := newBoard(t)
	cases := []struct {
		name   string
		letter string
		path   []domain.Coord
		want   error
	}{
		{"single cell", "A", []domain.Coord{xy(0, 0)}, ErrZeroLength},
		{"loop back to start", "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(0, 0)}, ErrZeroLength},
		{"gap", "A", []domain.Coord{xy(0, 0), xy(2, 0)}, ErrNotContiguous},
		{"diagonal", "A", []domain.Coord{xy(0, 0), xy(1, 1), xy(2, 0)}, ErrNotContiguous},
		{"repeat", "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(1, 1), xy(1, 0), xy(2, 0)}, ErrRepeatedCell},
		{"wrong letter", "B", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)}, ErrNotEndpoints},
		{"ends off endpoint", "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(1, 1)}, ErrNotEndpoints},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSet()
			_, _, err := s.Finalize(b, tc.letter, tc.path)
			require.ErrorIs(t, err, tc.want)
			assert.Zero(t, s.Len())
			for _, c := range b.Cells() {
				assert.False(t, c.IsUsed)
			}
		})
	}
}

func TestFinalizeEvictsOverlappingConnection(t *testing.T) {
	b := newBoard(t)
	s := NewSet()

	// A detours through the middle row.
	aPath := []domain.Coord{xy(0, 0), xy(0, 1), xy(1, 1), xy(2, 1), xy(2, 0)}
	_, _, err := s.Finalize(b, "A", aPath)
	require.NoError(t, err)

	// B climbs through (1,1).
	bPath := []domain.Coord{xy(0, 2), xy(1, 2), xy(1, 1), xy(2, 1), xy(2, 2)}
	_, evicted, err := s.Finalize(b, "B", bPath)
	require.NoError(t, err)
	require.Len(t, evicted, 1)
	assert.Equal(t, "A", evicted[0].Word)

	assert.False(t, s.Connected("A"))
	assert.True(t, s.Connected("B"))
	assert.Equal(t, 1, s.Len())

	owner, ok := s.OwnerOf(xy(1, 1))
	require.True(t, ok)
	assert.Equal(t, "B", owner)
	assert.True(t, cell(t, b, xy(1, 1)).IsUsed)

	// Cells only A used are released, endpoints back to their level color.
	assert.False(t, cell(t, b, xy(0, 1)).IsUsed)
	assert.Empty(t, cell(t, b, xy(0, 1)).Color)
	a0 := cell(t, b, xy(0, 0))
	assert.False(t, a0.IsUsed)
	assert.Equal(t, "#a00", a0.Color)
}

func TestFinalizeLeavesDisjointConnectionsAlone(t *testing.T) {
	b := newBoard(t)
	s := NewSet()
	_, _, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	_, evicted, err := s.Finalize(b, "B", []domain.Coord{xy(0, 2), xy(1, 2), xy(2, 2)})
	require.NoError(t, err)
	assert.Empty(t, evicted)
	assert.True(t, s.Won(b))
	assert.True(t, cell(t, b, xy(1, 0)).IsUsed)
}

func TestFinalizeReplacesSameLetter(t *testing.T) {
	b := newBoard(t)
	s := NewSet()
	_, _, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(0, 1), xy(1, 1), xy(2, 1), xy(2, 0)})
	require.NoError(t, err)
	_, evicted, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	require.Len(t, evicted, 1)
	assert.Equal(t, 1, s.Len())
	assert.False(t, cell(t, b, xy(1, 1)).IsUsed)
	assert.True(t, cell(t, b, xy(1, 0)).IsUsed)
}

func TestRemoveUndoReset(t *testing.T) {
	b := newBoard(t)
	s := NewSet()
	_, _, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	_, _, err = s.Finalize(b, "B", []domain.Coord{xy(0, 2), xy(1, 2), xy(2, 2)})
	require.NoError(t, err)
	require.True(t, s.Won(b))

	undone, ok := s.Undo(b)
	require.True(t, ok)
	assert.Equal(t, "B", undone.Word, "undo removes the newest connection")
	assert.False(t, s.Won(b))
	assert.False(t, cell(t, b, xy(1, 2)).IsUsed)

	_, ok = s.Remove(b, "B")
	assert.False(t, ok)
	removed, ok := s.Remove(b, "A")
	require.True(t, ok)
	assert.Equal(t, "A", removed.Word)
	_, ok = s.Undo(b)
	assert.False(t, ok)

	_, _, err = s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	s.Reset(b)
	assert.Zero(t, s.Len())
	for _, c := range b.Cells() {
		assert.False(t, c.IsUsed)
		assert.Equal(t, b.BaseColor(c.Coord()), c.Color)
	}
}

func TestWonNeedsLetters(t *testing.T) {
	b, err := board.New(2, 2, nil)
	require.NoError(t, err)
	assert.False(t, NewSet().Won(b))
}

func TestAllReturnsCopies(t *testing.T) {
	b := newBoard(t)
	s := NewSet()
	_, _, err := s.Finalize(b, "A", []domain.Coord{xy(0, 0), xy(1, 0), xy(2, 0)})
	require.NoError(t, err)
	all := s.All()
	all[0].Cells[0].Letter = "Z"
	got, _ := s.Get("A")
	assert.Equal(t, "A", got.Cells[0].Letter)
}
