// Package board holds the mutable Letter-Flow grid: cells in row-major order,
// the level's endpoints, and the base state cells are restored to.
package board

import (
	"errors"
	"fmt"

	"svw.info/powerletter/internal/domain"
)

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("board: grid must have at least one row and one column")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
	// ErrCellCount indicates a precomputed board that does not cover the grid.
	ErrCellCount = errors.New("board: cell count does not match grid size")
)

// Board is the working copy of a level's grid.
type Board struct {
	Width, Height int

	cells     []domain.Cell
	endpoints []domain.Endpoint
	byCoord   map[domain.Coord]domain.Endpoint
}

// New builds an empty width×height grid with the endpoints placed on it.
func New(width, height int, endpoints []domain.Endpoint) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	b := &Board{
		Width:     width,
		Height:    height,
		cells:     make([]domain.Cell, width*height),
		endpoints: append([]domain.Endpoint(nil), endpoints...),
		byCoord:   make(map[domain.Coord]domain.Endpoint, len(endpoints)),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.cells[y*width+x] = domain.Cell{X: x, Y: y}
		}
	}
	for _, e := range endpoints {
		c := e.Coord()
		if !b.InBounds(c) {
			return nil, fmt.Errorf("%w: endpoint %s %s", ErrOutOfBounds, e.Letter, c)
		}
		b.byCoord[c] = e
		cell := &b.cells[b.index(c)]
		cell.Letter = e.Letter
		cell.Color = e.Color
	}
	return b, nil
}

// FromCells adopts a precomputed cell list. Cells may arrive in any order but
// must cover the grid exactly once. Endpoints win over the cell data: their
// letter and color are stamped back and no cell starts out used.
func FromCells(width, height int, cells []domain.Cell, endpoints []domain.Endpoint) (*Board, error) {
	b, err := New(width, height, endpoints)
	if err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCellCount, len(cells), width*height)
	}
	for _, c := range cells {
		if !b.InBounds(c.Coord()) {
			return nil, fmt.Errorf("%w: cell %s", ErrOutOfBounds, c.Coord())
		}
		c.IsUsed = false
		if e, ok := b.byCoord[c.Coord()]; ok {
			c.Letter, c.Color = e.Letter, e.Color
		}
		b.cells[b.index(c.Coord())] = c
	}
	return b, nil
}

// InBounds reports whether c lies within the grid.
func (b *Board) InBounds(c domain.Coord) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

func (b *Board) index(c domain.Coord) int { return c.Y*b.Width + c.X }

// Index returns the row-major index of c, or -1 when c is outside the grid.
func (b *Board) Index(c domain.Coord) int {
	if !b.InBounds(c) {
		return -1
	}
	return b.index(c)
}

// Cell returns a copy of the cell at c.
func (b *Board) Cell(c domain.Coord) (domain.Cell, bool) {
	if !b.InBounds(c) {
		return domain.Cell{}, false
	}
	return b.cells[b.index(c)], true
}

// Cells returns a copy of all cells in row-major order.
func (b *Board) Cells() []domain.Cell {
	return append([]domain.Cell(nil), b.cells...)
}

// Bounds returns the min and max coordinates spanned by the cells.
func (b *Board) Bounds() (min, max domain.Coord) {
	return domain.Coord{}, domain.Coord{X: b.Width - 1, Y: b.Height - 1}
}

// Endpoints returns the level endpoints in authored order.
func (b *Board) Endpoints() []domain.Endpoint {
	return append([]domain.Endpoint(nil), b.endpoints...)
}

// EndpointAt returns the endpoint defined at c, if any.
func (b *Board) EndpointAt(c domain.Coord) (domain.Endpoint, bool) {
	e, ok := b.byCoord[c]
	return e, ok
}

// IsEndpointOf reports whether c is a defined endpoint of letter.
func (b *Board) IsEndpointOf(c domain.Coord, letter string) bool {
	e, ok := b.byCoord[c]
	return ok && e.Letter == letter
}

// EndpointsOf returns the coordinates of letter's endpoints in authored order.
func (b *Board) EndpointsOf(letter string) []domain.Coord {
	var out []domain.Coord
	for _, e := range b.endpoints {
		if e.Letter == letter {
			out = append(out, e.Coord())
		}
	}
	return out
}

// Letters returns the distinct endpoint letters in order of first appearance.
func (b *Board) Letters() []string {
	seen := make(map[string]bool, len(b.endpoints))
	var out []string
	for _, e := range b.endpoints {
		if e.Letter == "" || seen[e.Letter] {
			continue
		}
		seen[e.Letter] = true
		out = append(out, e.Letter)
	}
	return out
}

// BaseColor is the color c shows when no connection owns it.
func (b *Board) BaseColor(c domain.Coord) string {
	if e, ok := b.byCoord[c]; ok {
		return e.Color
	}
	return ""
}

// Claim marks c as used by a connection of the given color.
// Endpoints that define their own color keep it.
func (b *Board) Claim(c domain.Coord, color string) {
	if !b.InBounds(c) {
		return
	}
	cell := &b.cells[b.index(c)]
	cell.IsUsed = true
	if base := b.BaseColor(c); base != "" {
		cell.Color = base
		return
	}
	cell.Color = color
}

// Restore returns c to its unclaimed base state.
func (b *Board) Restore(c domain.Coord) {
	if !b.InBounds(c) {
		return
	}
	cell := &b.cells[b.index(c)]
	cell.IsUsed = false
	cell.Color = b.BaseColor(c)
}

// RestoreAll returns every cell to its base state.
func (b *Board) RestoreAll() {
	for i := range b.cells {
		b.Restore(b.cells[i].Coord())
	}
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	out := &Board{
		Width:     b.Width,
		Height:    b.Height,
		cells:     b.Cells(),
		endpoints: b.Endpoints(),
		byCoord:   make(map[domain.Coord]domain.Endpoint, len(b.byCoord)),
	}
	for k, v := range b.byCoord {
		out.byCoord[k] = v
	}
	return out
}
