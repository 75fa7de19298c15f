package generator

import "errors"

var (
	// ErrMixedLayout indicates a level that sets both endpoints and a letter bag.
	ErrMixedLayout = errors.New("generator: level mixes explicit endpoints with a letter bag")
	// ErrEmptyLevel indicates a level with neither endpoints nor letters.
	ErrEmptyLevel = errors.New("generator: level has no endpoints and no letters")
)

// BoardGenerator turns level definitions into working boards.
type BoardGenerator struct{}

// NewBoardGenerator returns a generator. It holds no state; seeds are passed per call.
func NewBoardGenerator() *BoardGenerator {
	return &BoardGenerator{}
}

// Note: Build is implemented in layout.go.
