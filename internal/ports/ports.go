package ports

import (
	"context"
	"time"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// LevelSource supplies level packs.
type LevelSource interface {
	List(ctx context.Context, sel domain.Selection) ([]domain.LevelMeta, error)
	Load(ctx context.Context, sel domain.Selection, id string) (*domain.Level, error)
}

// LevelStore is a LevelSource that also accepts authored levels.
type LevelStore interface {
	LevelSource
	Save(ctx context.Context, sel domain.Selection, lvl *domain.Level) error
}

// BoardGenerator builds the working board for a level.
type BoardGenerator interface {
	Build(ctx context.Context, lvl *domain.Level, seed int64) (*board.Board, error)
}

// Connections reports which letters have a live connection.
type Connections interface {
	Connected(letter string) bool
}

// Hinter picks the next unconnected letter and routes it.
type Hinter interface {
	Next(b *board.Board, conns Connections) (letter string, err error)
	Route(ctx context.Context, b *board.Board, letter string) ([]domain.Coord, error)
}

// Solver searches for complete solutions of a board.
type Solver interface {
	Solve(ctx context.Context, b *board.Board) ([]domain.WordPath, Stats, error)
	Unique(ctx context.Context, b *board.Board) (bool, Stats, error)
}

// Scorer is the team collaborator in competitive play. The engine only triggers it.
type Scorer interface {
	CurrentTeam() int
	ConsumeHint(team int) bool
	NextTurn(solved bool)
}

// Notifier shows a transient message that clears itself after d.
type Notifier interface {
	Notify(message string, d time.Duration)
	Current() string
}

// Navigator moves a session between levels.
type Navigator interface {
	AdvanceLevel(sessionID string)
	Back(sessionID string)
}

// Scheduler runs fn after d unless canceled. CancelAll drops every pending task.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
	CancelAll()
}
