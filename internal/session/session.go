// Package session runs the press/drag/release state machine of one Letter-Flow
// game: it owns the working board, the live connections and the in-progress path.
package session

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/hint"
	"svw.info/powerletter/internal/notify"
	"svw.info/powerletter/internal/ports"
	"svw.info/powerletter/internal/resolver"
	"svw.info/powerletter/internal/schedule"
	"svw.info/powerletter/internal/validator"
)

// ErrNoLevel is returned by operations that need a loaded level.
var ErrNoLevel = errors.New("session: no level loaded")

// Config holds per-session tunables.
type Config struct {
	Mode           domain.Mode
	AdvanceDelay   time.Duration // competitive auto-advance after a win
	NotifyDuration time.Duration
}

// DefaultConfig returns single-player settings.
func DefaultConfig() Config {
	return Config{
		Mode:           domain.Single,
		AdvanceDelay:   3 * time.Second,
		NotifyDuration: 2 * time.Second,
	}
}

// Deps are the collaborators of a session. Nil fields get defaults, except
// Scorer, which is required in competitive mode only, and Navigator.
type Deps struct {
	Hinter    ports.Hinter
	Scorer    ports.Scorer
	Notifier  ports.Notifier
	Navigator ports.Navigator
	Scheduler ports.Scheduler
	Logger    *slog.Logger
}

// Session is one player's (or one team table's) game.
// All methods are safe for concurrent use.
type Session struct {
	ID string

	mu     sync.Mutex
	cfg    Config
	level  *domain.Level
	board  *board.Board
	conns  *resolver.Set
	path   []domain.Coord
	active string
	status domain.Status
	gen    uint64

	cancelAdvance func()

	validator *validator.PathValidator
	hinter    ports.Hinter
	scorer    ports.Scorer
	notifier  ports.Notifier
	nav       ports.Navigator
	sched     ports.Scheduler
	log       *slog.Logger
}

// New creates an idle session without a level.
func New(id string, cfg Config, deps Deps) *Session {
	s := &Session{
		ID:        id,
		cfg:       cfg,
		conns:     resolver.NewSet(),
		validator: validator.New(),
		hinter:    deps.Hinter,
		scorer:    deps.Scorer,
		notifier:  deps.Notifier,
		nav:       deps.Navigator,
		sched:     deps.Scheduler,
		log:       deps.Logger,
	}
	if s.hinter == nil {
		s.hinter = hint.NewPathfinder()
	}
	if s.sched == nil {
		s.sched = schedule.New()
	}
	if s.notifier == nil {
		s.notifier = notify.NewBanner(schedule.New())
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = s.log.With("session", id)
	return s
}

// Load replaces the level and board. Pending timers of the previous level are
// canceled and any late callback is ignored.
func (s *Session) Load(lvl *domain.Level, b *board.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.CancelAll()
	s.gen++
	s.cancelAdvance = nil
	s.level = lvl
	s.board = b
	s.conns = resolver.NewSet()
	s.path = nil
	s.active = ""
	s.status = domain.Playing
	s.log.Info("level loaded", "level", lvl.ID, "width", b.Width, "height", b.Height, "letters", len(b.Letters()))
}

// Close tears the session down; pending timers are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.CancelAll()
	s.gen++
	s.cancelAdvance = nil
}

// Level returns the loaded level, or nil.
func (s *Session) Level() *domain.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Board returns a copy of the working board, or nil.
func (s *Session) Board() *board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

// Won reports whether every letter is connected.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == domain.Won
}

// Snapshot copies the state the UI renders.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := domain.Snapshot{
		SessionID:    s.ID,
		Connections:  s.conns.All(),
		Selected:     append([]domain.Coord(nil), s.path...),
		ActiveLetter: s.active,
		Status:       s.status,
		Mode:         s.cfg.Mode,
		CanAdvance:   s.cfg.Mode == domain.Single && s.status == domain.Won,
		Notification: s.notifier.Current(),
	}
	if s.level != nil {
		snap.LevelID = s.level.ID
	}
	if s.board != nil {
		snap.Width, snap.Height = s.board.Width, s.board.Height
		snap.Cells = s.board.Cells()
	}
	return snap
}
