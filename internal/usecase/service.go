package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"svw.info/powerletter/internal/board"
	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/notify"
	"svw.info/powerletter/internal/ports"
	"svw.info/powerletter/internal/schedule"
	"svw.info/powerletter/internal/scoring"
	"svw.info/powerletter/internal/session"
)

// Config carries the tunables applied to every new session.
type Config struct {
	HintCredits    int
	Teams          int
	AdvanceDelay   time.Duration
	NotifyDuration time.Duration
}

func DefaultConfig() Config {
	d := session.DefaultConfig()
	return Config{HintCredits: 3, Teams: 2, AdvanceDelay: d.AdvanceDelay, NotifyDuration: d.NotifyDuration}
}

// Service supplies levels to sessions and moves them between levels.
type Service struct {
	Levels    ports.LevelStore
	Generator ports.BoardGenerator
	Solver    ports.Solver
	Hinter    ports.Hinter
	Config    Config
	// Seed feeds freeform layouts; defaults to the wall clock.
	Seed func() int64

	log      *slog.Logger
	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	// nav serializes level changes of one session; index is guarded by Service.mu.
	nav    sync.Mutex
	sess   *session.Session
	sel    domain.Selection
	levels []domain.LevelMeta
	index  int
	teams  *scoring.Teams
}

func NewService(levels ports.LevelStore, g ports.BoardGenerator, s ports.Solver, h ports.Hinter, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		Levels:    levels,
		Generator: g,
		Solver:    s,
		Hinter:    h,
		Config:    cfg,
		Seed:      func() int64 { return time.Now().UnixNano() },
		log:       log,
		sessions:  make(map[string]*entry),
	}
}

var (
	errNotConfigured = errors.New("usecase dependency not configured")
	// ErrSessionNotFound is returned for unknown or closed session ids.
	ErrSessionNotFound = errors.New("usecase: session not found")
)

// Start opens a session on the first level of sel.
func (u *Service) Start(ctx context.Context, sel domain.Selection, mode domain.Mode) (*session.Session, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	var metas []domain.LevelMeta
	if u.Levels != nil {
		var err error
		if metas, err = u.Levels.List(ctx, sel); err != nil {
			u.log.Warn("level list failed", "err", err)
			metas = nil
		}
	}
	id := uuid.NewString()
	teams := scoring.NewTeams(u.Config.Teams, u.Config.HintCredits)
	sess := session.New(id, session.Config{
		Mode:           mode,
		AdvanceDelay:   u.Config.AdvanceDelay,
		NotifyDuration: u.Config.NotifyDuration,
	}, session.Deps{
		Hinter:    u.Hinter,
		Scorer:    teams,
		Notifier:  notify.NewBanner(schedule.New()),
		Navigator: u,
		Scheduler: schedule.New(),
		Logger:    u.log,
	})
	e := &entry{sess: sess, sel: sel, levels: metas, teams: teams}

	u.mu.Lock()
	u.sessions[id] = e
	u.mu.Unlock()

	u.log.Info("session started", "session", id, "mode", mode.String(), "levels", len(metas))
	e.nav.Lock()
	u.load(ctx, e, 0)
	e.nav.Unlock()
	return sess, nil
}

// Session looks up a live session.
func (u *Service) Session(id string) (*session.Session, error) {
	e, err := u.entry(id)
	if err != nil {
		return nil, err
	}
	return e.sess, nil
}

// Close stops the session's timers and forgets it.
func (u *Service) Close(id string) error {
	u.mu.Lock()
	e, ok := u.sessions[id]
	delete(u.sessions, id)
	u.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.sess.Close()
	u.log.Info("session closed", "session", id)
	return nil
}

// AdvanceLevel loads the next level of the session's pack, wrapping to the first.
func (u *Service) AdvanceLevel(id string) { u.step(id, 1) }

// Back loads the previous level, wrapping to the last.
func (u *Service) Back(id string) { u.step(id, -1) }

func (u *Service) step(id string, delta int) {
	u.mu.Lock()
	e, ok := u.sessions[id]
	if !ok {
		u.mu.Unlock()
		u.log.Debug("navigation for closed session", "session", id)
		return
	}
	u.mu.Unlock()

	e.nav.Lock()
	defer e.nav.Unlock()
	u.mu.Lock()
	idx := 0
	if n := len(e.levels); n > 0 {
		idx = ((e.index+delta)%n + n) % n
	}
	e.index = idx
	u.mu.Unlock()
	u.load(context.Background(), e, idx)
}

// load installs level idx of e, or the error level when none can be built.
// Caller holds e.nav.
func (u *Service) load(ctx context.Context, e *entry, idx int) {
	lvl := domain.ErrorLevel()
	if idx < len(e.levels) && u.Levels != nil {
		got, err := u.Levels.Load(ctx, e.sel, e.levels[idx].ID)
		if err != nil {
			u.log.Warn("level load failed", "level", e.levels[idx].ID, "err", err)
		} else {
			lvl = got
		}
	}
	b, err := u.Generator.Build(ctx, lvl, u.Seed())
	if err != nil {
		u.log.Warn("board build failed", "level", lvl.ID, "err", err)
		lvl = domain.ErrorLevel()
		b, _ = board.New(lvl.Width, lvl.Height, lvl.Endpoints)
	}
	e.sess.Load(lvl, b)
	u.log.Info("level changed", "session", e.sess.ID, "level", lvl.ID, "index", idx)
}

func (u *Service) entry(id string) (*entry, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	e, ok := u.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// ListLevels lists a level pack.
func (u *Service) ListLevels(ctx context.Context, sel domain.Selection) ([]domain.LevelMeta, error) {
	if u.Levels == nil {
		return nil, errNotConfigured
	}
	return u.Levels.List(ctx, sel)
}

func (u *Service) SaveLevel(ctx context.Context, sel domain.Selection, lvl *domain.Level) error {
	if u.Levels == nil {
		return errNotConfigured
	}
	return u.Levels.Save(ctx, sel, lvl)
}

// Solve searches a full solution for the session's current board without
// touching the player's connections.
func (u *Service) Solve(ctx context.Context, id string) ([]domain.WordPath, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	sess, err := u.Session(id)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	b := sess.Board()
	if b == nil {
		return nil, ports.Stats{}, session.ErrNoLevel
	}
	return u.Solver.Solve(ctx, b)
}

// Unique reports whether the session's current level has exactly one solution.
func (u *Service) Unique(ctx context.Context, id string) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	sess, err := u.Session(id)
	if err != nil {
		return false, ports.Stats{}, err
	}
	b := sess.Board()
	if b == nil {
		return false, ports.Stats{}, session.ErrNoLevel
	}
	return u.Solver.Unique(ctx, b)
}

// Standings returns the team table of a session.
func (u *Service) Standings(id string) ([]scoring.Team, error) {
	e, err := u.entry(id)
	if err != nil {
		return nil, err
	}
	return e.teams.Standings(), nil
}
