package session

import (
	"context"
	"errors"

	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/hint"
	"svw.info/powerletter/internal/notify"
	"svw.info/powerletter/internal/validator"
)

// Press starts a path on an endpoint. A live connection of the pressed letter is
// removed first and the press reports OutcomeCanceled. Presses on non-endpoint
// cells are ignored.
func (s *Session) Press(c domain.Coord) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return domain.OutcomeIgnored
	}
	ep, ok := s.board.EndpointAt(c)
	if !ok || ep.Letter == "" {
		return domain.OutcomeIgnored
	}
	out := domain.OutcomeStarted
	if _, removed := s.conns.Remove(s.board, ep.Letter); removed {
		s.log.Debug("connection canceled", "letter", ep.Letter)
		s.recompute()
		out = domain.OutcomeCanceled
	}
	s.path = []domain.Coord{c}
	s.active = ep.Letter
	return out
}

// Enter feeds the cell under the pointer while drawing.
func (s *Session) Enter(c domain.Coord) domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil || s.active == "" {
		return domain.OutcomeIgnored
	}
	d := s.validator.Step(s.board, s.conns, s.path, c, s.active)
	switch d.Kind {
	case validator.Backtrack:
		if d.Index == len(s.path)-1 {
			return domain.OutcomeIgnored
		}
		s.path = s.path[:d.Index+1]
		return domain.OutcomeBacktracked
	case validator.Extend:
		s.path = append(s.path, c)
		return domain.OutcomeExtended
	case validator.Complete:
		path := append(append([]domain.Coord(nil), s.path...), c)
		letter := s.active
		s.path, s.active = nil, ""
		if err := s.finalize(letter, path); err != nil {
			s.log.Warn("finalize rejected", "letter", letter, "err", err)
			return domain.OutcomeIgnored
		}
		return domain.OutcomeConnected
	default:
		return domain.OutcomeIgnored
	}
}

// Release ends the gesture. A path still in progress is abandoned.
func (s *Session) Release() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == "" {
		return domain.OutcomeIgnored
	}
	s.path, s.active = nil, ""
	s.notifier.Notify(notify.MsgIncompletePath, s.cfg.NotifyDuration)
	return domain.OutcomeAbandoned
}

// CaptureLost handles the pointer leaving the gesture before release.
func (s *Session) CaptureLost() domain.Outcome { return s.Release() }

// Undo removes the most recent connection.
func (s *Session) Undo() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return domain.OutcomeIgnored
	}
	wp, ok := s.conns.Undo(s.board)
	if !ok {
		return domain.OutcomeIgnored
	}
	s.log.Debug("connection undone", "letter", wp.Word)
	s.recompute()
	return domain.OutcomeUndone
}

// Reset clears every connection and the in-progress path.
func (s *Session) Reset() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return domain.OutcomeIgnored
	}
	s.conns.Reset(s.board)
	s.path, s.active = nil, ""
	s.status = domain.Playing
	s.stopAdvance()
	return domain.OutcomeReset
}

// Hint connects the first unconnected letter along its shortest route. In
// competitive mode the acting team pays one credit once a routable letter is
// picked and before the search runs. Any in-progress path is discarded.
func (s *Session) Hint(ctx context.Context) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return domain.OutcomeIgnored, ErrNoLevel
	}
	letter, err := s.hinter.Next(s.board, s.conns)
	switch {
	case errors.Is(err, hint.ErrAllConnected):
		return domain.OutcomeAllConnected, nil
	case errors.Is(err, hint.ErrUnpairedLetter):
		s.log.Warn("hint on unpaired letter", "err", err)
		s.notifier.Notify(notify.MsgNoPath, s.cfg.NotifyDuration)
		return domain.OutcomeNoPath, nil
	case err != nil:
		return domain.OutcomeIgnored, err
	}
	if s.cfg.Mode == domain.Competitive && s.scorer != nil {
		if team := s.scorer.CurrentTeam(); !s.scorer.ConsumeHint(team) {
			s.notifier.Notify(notify.MsgNoHintsLeft, s.cfg.NotifyDuration)
			return domain.OutcomeNoHintsLeft, nil
		}
	}
	path, err := s.hinter.Route(ctx, s.board, letter)
	if errors.Is(err, hint.ErrNoPath) {
		s.notifier.Notify(notify.MsgNoPath, s.cfg.NotifyDuration)
		return domain.OutcomeNoPath, nil
	}
	if err != nil {
		return domain.OutcomeIgnored, err
	}
	s.path, s.active = nil, ""
	if err := s.finalize(letter, path); err != nil {
		return domain.OutcomeIgnored, err
	}
	s.log.Debug("hint applied", "letter", letter, "length", len(path))
	return domain.OutcomeHinted, nil
}

// Next advances to the following level once the current one is won.
// Competitive sessions advance on their own.
func (s *Session) Next() bool {
	s.mu.Lock()
	ok := s.status == domain.Won && s.nav != nil
	id := s.ID
	s.mu.Unlock()
	if ok {
		s.nav.AdvanceLevel(id)
	}
	return ok
}

// finalize commits path for letter and re-evaluates the win state.
// Caller holds s.mu.
func (s *Session) finalize(letter string, path []domain.Coord) error {
	wp, evicted, err := s.conns.Finalize(s.board, letter, path)
	if err != nil {
		return err
	}
	for _, e := range evicted {
		if e.Word != letter {
			s.log.Debug("connection evicted", "letter", e.Word, "by", letter)
		}
	}
	s.log.Debug("connection finalized", "letter", letter, "cells", len(wp.Cells))
	s.recompute()
	return nil
}

// recompute derives the status from the live connections. Caller holds s.mu.
func (s *Session) recompute() {
	won := s.conns.Won(s.board)
	switch {
	case won && s.status != domain.Won:
		s.status = domain.Won
		s.onWin()
	case !won && s.status == domain.Won:
		s.status = domain.Playing
		s.stopAdvance()
	}
}

func (s *Session) onWin() {
	s.log.Info("level solved", "level", s.level.ID, "mode", s.cfg.Mode.String())
	s.notifier.Notify(notify.MsgSolved, s.cfg.NotifyDuration)
	if s.cfg.Mode != domain.Competitive {
		return
	}
	if s.scorer != nil {
		s.scorer.NextTurn(true)
	}
	gen := s.gen
	s.cancelAdvance = s.sched.After(s.cfg.AdvanceDelay, func() { s.autoAdvance(gen) })
}

// autoAdvance runs on the scheduler's goroutine. A callback from an older level
// or a demoted win does nothing.
func (s *Session) autoAdvance(gen uint64) {
	s.mu.Lock()
	stale := gen != s.gen || s.status != domain.Won
	if !stale {
		s.cancelAdvance = nil
	}
	id := s.ID
	s.mu.Unlock()
	if stale || s.nav == nil {
		return
	}
	s.nav.AdvanceLevel(id)
}

func (s *Session) stopAdvance() {
	if s.cancelAdvance != nil {
		s.cancelAdvance()
		s.cancelAdvance = nil
	}
}
