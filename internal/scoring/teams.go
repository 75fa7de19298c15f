// Package scoring is a minimal in-memory team collaborator for competitive play:
// hint credits per team and round-robin turns.
package scoring

import (
	"fmt"
	"sync"
)

// Team is one competing side.
type Team struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Hints  int    `json:"hints"`
	Solved int    `json:"solved"`
}

// Teams rotates turns between teams and spends their hint credits.
type Teams struct {
	mu      sync.Mutex
	teams   []Team
	current int
}

// NewTeams creates n teams with the given hint budget each. n < 1 yields one team.
func NewTeams(n, hints int) *Teams {
	if n < 1 {
		n = 1
	}
	t := &Teams{teams: make([]Team, n)}
	for i := range t.teams {
		t.teams[i] = Team{Name: fmt.Sprintf("Team %d", i+1), Hints: hints}
	}
	return t
}

func (t *Teams) CurrentTeam() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// ConsumeHint spends one credit of team. It reports false when none is left.
func (t *Teams) ConsumeHint(team int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if team < 0 || team >= len(t.teams) || t.teams[team].Hints <= 0 {
		return false
	}
	t.teams[team].Hints--
	return true
}

// NextTurn credits the acting team when it solved the level and passes the turn.
func (t *Teams) NextTurn(solved bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if solved {
		t.teams[t.current].Score++
		t.teams[t.current].Solved++
	}
	t.current = (t.current + 1) % len(t.teams)
}

// Standings returns a copy of every team.
func (t *Teams) Standings() []Team {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Team(nil), t.teams...)
}
