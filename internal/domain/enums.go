package domain

import "strings"

// Difficulty labels level packs.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

// Mode selects single-player or team play.
type Mode int

const (
	Single Mode = iota
	Competitive
)

func (m Mode) String() string {
	if m == Competitive {
		return "competitive"
	}
	return "single"
}

// Status is the meta-state of a level.
type Status int

const (
	Playing Status = iota
	Won
)

func (s Status) String() string {
	if s == Won {
		return "won"
	}
	return "playing"
}

// Outcome reports what a session event did.
type Outcome int

const (
	OutcomeIgnored      Outcome = iota // invalid move or no-op
	OutcomeStarted                     // new in-progress path
	OutcomeExtended                    // path grew by one cell
	OutcomeBacktracked                 // path truncated
	OutcomeConnected                   // path finalized
	OutcomeAbandoned                   // released without reaching a terminus
	OutcomeCanceled                    // live connection removed by pressing its endpoint; new path started
	OutcomeUndone                      // last connection removed
	OutcomeReset                       // all connections removed
	OutcomeHinted                      // hint finalized a connection
	OutcomeNoHintsLeft                 // team has no hint credits
	OutcomeNoPath                      // hint search found no route
	OutcomeAllConnected                // hint requested with nothing left to connect
)

var outcomeNames = [...]string{
	"ignored", "started", "extended", "backtracked", "connected", "abandoned",
	"canceled", "undone", "reset", "hinted", "no_hints_left", "no_path", "all_connected",
}

func (o Outcome) String() string {
	if int(o) < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

func (s Status) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (m Mode) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// ParseDifficulty maps a pack name to its Difficulty; unknown names are Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	case "expert":
		return Expert
	default:
		return Medium
	}
}

// ParseMode maps "competitive" to Competitive and anything else to Single.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "competitive") {
		return Competitive
	}
	return Single
}
