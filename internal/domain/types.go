package domain

import "fmt"

// Coord identifies a grid position.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Adjacent reports whether o is exactly one orthogonal step away.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Cell is one board position. Letter is set only on endpoint cells.
type Cell struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Letter string `json:"letter"`
	IsUsed bool   `json:"isUsed"`
	Color  string `json:"color,omitempty"`
}

func (c Cell) Coord() Coord { return Coord{X: c.X, Y: c.Y} }

// Endpoint is a fixed terminal of a letter as authored in level data.
type Endpoint struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Letter string `json:"letter"`
	Color  string `json:"color,omitempty"`
}

func (e Endpoint) Coord() Coord { return Coord{X: e.X, Y: e.Y} }

// WordPath is a finalized connection between the two endpoints of Word.
// StartIndex is the row-major board index of the first cell.
type WordPath struct {
	Word       string `json:"word"`
	Cells      []Cell `json:"cells"`
	StartIndex int    `json:"startIndex"`
}

// Coords returns the path cells as coordinates, in order.
func (w WordPath) Coords() []Coord {
	out := make([]Coord, len(w.Cells))
	for i, c := range w.Cells {
		out[i] = c.Coord()
	}
	return out
}

// Level is an immutable puzzle definition.
// Explicit layouts set Width, Height and Endpoints; freeform levels set Letters only.
type Level struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Endpoints  []Endpoint `json:"endpoints,omitempty"`
	Board      []Cell     `json:"board,omitempty"`
	Letters    string     `json:"letters,omitempty"`
	Words      []string   `json:"words,omitempty"`
	// Optional authoring metadata
	Name string `json:"name,omitempty"`
}

// Freeform reports whether the level is laid out from a letter bag.
func (l *Level) Freeform() bool { return len(l.Endpoints) == 0 && l.Letters != "" }

// ErrorLevelID marks the placeholder served when no level data is available.
const ErrorLevelID = "error"

// ErrorLevel is a single-entry level that can never be solved.
func ErrorLevel() *Level {
	return &Level{
		ID:        ErrorLevelID,
		Width:     1,
		Height:    1,
		Endpoints: []Endpoint{{X: 0, Y: 0, Letter: "?"}},
		Name:      "no level available",
	}
}

// Selection identifies a level pack.
type Selection struct {
	Language   string     `json:"language"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// LevelMeta is a lightweight listing entry.
type LevelMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

// Snapshot is a read-only copy of a session's state for the UI.
type Snapshot struct {
	SessionID    string     `json:"sessionId"`
	LevelID      string     `json:"levelId"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Cells        []Cell     `json:"cells"`
	Connections  []WordPath `json:"connections"`
	Selected     []Coord    `json:"selected,omitempty"`
	ActiveLetter string     `json:"activeLetter,omitempty"`
	Status       Status     `json:"status"`
	Mode         Mode       `json:"mode"`
	CanAdvance   bool       `json:"canAdvance"`
	Notification string     `json:"notification,omitempty"`
}
