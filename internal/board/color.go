package board

// palette is the fixed set of connection colors.
var palette = []string{
	"#ef4444", "#3b82f6", "#22c55e", "#eab308",
	"#a855f7", "#f97316", "#06b6d4", "#ec4899",
	"#84cc16", "#6366f1", "#14b8a6", "#f43f5e",
}

// ColorFor derives a connection color from the letter. The same letter always
// maps to the same color; which color is an implementation detail.
func ColorFor(letter string) string {
	var h int32
	for _, r := range letter {
		h = int32(r) + (h << 5) - h
	}
	return palette[uint32(h)%uint32(len(palette))]
}
