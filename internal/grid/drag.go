package grid

import "github.com/moviegrid/moviegrid/internal/score"

// Mode distinguishes dragging a whole group from pulling one item out of it.
type Mode string

// Drag modes.
const (
	ModeGroup  Mode = "group"
	ModeSingle Mode = "single"
)

// Session is the state of one live drag gesture. It exists from
// pointer-down to pointer-up and names the only ids whose scores may
// change while it is alive. Anchor is the cell the gesture started on.
type Session struct {
	Mode   Mode
	Anchor Key
	IDs    []string
}

// Covers reports whether id belongs to the session.
func (s *Session) Covers(id string) bool {
	if s == nil {
		return false
	}
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// ScoreAt maps a pointer position onto the board. The offset inside bounds
// is clamped to the box; the horizontal axis carries good and the vertical
// axis, inverted, carries fun, so high-fun-high-good is the top-right
// quadrant. Results are normalized to tenths.
func ScoreAt(bounds Rect, p Point) (fun, good float64) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return score.Normalize(0), score.Normalize(0)
	}
	x := clampOffset(p.X-bounds.X, bounds.W)
	y := clampOffset(p.Y-bounds.Y, bounds.H)
	good = score.Normalize(x / bounds.W * score.Max)
	fun = score.Normalize((1 - y/bounds.H) * score.Max)
	return fun, good
}

// AnchorAt is the inverse mapping: the on-screen position of a cell's
// anchor for the given board bounds.
func AnchorAt(bounds Rect, fun, good float64) Point {
	return Point{
		X: bounds.X + score.Clamp(good)/score.Max*bounds.W,
		Y: bounds.Y + (1-score.Clamp(fun)/score.Max)*bounds.H,
	}
}

func clampOffset(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
