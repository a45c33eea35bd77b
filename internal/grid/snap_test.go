package grid

import (
	"testing"

	"github.com/moviegrid/moviegrid/internal/domain"
)

// snapFixture: movies a and b grouped at (7,7), movie c mid-drag as a
// single session, currently at (6.8, 7.3).
func snapFixture() ([]domain.Movie, *Session) {
	movies := []domain.Movie{
		movie("a", "Alien", 7, 7),
		movie("b", "Brazil", 7, 7),
		movie("c", "Casablanca", 6.8, 7.3),
	}
	sess := &Session{Mode: ModeSingle, Anchor: KeyOf(3, 9), IDs: []string{"c"}}
	return movies, sess
}

func layoutWithOverlap(draggedCell Key, labelX float64) Layout {
	return Layout{
		KeyOf(7, 7): {
			Anchor: Rect{X: 0, Y: 0, W: 10, H: 10},
		},
		draggedCell: {
			Labels: map[string]Rect{"c": {X: labelX, Y: 0, W: 10, H: 10}},
		},
	}
}

func TestResolveSnapOverlapThresholdInclusive(t *testing.T) {
	movies, sess := snapFixture()
	cell := KeyOf(6.8, 7.3)

	// 8x10 of 10x10 covered: ratio exactly 0.8.
	target, outcome := ResolveSnap(movies, sess, layoutWithOverlap(cell, 2), testBounds, Point{X: 0, Y: 0})
	if target == nil || outcome != OutcomeOverlap {
		t.Fatalf("ratio 0.8 should snap, got target=%v outcome=%v", target, outcome)
	}
	if target.Fun != 7 || target.Good != 7 {
		t.Fatalf("snap target = (%v, %v), want (7, 7)", target.Fun, target.Good)
	}

	// 7.9x10 covered: ratio 0.79, below threshold, and pointer far from
	// any anchor, so no snap at all.
	target, outcome = ResolveSnap(movies, sess, layoutWithOverlap(cell, 2.1), testBounds, Point{X: 0, Y: 0})
	if target != nil || outcome != OutcomeNone {
		t.Fatalf("ratio 0.79 should not snap, got target=%v outcome=%v", target, outcome)
	}
}

func TestResolveSnapMergesSingletonIntoGroup(t *testing.T) {
	movies, sess := snapFixture()
	cell := KeyOf(6.8, 7.3)

	target, _ := ResolveSnap(movies, sess, layoutWithOverlap(cell, 1), testBounds, Point{})
	if target == nil {
		t.Fatalf("expected snap")
	}
	for i := range movies {
		if sess.Covers(movies[i].ID) {
			movies[i].Fun = target.Fun
			movies[i].Good = target.Good
		}
	}

	groups := Groups(movies)
	if len(groups) != 1 {
		t.Fatalf("got %d groups after merge, want 1", len(groups))
	}
	if len(groups[0].Items) != 3 || groups[0].Key() != KeyOf(7, 7) {
		t.Fatalf("merged group = %+v, want 3 items at (7,7)", groups[0])
	}
}

func TestResolveSnapProximityFallback(t *testing.T) {
	movies, sess := snapFixture()

	// No layout at all: overlap path finds nothing, proximity decides.
	near := AnchorAt(testBounds, 7, 7)
	near.X += 10 // within the 18px radius

	target, outcome := ResolveSnap(movies, sess, Layout{}, testBounds, near)
	if target == nil || outcome != OutcomeProximity {
		t.Fatalf("expected proximity snap, got target=%v outcome=%v", target, outcome)
	}
	if target.Fun != 7 || target.Good != 7 {
		t.Fatalf("proximity target = (%v, %v), want (7, 7)", target.Fun, target.Good)
	}
}

func TestResolveSnapProximityRadiusBound(t *testing.T) {
	movies, sess := snapFixture()

	at := AnchorAt(testBounds, 7, 7)
	onEdge := Point{X: at.X + ProximityRadius, Y: at.Y}
	if target, _ := ResolveSnap(movies, sess, Layout{}, testBounds, onEdge); target == nil {
		t.Fatalf("distance exactly at radius should snap")
	}

	beyond := Point{X: at.X + ProximityRadius + 0.5, Y: at.Y}
	if target, outcome := ResolveSnap(movies, sess, Layout{}, testBounds, beyond); target != nil || outcome != OutcomeNone {
		t.Fatalf("distance beyond radius should not snap, got %v/%v", target, outcome)
	}
}

func TestResolveSnapPrefersNearestAnchor(t *testing.T) {
	movies := []domain.Movie{
		movie("a", "Alien", 7, 7),
		movie("b", "Brazil", 7, 7.2),
		movie("c", "Casablanca", 3, 9),
	}
	sess := &Session{Mode: ModeSingle, Anchor: KeyOf(3, 9), IDs: []string{"c"}}

	at := AnchorAt(testBounds, 7, 7.2)
	at.X += 2
	target, outcome := ResolveSnap(movies, sess, Layout{}, testBounds, at)
	if target == nil || outcome != OutcomeProximity {
		t.Fatalf("expected proximity snap, got %v/%v", target, outcome)
	}
	if target.Good != 7.2 {
		t.Fatalf("snapped to (%v, %v), want nearest anchor (7, 7.2)", target.Fun, target.Good)
	}
}

func TestResolveSnapNoCandidates(t *testing.T) {
	// All movies belong to the session: nothing to snap onto.
	movies := []domain.Movie{movie("a", "Alien", 7, 7)}
	sess := &Session{Mode: ModeSingle, Anchor: KeyOf(7, 7), IDs: []string{"a"}}
	if target, outcome := ResolveSnap(movies, sess, Layout{}, testBounds, Point{}); target != nil || outcome != OutcomeNone {
		t.Fatalf("expected no snap, got %v/%v", target, outcome)
	}
}

func TestResolveSnapGroupDragUsesLabelBox(t *testing.T) {
	movies := []domain.Movie{
		movie("a", "Alien", 5, 5),
		movie("b", "Brazil", 5, 5),
		movie("c", "Casablanca", 8, 2),
	}
	sess := &Session{Mode: ModeGroup, Anchor: KeyOf(3, 3), IDs: []string{"a", "b"}}

	layout := Layout{
		KeyOf(8, 2): {Anchor: Rect{X: 0, Y: 0, W: 10, H: 10}},
		KeyOf(5, 5): {
			Anchor:   Rect{X: 400, Y: 400, W: 4, H: 4},
			LabelBox: Rect{X: 1, Y: 0, W: 10, H: 10},
		},
	}
	target, outcome := ResolveSnap(movies, sess, layout, testBounds, Point{})
	if target == nil || outcome != OutcomeOverlap {
		t.Fatalf("label box overlap should snap, got %v/%v", target, outcome)
	}
	if target.Fun != 8 || target.Good != 2 {
		t.Fatalf("target = (%v, %v), want (8, 2)", target.Fun, target.Good)
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 1},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, 0},
		{"half", Rect{0, 0, 10, 10}, Rect{5, 0, 10, 10}, 0.5},
		{"small inside big", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, 1},
		{"zero area", Rect{0, 0, 0, 10}, Rect{0, 0, 10, 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapRatio(tt.a, tt.b); got != tt.want {
				t.Fatalf("OverlapRatio = %v, want %v", got, tt.want)
			}
		})
	}
}
