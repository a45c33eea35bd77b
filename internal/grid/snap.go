package grid

import "github.com/moviegrid/moviegrid/internal/domain"

// Snap tuning. Both bounds are inclusive.
const (
	// OverlapThreshold is the minimum covered fraction of the smaller
	// rectangle for a drop to count as landing on a group.
	OverlapThreshold = 0.8
	// ProximityRadius is the fallback pixel distance to a group anchor.
	ProximityRadius = 18.0
)

// GroupLayout holds the measured rectangles for one rendered group: its
// anchor surface, the box containing its labels, and each visible label
// keyed by movie id. Entries a host could not measure are simply absent.
type GroupLayout struct {
	Anchor   Rect
	LabelBox Rect
	Labels   map[string]Rect
}

// Layout maps rendered group cells to their measured rectangles. The host
// refreshes it whenever grouping or layout changes; the snap resolver only
// reads it and treats missing or empty entries as non-matching.
type Layout map[Key]GroupLayout

// Outcome records which snap path produced the result, for observability.
type Outcome string

// Snap outcomes.
const (
	OutcomeOverlap   Outcome = "overlap"
	OutcomeProximity Outcome = "proximity"
	OutcomeNone      Outcome = "none"
)

// Target is a resolved drop coordinate.
type Target struct {
	Fun  float64
	Good float64
}

// ResolveSnap decides, once per drag release, whether the session's ids
// should merge onto an existing group. Groups are recomputed without the
// dragged ids; candidates are matched first by rectangle overlap against
// the dragged element's rectangles, then by anchor proximity to the final
// pointer position. A nil target means the raw drop position stands.
// Ties on either path resolve to the first candidate evaluated.
func ResolveSnap(movies []domain.Movie, sess *Session, layout Layout, bounds Rect, release Point) (*Target, Outcome) {
	if sess == nil || len(sess.IDs) == 0 {
		return nil, OutcomeNone
	}

	skip := make(map[string]struct{}, len(sess.IDs))
	for _, id := range sess.IDs {
		skip[id] = struct{}{}
	}
	candidates := groupsExcluding(movies, skip)
	if len(candidates) == 0 {
		return nil, OutcomeNone
	}

	dragged := draggedRects(movies, sess, layout)

	var best *Group
	bestRatio := 0.0
	for i := range candidates {
		cand := &candidates[i]
		for _, candRect := range candidateRects(cand, layout) {
			for _, dragRect := range dragged {
				if ratio := OverlapRatio(dragRect, candRect); ratio > bestRatio {
					bestRatio = ratio
					best = cand
				}
			}
		}
	}
	if best != nil && bestRatio >= OverlapThreshold {
		return &Target{Fun: best.Fun, Good: best.Good}, OutcomeOverlap
	}

	best = nil
	bestDist := 0.0
	for i := range candidates {
		cand := &candidates[i]
		d := distance(release, AnchorAt(bounds, cand.Fun, cand.Good))
		if d > ProximityRadius {
			continue
		}
		if best == nil || d < bestDist {
			best = cand
			bestDist = d
		}
	}
	if best != nil {
		return &Target{Fun: best.Fun, Good: best.Good}, OutcomeProximity
	}
	return nil, OutcomeNone
}

// draggedRects collects the rectangles representing the dragged element,
// looked up at the cell the dragged ids currently occupy (the element has
// followed the pointer, so its measured rects live under the current key,
// not under the cell the gesture started on). A single-item drag
// contributes its own label plus the enclosing anchor; a group drag
// contributes the group anchor and its label container.
func draggedRects(movies []domain.Movie, sess *Session, layout Layout) []Rect {
	cell, ok := currentCell(movies, sess)
	if !ok {
		cell = sess.Anchor
	}
	origin, ok := layout[cell]
	if !ok {
		// Stale layout during a re-render; the overlap path just finds
		// nothing and resolution falls through to proximity.
		origin, ok = layout[sess.Anchor]
		if !ok {
			return nil
		}
	}
	rects := make([]Rect, 0, 2)
	switch sess.Mode {
	case ModeSingle:
		if len(sess.IDs) == 1 {
			if label, ok := origin.Labels[sess.IDs[0]]; ok {
				rects = append(rects, label)
			}
		}
		rects = append(rects, origin.Anchor)
	case ModeGroup:
		rects = append(rects, origin.Anchor, origin.LabelBox)
	}
	return rects
}

func currentCell(movies []domain.Movie, sess *Session) (Key, bool) {
	for _, m := range movies {
		if sess.Covers(m.ID) {
			return KeyOf(m.Fun, m.Good), true
		}
	}
	return Key{}, false
}

func candidateRects(g *Group, layout Layout) []Rect {
	entry, ok := layout[g.Key()]
	if !ok {
		return nil
	}
	rects := make([]Rect, 0, 1+len(entry.Labels))
	rects = append(rects, entry.Anchor)
	for _, it := range g.Items {
		if label, ok := entry.Labels[it.ID]; ok {
			rects = append(rects, label)
		}
	}
	return rects
}
