// Package route provides the MoodRoute domain entity: a timestamped
// curve through emotional space.
package route

import (
	"sort"

	"github.com/emre2821/echodj/internal/domain/emotion"
)

// Route represents a complete emotional journey from a start state to an
// end state, with optional interior waypoints kept sorted by timestamp.
type Route struct {
	Start           emotion.Point
	End             emotion.Point
	Waypoints       []emotion.Point
	Arc             emotion.Arc
	Transition      emotion.TransitionStyle
	TotalDuration   float64 // minutes
	EstimatedImpact float64 // expected emotional resonance (0.0 to 1.0)
}

// AddWaypoint appends a waypoint and re-sorts by timestamp. The sort is
// stable, so same-timestamp waypoints keep insertion order.
func (r *Route) AddWaypoint(p emotion.Point) {
	r.Waypoints = append(r.Waypoints, p)
	sort.SliceStable(r.Waypoints, func(i, j int) bool {
		return r.Waypoints[i].Timestamp < r.Waypoints[j].Timestamp
	})
}

// EmotionalAt returns the interpolated emotional state at the given
// normalized timestamp. Points outside the waypoint range fall back to
// the start/end points, so the result is defined for all t in [0, 1].
func (r *Route) EmotionalAt(t float64) emotion.Point {
	before := r.Start
	after := r.End

	for _, wp := range r.Waypoints {
		if wp.Timestamp <= t {
			before = wp
		} else {
			after = wp
			break
		}
	}

	if before.Timestamp == after.Timestamp {
		return before
	}

	frac := (t - before.Timestamp) / (after.Timestamp - before.Timestamp)
	p := emotion.Lerp(before, after, frac)
	p.Timestamp = t
	return p.Clamp()
}

// Chain returns the full ordered point sequence start, waypoints, end.
func (r *Route) Chain() []emotion.Point {
	chain := make([]emotion.Point, 0, len(r.Waypoints)+2)
	chain = append(chain, r.Start)
	chain = append(chain, r.Waypoints...)
	chain = append(chain, r.End)
	return chain
}
