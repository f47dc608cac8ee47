// Package emotion provides the emotional state model used by the
// routing and playlist engines.
package emotion

import "math"

// Point represents an emotional state at a position within a playlist.
// All fields are plain scalars; a Point is created where needed and
// never mutated in place.
type Point struct {
	Timestamp float64 // Position in playlist (0.0 to 1.0)
	Valence   float64 // Pleasantness (-1.0 to 1.0)
	Arousal   float64 // Energy level (0.0 to 1.0)
	Dominance float64 // Feeling of control (0.0 to 1.0)
	Depth     float64 // Emotional complexity (0.0 to 1.0)
	Resonance float64 // Expected personal relevance (0.0 to 1.0)
}

// DistanceTo returns the Euclidean distance to another point over
// valence, arousal, dominance and depth. Resonance is a scoring weight,
// not a coordinate, and is excluded.
func (p Point) DistanceTo(other Point) float64 {
	dv := p.Valence - other.Valence
	da := p.Arousal - other.Arousal
	dd := p.Dominance - other.Dominance
	de := p.Depth - other.Depth
	return math.Sqrt(dv*dv + da*da + dd*dd + de*de)
}

// Clamp returns a copy with every field forced into its declared range.
func (p Point) Clamp() Point {
	return Point{
		Timestamp: clamp(p.Timestamp, 0.0, 1.0),
		Valence:   clamp(p.Valence, -1.0, 1.0),
		Arousal:   clamp(p.Arousal, 0.0, 1.0),
		Dominance: clamp(p.Dominance, 0.0, 1.0),
		Depth:     clamp(p.Depth, 0.0, 1.0),
		Resonance: clamp(p.Resonance, 0.0, 1.0),
	}
}

// Lerp linearly interpolates every field between a and b at fraction
// frac. The result is not clamped; callers clamp after composing offsets.
func Lerp(a, b Point, frac float64) Point {
	return Point{
		Timestamp: a.Timestamp + frac*(b.Timestamp-a.Timestamp),
		Valence:   a.Valence + frac*(b.Valence-a.Valence),
		Arousal:   a.Arousal + frac*(b.Arousal-a.Arousal),
		Dominance: a.Dominance + frac*(b.Dominance-a.Dominance),
		Depth:     a.Depth + frac*(b.Depth-a.Depth),
		Resonance: a.Resonance + frac*(b.Resonance-a.Resonance),
	}
}

// Neutral returns the neutral resting state used for safe fallback
// routes and playlists.
func Neutral(timestamp float64) Point {
	return Point{
		Timestamp: timestamp,
		Valence:   0.6,
		Arousal:   0.5,
		Dominance: 0.6,
		Depth:     0.5,
		Resonance: 0.7,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
