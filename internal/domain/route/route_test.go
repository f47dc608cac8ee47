package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emre2821/echodj/internal/domain/emotion"
)

func testRoute() *Route {
	r := &Route{
		Start: emotion.Point{Timestamp: 0.0, Valence: 0.2, Arousal: 0.3, Dominance: 0.4, Depth: 0.5, Resonance: 0.6},
		End:   emotion.Point{Timestamp: 1.0, Valence: 0.8, Arousal: 0.7, Dominance: 0.6, Depth: 0.5, Resonance: 0.8},
		Arc:   emotion.ArcAscending,
	}
	r.AddWaypoint(emotion.Point{Timestamp: 0.5, Valence: 0.5, Arousal: 0.5, Dominance: 0.5, Depth: 0.5, Resonance: 0.7})
	r.AddWaypoint(emotion.Point{Timestamp: 0.25, Valence: 0.3, Arousal: 0.4, Dominance: 0.45, Depth: 0.5, Resonance: 0.65})
	return r
}

func TestRoute_AddWaypoint_KeepsSorted(t *testing.T) {
	r := testRoute()
	r.AddWaypoint(emotion.Point{Timestamp: 0.1})
	r.AddWaypoint(emotion.Point{Timestamp: 0.9})

	for i := 1; i < len(r.Waypoints); i++ {
		assert.LessOrEqual(t, r.Waypoints[i-1].Timestamp, r.Waypoints[i].Timestamp)
	}
}

func TestRoute_EmotionalAt_Endpoints(t *testing.T) {
	r := testRoute()

	assert.Equal(t, r.Start, r.EmotionalAt(0.0))

	end := r.EmotionalAt(1.0)
	assert.InDelta(t, r.End.Valence, end.Valence, 1e-9)
	assert.InDelta(t, r.End.Arousal, end.Arousal, 1e-9)
	assert.InDelta(t, r.End.Resonance, end.Resonance, 1e-9)
}

func TestRoute_EmotionalAt_NoWaypoints(t *testing.T) {
	r := &Route{
		Start: emotion.Point{Timestamp: 0.0, Valence: 0.0, Arousal: 0.0},
		End:   emotion.Point{Timestamp: 1.0, Valence: 1.0, Arousal: 1.0},
	}

	mid := r.EmotionalAt(0.5)
	assert.InDelta(t, 0.5, mid.Valence, 1e-9)
	assert.InDelta(t, 0.5, mid.Arousal, 1e-9)
	assert.InDelta(t, 0.5, mid.Timestamp, 1e-9)
}

func TestRoute_EmotionalAt_Interpolates(t *testing.T) {
	r := testRoute()

	// Between the 0.25 and 0.5 waypoints.
	p := r.EmotionalAt(0.375)
	assert.InDelta(t, 0.4, p.Valence, 1e-9)
	assert.InDelta(t, 0.45, p.Arousal, 1e-9)
}

func TestRoute_EmotionalAt_DegenerateTimestamps(t *testing.T) {
	r := &Route{
		Start: emotion.Point{Timestamp: 0.0, Valence: 0.1},
		End:   emotion.Point{Timestamp: 1.0, Valence: 0.9},
	}
	r.AddWaypoint(emotion.Point{Timestamp: 0.5, Valence: 0.3})
	r.AddWaypoint(emotion.Point{Timestamp: 0.5, Valence: 0.7})

	// Same-timestamp bracket must not divide by zero.
	p := r.EmotionalAt(0.5)
	assert.False(t, p.Valence != p.Valence, "result must not be NaN")
}

func TestRoute_EmotionalAt_StaysInRange(t *testing.T) {
	r := testRoute()

	for i := 0; i <= 100; i++ {
		ts := float64(i) / 100
		p := r.EmotionalAt(ts)

		assert.GreaterOrEqual(t, p.Valence, -1.0)
		assert.LessOrEqual(t, p.Valence, 1.0)
		assert.GreaterOrEqual(t, p.Arousal, 0.0)
		assert.LessOrEqual(t, p.Arousal, 1.0)
		assert.GreaterOrEqual(t, p.Dominance, 0.0)
		assert.LessOrEqual(t, p.Dominance, 1.0)
		assert.GreaterOrEqual(t, p.Depth, 0.0)
		assert.LessOrEqual(t, p.Depth, 1.0)
		assert.GreaterOrEqual(t, p.Resonance, 0.0)
		assert.LessOrEqual(t, p.Resonance, 1.0)
	}
}

func TestRoute_Chain(t *testing.T) {
	r := testRoute()
	chain := r.Chain()

	assert.Len(t, chain, 4)
	assert.Equal(t, r.Start, chain[0])
	assert.Equal(t, r.End, chain[len(chain)-1])
}
