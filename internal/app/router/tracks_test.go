package router

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/track"
)

func testCatalog(n int) []track.Track {
	tracks := make([]track.Track, 0, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n)
		tracks = append(tracks, track.Track{
			ID:       fmt.Sprintf("track-%02d", i),
			Title:    fmt.Sprintf("Track %02d", i),
			Artist:   fmt.Sprintf("Artist %d", i%5),
			Duration: 3 * time.Minute,
			Features: map[string]float64{
				"valence":    0.2 + 0.6*frac,
				"energy":     0.3 + 0.5*frac,
				"dominance":  0.5,
				"depth":      0.5,
				"popularity": 0.6,
			},
		})
	}
	return tracks
}

func TestRouter_RouteToTracks_EmptyCatalog(t *testing.T) {
	r := newTestRouter()
	rt := SafeRoute(30)

	assert.Nil(t, r.RouteToTracks(rt, nil))
	assert.Nil(t, r.RouteToTracks(rt, []track.Track{}))
}

func TestRouter_RouteToTracks_AtMostElevenTracks(t *testing.T) {
	r := newTestRouter()
	rt := r.CreateRoute(context.Background(), map[string]float64{"valence": 0.3, "arousal": 0.3}, nil, 45, nil)

	selected := r.RouteToTracks(rt, testCatalog(50))
	assert.LessOrEqual(t, len(selected), 11)
}

func TestRouter_RouteToTracks_DenseCatalogFillsAllSlots(t *testing.T) {
	r := newTestRouter()
	rt := r.CreateRoute(context.Background(), map[string]float64{"valence": 0.3, "arousal": 0.3}, nil, 45, nil)

	// 30 evenly spread catalog positions leave every slot within tolerance
	// of several candidates.
	selected := r.RouteToTracks(rt, testCatalog(30))
	assert.Len(t, selected, 11)
}

func TestRouter_RouteToTracks_NoDuplicates(t *testing.T) {
	r := newTestRouter()
	rt := r.CreateRoute(context.Background(), map[string]float64{"valence": 0.5, "arousal": 0.5}, nil, 60, nil)

	selected := r.RouteToTracks(rt, testCatalog(25))
	seen := make(map[string]bool)
	for _, tr := range selected {
		assert.False(t, seen[tr.ID], "track %s selected twice", tr.ID)
		seen[tr.ID] = true
	}
}

func TestRouter_RouteToTracks_SingleTrack(t *testing.T) {
	r := newTestRouter()
	rt := SafeRoute(30)

	selected := r.RouteToTracks(rt, testCatalog(1))
	require.Len(t, selected, 1)
	assert.Equal(t, "track-00", selected[0].ID)
}

func TestRouter_RouteToTracks_Deterministic(t *testing.T) {
	r := newTestRouter()
	rt := r.CreateRoute(context.Background(), map[string]float64{"valence": 0.4, "arousal": 0.6}, nil, 40, nil)

	// Identical features force fitness ties; catalog order must break them.
	uniform := make([]track.Track, 20)
	for i := range uniform {
		uniform[i] = track.Track{
			ID:       fmt.Sprintf("tie-%02d", i),
			Title:    fmt.Sprintf("Tie %02d", i),
			Duration: 4 * time.Minute,
			Features: map[string]float64{"valence": 0.5, "energy": 0.5},
		}
	}

	first := r.RouteToTracks(rt, uniform)
	second := r.RouteToTracks(rt, uniform)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestTrackFitness(t *testing.T) {
	target := emotion.Point{Valence: 0.5, Arousal: 0.5, Dominance: 0.5, Depth: 0.5}
	exact := target
	offset := emotion.Point{Valence: 0.8, Arousal: 0.5, Dominance: 0.5, Depth: 0.5}

	tests := []struct {
		name    string
		profile emotion.Point
		style   emotion.TransitionStyle
		want    float64
	}{
		{name: "Smooth rewards closeness", profile: exact, style: emotion.TransitionSmooth, want: 1.0},
		{name: "Smooth penalizes distance", profile: offset, style: emotion.TransitionSmooth, want: 1.0 / 1.3},
		{name: "Contrast rewards moderate gap", profile: offset, style: emotion.TransitionContrast, want: 1.0},
		{name: "Contrast penalizes identity", profile: exact, style: emotion.TransitionContrast, want: 1.0 / 1.3},
		{name: "Stepwise prefers small step", profile: offset, style: emotion.TransitionStepwise, want: 1.0 / 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, trackFitness(tt.profile, target, tt.style), 1e-9)
		})
	}
}
