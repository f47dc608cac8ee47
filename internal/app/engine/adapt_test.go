package engine

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre2821/echodj/internal/app/store"
	"github.com/emre2821/echodj/internal/domain/playlist"
)

func generateTestPlaylist(t *testing.T, e *Engine, durationMinutes float64) *playlist.DynamicPlaylist {
	t.Helper()
	p := e.Generate(context.Background(), Request{DurationMinutes: durationMinutes},
		map[string]float64{"valence": 0.4, "arousal": 0.5}, testCatalog(30), nil)
	require.NotEmpty(t, p.Tracks)
	return p
}

func TestEngine_Adapt_UnknownPlaylist(t *testing.T) {
	e := newTestEngine()

	_, err := e.Adapt(context.Background(), "no-such-playlist", map[string]any{"type": "completion_rate"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestEngine_Adapt_RecordsFeedback(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{"type": "play_event"})
	require.NoError(t, err)

	assert.Len(t, adapted.PlayHistory, 1)
	assert.Equal(t, "play_event", adapted.PlayHistory[0].Feedback["type"])
	assert.False(t, adapted.UpdatedAt.IsZero())
}

func TestEngine_Adapt_UnreadableFeedbackStillRecorded(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type":            "completion_rate",
		"completion_rate": "not a number",
	})
	require.NoError(t, err)
	assert.Len(t, adapted.PlayHistory, 1, "unreadable feedback is recorded without adaptation")
}

func TestEngine_Adapt_CompletionShortensPlaylist(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 60)
	originalMinutes := p.TotalDuration().Minutes()

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type":            "completion_rate",
		"completion_rate": 0.3,
	})
	require.NoError(t, err)

	assert.InDelta(t, 42.0, adapted.Route.TotalDuration, 1e-9, "target shrinks to 70%")
	assert.Less(t, adapted.TotalDuration().Minutes(), originalMinutes)
	// Trimming overshoots by at most one track.
	assert.GreaterOrEqual(t, adapted.TotalDuration().Minutes(), 42.0-4.0)
}

func TestEngine_Adapt_HighCompletionUnchanged(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 60)
	before := len(p.Tracks)

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type":            "completion_rate",
		"completion_rate": 0.9,
	})
	require.NoError(t, err)

	assert.Len(t, adapted.Tracks, before)
	assert.Equal(t, 60.0, adapted.Route.TotalDuration)
}

func TestEngine_Adapt_SkipFrequencySwapsTrack(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)
	require.Greater(t, len(p.Tracks), 2)

	skipped := p.Tracks[0].ID
	beforeIDs := make(map[string]bool, len(p.Tracks))
	for _, pt := range p.Tracks {
		beforeIDs[pt.ID] = true
	}

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type":      "skip_frequency",
		"skip_data": map[string]any{skipped: 0.9},
	})
	require.NoError(t, err)

	assert.NotEqual(t, skipped, adapted.Tracks[0].ID, "heavily skipped opener is swapped away")

	// Swapping reorders; it never adds or removes tracks.
	assert.Len(t, adapted.Tracks, len(beforeIDs))
	for _, pt := range adapted.Tracks {
		assert.True(t, beforeIDs[pt.ID])
	}

	assert.Empty(t, adapted.Tracks[0].TransitionNotes)
	for _, pt := range adapted.Tracks[1:] {
		assert.Contains(t, pt.TransitionNotes, "transition")
	}
}

func TestEngine_Adapt_LowSkipRatesUnchanged(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)
	before := p.TrackIDs()

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type":      "skip_frequency",
		"skip_data": map[string]any{p.Tracks[0].ID: 0.2},
	})
	require.NoError(t, err)

	assert.Equal(t, before, adapted.TrackIDs())
}

func TestEngine_Adapt_LowSatisfactionReroutes(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)
	originalRoute := p.Route
	poolIDs := make(map[string]bool, len(p.Tracks))
	for _, pt := range p.Tracks {
		poolIDs[pt.ID] = true
	}

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type": "emotional_response",
		"emotional_response": map[string]any{
			"overall_satisfaction": 0.2,
			"current_state":        map[string]any{"valence": 0.2, "arousal": 0.8},
		},
	})
	require.NoError(t, err)

	assert.NotSame(t, originalRoute, adapted.Route, "route is rebuilt")
	assert.Equal(t, 0.2, adapted.Route.Start.Valence, "new route starts from the reported state")
	assert.Equal(t, 40.0, adapted.Route.TotalDuration, "duration carries over")

	require.NotEmpty(t, adapted.Tracks)
	for _, pt := range adapted.Tracks {
		assert.True(t, poolIDs[pt.ID], "reselection draws only from the existing tracks")
	}
}

func TestEngine_Adapt_HighSatisfactionUnchanged(t *testing.T) {
	e := newTestEngine()
	p := generateTestPlaylist(t, e, 40)
	originalRoute := p.Route

	adapted, err := e.Adapt(context.Background(), p.ID, map[string]any{
		"type": "emotional_response",
		"emotional_response": map[string]any{
			"overall_satisfaction": 0.8,
		},
	})
	require.NoError(t, err)

	assert.Same(t, originalRoute, adapted.Route)
}
