package engine

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/emre2821/echodj/internal/app/router"
	"github.com/emre2821/echodj/internal/domain/playlist"
	"github.com/emre2821/echodj/internal/domain/track"
)

// Feedback is the typed form of a feedback mapping.
type Feedback struct {
	Type              string             `mapstructure:"type"`
	SkipData          map[string]float64 `mapstructure:"skip_data"`
	EmotionalResponse EmotionalResponse  `mapstructure:"emotional_response"`
	CompletionRate    *float64           `mapstructure:"completion_rate"`
}

// EmotionalResponse reports how a listener actually felt.
type EmotionalResponse struct {
	OverallSatisfaction *float64           `mapstructure:"overall_satisfaction"`
	CurrentState        map[string]float64 `mapstructure:"current_state"`
}

func decodeFeedback(feedback map[string]any) (Feedback, error) {
	var fb Feedback
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &fb,
	})
	if err != nil {
		return Feedback{}, errors.Wrap(err, "failed to build decoder")
	}
	if err := decoder.Decode(feedback); err != nil {
		return Feedback{}, errors.Wrap(err, "failed to decode feedback")
	}
	return fb, nil
}

// Adapt mutates a stored playlist from listening feedback. The feedback
// is always recorded; structural changes depend on the feedback type.
// Adapting an unknown playlist id fails with store.ErrNotFound, the one
// loud failure in this engine.
func (e *Engine) Adapt(ctx context.Context, playlistID string, feedback map[string]any) (*playlist.DynamicPlaylist, error) {
	release := e.store.Lock(playlistID)
	defer release()

	p, err := e.store.Get(playlistID)
	if err != nil {
		return nil, err
	}

	p.RecordFeedback(feedback)

	fb, err := decodeFeedback(feedback)
	if err != nil {
		zlog.Warn().Msgf("unreadable feedback recorded without adaptation: %v", err)
		fb = Feedback{}
	}

	switch fb.Type {
	case "skip_frequency":
		e.adaptToSkips(p, fb)
	case "emotional_response":
		e.adaptToEmotionalResponse(ctx, p, fb)
	case "completion_rate":
		e.adaptToCompletion(p, fb)
	default:
		zlog.Debug().Msgf("feedback type %q recorded, no structural change", fb.Type)
	}

	p.UpdatedAt = time.Now().UTC()
	e.store.Put(p)

	return p, nil
}

// adaptToSkips swaps heavily skipped tracks with the playlist member
// that best continues from the predecessor, then rewords transition
// notes from the resulting track order.
func (e *Engine) adaptToSkips(p *playlist.DynamicPlaylist, fb Feedback) {
	if len(fb.SkipData) == 0 || len(p.Tracks) < 2 {
		return
	}

	swapped := false
	moved := make(map[string]bool)
	for i := range p.Tracks {
		id := p.Tracks[i].ID
		// A relocated track must not bounce again when the loop reaches
		// its new position.
		if moved[id] || fb.SkipData[id] <= skipReplaceThreshold {
			continue
		}

		replacement := findReplacement(p.Tracks, i, fb.SkipData)
		if replacement < 0 {
			continue
		}

		p.Tracks[i], p.Tracks[replacement] = p.Tracks[replacement], p.Tracks[i]
		moved[id] = true
		swapped = true
	}

	if swapped {
		rewriteTransitionNotes(p.Tracks)
	}
}

// findReplacement returns the index of the playlist track that best
// continues from index's predecessor, excluding other heavily skipped
// tracks. Returns -1 when nothing qualifies.
func findReplacement(tracks []track.PlaylistTrack, index int, skipData map[string]float64) int {
	anchor := index - 1
	if anchor < 0 {
		anchor = index + 1
	}

	best := -1
	bestScore := -1.0
	for j := range tracks {
		if j == index {
			continue
		}
		if skipData[tracks[j].ID] > skipReplaceThreshold {
			continue
		}

		distance := tracks[j].Profile.DistanceTo(tracks[anchor].Profile)
		score := 1.0 / (1.0 + distance)
		if score > bestScore {
			bestScore = score
			best = j
		}
	}
	return best
}

// rewriteTransitionNotes recomputes every transition note from the
// current track order.
func rewriteTransitionNotes(tracks []track.PlaylistTrack) {
	for i := range tracks {
		if i == 0 {
			tracks[i].TransitionNotes = ""
			continue
		}
		tracks[i].TransitionNotes = transitionNotes(tracks[i-1].Profile, tracks[i].Profile)
	}
}

// adaptToEmotionalResponse rebuilds the route and reselects tracks when
// satisfaction falls below threshold. The existing tracks serve as the
// candidate pool and the router synthesizes a fresh endpoint from the
// reported state.
func (e *Engine) adaptToEmotionalResponse(ctx context.Context, p *playlist.DynamicPlaylist, fb Feedback) {
	satisfaction := 0.5
	if fb.EmotionalResponse.OverallSatisfaction != nil {
		satisfaction = *fb.EmotionalResponse.OverallSatisfaction
	}
	if satisfaction >= 0.4 {
		return
	}

	newRoute := e.router.CreateRoute(ctx, fb.EmotionalResponse.CurrentState, nil, p.Route.TotalDuration, p.Preferences)

	prefs, err := router.DecodePreferences(p.Preferences)
	if err != nil {
		prefs = router.DefaultPreferences()
	}

	pool := candidatePool(p.Tracks)
	newTracks := e.selectTracksForRoute(newRoute, pool, prefs)
	newTracks = e.adjustDuration(newTracks, newRoute.TotalDuration, pool, nil, 0)

	p.Route = newRoute
	p.Tracks = newTracks

	zlog.Info().Msgf("playlist re-routed from emotional feedback: id=%s satisfaction=%.2f tracks=%d",
		p.ID, satisfaction, len(newTracks))
}

// adaptToCompletion shrinks the target duration to 70% when listeners
// abandon the playlist early, then re-runs duration repair.
func (e *Engine) adaptToCompletion(p *playlist.DynamicPlaylist, fb Feedback) {
	completionRate := 1.0
	if fb.CompletionRate != nil {
		completionRate = *fb.CompletionRate
	}
	if completionRate >= 0.5 {
		return
	}

	target := p.Route.TotalDuration * 0.7
	pool := candidatePool(p.Tracks)

	p.Tracks = e.adjustDuration(p.Tracks, target, pool, nil, 0)
	p.Route.TotalDuration = target

	zlog.Info().Msgf("playlist shortened from completion feedback: id=%s target=%.1fmin tracks=%d",
		p.ID, target, len(p.Tracks))
}

func candidatePool(tracks []track.PlaylistTrack) []track.Track {
	pool := make([]track.Track, len(tracks))
	for i, t := range tracks {
		pool[i] = t.Candidate()
	}
	return pool
}
