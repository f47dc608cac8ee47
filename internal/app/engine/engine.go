// Package engine provides the playlist generation engine: it classifies
// requests into archetypes, routes them through emotional space, selects
// and repairs track sequences, and adapts playlists from feedback.
package engine

import (
	"context"
	"time"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/emre2821/echodj/internal/app/ethics"
	"github.com/emre2821/echodj/internal/app/profile"
	"github.com/emre2821/echodj/internal/app/router"
	"github.com/emre2821/echodj/internal/app/store"
	"github.com/emre2821/echodj/internal/domain/playlist"
	"github.com/emre2821/echodj/internal/domain/track"
)

// Options tune the generation engine.
type Options struct {
	// DefaultDurationMinutes is used when a request carries no duration.
	DefaultDurationMinutes float64 `yaml:"default_duration_minutes" mapstructure:"default_duration_minutes" default:"60" validate:"gte=5,lte=480"`
	// MoodRegions is the number of catalog mood regions used to widen
	// selection for discovery playlists.
	MoodRegions int `yaml:"mood_regions" mapstructure:"mood_regions" default:"4" validate:"gte=2,lte=10"`
	// FallbackTrackCount caps the unscored fallback playlist.
	FallbackTrackCount int `yaml:"fallback_track_count" mapstructure:"fallback_track_count" default:"10" validate:"gte=1"`
}

// Request describes one playlist generation request.
type Request struct {
	// Text is the listener's free-form request, used for archetype
	// classification.
	Text string
	// TargetEmotion optionally names the desired end state.
	TargetEmotion map[string]float64
	// DurationMinutes is the requested playlist length; zero means the
	// engine default.
	DurationMinutes float64
}

// Engine generates and adapts dynamic playlists.
type Engine struct {
	router *router.Router
	ethics ethics.Evaluator
	store  store.Store
	opts   Options
}

// New creates an Engine. Zero option fields take their defaults.
func New(r *router.Router, ev ethics.Evaluator, st store.Store, opts Options) *Engine {
	// Set on this options type cannot fail.
	_ = defaults.Set(&opts)
	return &Engine{
		router: r,
		ethics: ev,
		store:  st,
		opts:   opts,
	}
}

// Generate builds a playlist for the request. It never fails: a denied
// or degenerate request yields the unscored fallback playlist, so the
// caller always receives a structurally valid result.
func (e *Engine) Generate(ctx context.Context, req Request, userEmotion map[string]float64, available []track.Track, preferences map[string]any) *playlist.DynamicPlaylist {
	reqContext := map[string]any{
		"request_text":     req.Text,
		"duration_minutes": req.DurationMinutes,
		"preferences":      preferences,
	}
	if userEmotion != nil {
		reqContext["user_emotion"] = userEmotion
	}
	if req.TargetEmotion != nil {
		reqContext["target_emotion"] = req.TargetEmotion
	}

	decision := e.ethics.Evaluate(ctx, "generate_playlist", reqContext)
	if !decision.Permitted {
		zlog.Warn().Msgf("generation request denied, using fallback playlist: violations=%d", len(decision.Violations))
		return e.fallbackPlaylist(available)
	}

	playlistType := determineType(req.Text, userEmotion)

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = e.opts.DefaultDurationMinutes
	}

	rt := e.router.CreateRoute(ctx, userEmotion, req.TargetEmotion, duration, preferences)

	prefs, err := router.DecodePreferences(preferences)
	if err != nil {
		zlog.Warn().Msgf("invalid preferences, using defaults: %v", err)
		prefs = router.DefaultPreferences()
	}

	tracks := e.selectTracksForRoute(rt, available, prefs)

	// Discovery playlists widen duration repair with catalog mood
	// regions so appended tracks explore underrepresented moods.
	var catalogProfile *profile.CatalogProfile
	if playlistType == playlist.TypeDiscoveryExpedition && prefs.DiscoveryRate > 0 {
		catalogProfile, err = profile.Analyze(available, e.opts.MoodRegions)
		if err != nil {
			zlog.Debug().Msgf("catalog profile unavailable: %v", err)
		}
	}

	tracks = e.adjustDuration(tracks, rt.TotalDuration, available, catalogProfile, prefs.DiscoveryRate)

	now := time.Now().UTC()
	p := &playlist.DynamicPlaylist{
		ID:          uuid.NewString(),
		Name:        playlistName(playlistType, userEmotion),
		Description: playlistDescription(rt, playlistType),
		Type:        playlistType,
		Status:      playlist.StatusReady,
		Route:       rt,
		Tracks:      tracks,
		CreatedAt:   now,
		UpdatedAt:   now,
		Preferences: preferences,
		Adaptive: playlist.AdaptiveParameters{
			EmotionalSensitivity: prefs.EmotionalSensitivity,
			DiscoveryRate:        prefs.DiscoveryRate,
			FamiliarityBalance:   prefs.FamiliarityBalance,
		},
	}

	e.store.Put(p)

	zlog.Info().Msgf("playlist generated: id=%s type=%s tracks=%d duration=%s",
		p.ID, p.Type, len(p.Tracks), p.TotalDuration())

	return p
}

// fallbackPlaylist wraps the first candidates verbatim in a flat
// neutral route. No scoring is applied.
func (e *Engine) fallbackPlaylist(available []track.Track) *playlist.DynamicPlaylist {
	limit := e.opts.FallbackTrackCount
	if limit > len(available) {
		limit = len(available)
	}

	tracks := make([]track.PlaylistTrack, 0, limit)
	for _, t := range available[:limit] {
		tracks = append(tracks, track.NewPlaylistTrack(t))
	}

	now := time.Now().UTC()
	p := &playlist.DynamicPlaylist{
		ID:          uuid.NewString(),
		Name:        "Curated Selection",
		Description: "A thoughtfully selected collection of tracks",
		Type:        playlist.TypeEmotionalJourney,
		Status:      playlist.StatusReady,
		Route:       router.SafeRoute(e.opts.DefaultDurationMinutes),
		Tracks:      tracks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e.store.Put(p)
	return p
}
