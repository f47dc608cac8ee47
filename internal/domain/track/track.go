// Package track provides the candidate Track and PlaylistTrack domain
// entities.
package track

import (
	"time"

	"github.com/emre2821/echodj/internal/domain/emotion"
)

// Track represents a candidate track supplied by the caller's catalog.
// Tracks are read-only inputs; ownership stays with the catalog.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Duration time.Duration
	Genres   []string
	// Features holds the caller-computed emotional metadata. Recognized
	// keys: valence, energy, dominance, depth, popularity.
	Features map[string]float64
}

// EmotionalProfile maps the track's feature metadata onto an emotional
// point. Track energy maps to arousal and popularity serves as a proxy
// for resonance. Missing keys default to 0.5. A track with no numeric
// features but known genres falls back to the genre emotion map.
func (t *Track) EmotionalProfile() emotion.Point {
	if len(t.Features) == 0 && len(t.Genres) > 0 {
		if p, ok := GenreProfile(t.Genres); ok {
			return p
		}
	}
	return emotion.Point{
		Timestamp: 0.0,
		Valence:   t.feature("valence", 0.5),
		Arousal:   t.feature("energy", 0.5),
		Dominance: t.feature("dominance", 0.5),
		Depth:     t.feature("depth", 0.5),
		Resonance: t.feature("popularity", 0.5),
	}.Clamp()
}

func (t *Track) feature(key string, fallback float64) float64 {
	if v, ok := t.Features[key]; ok {
		return v
	}
	return fallback
}

// PlaylistTrack is the sequencer's own track wrapper: identity fields
// copied from the candidate plus notes describing the emotional shift
// from the previous track.
type PlaylistTrack struct {
	ID              string
	Title           string
	Artist          string
	Duration        time.Duration
	Profile         emotion.Point
	TransitionNotes string
}

// NewPlaylistTrack wraps a candidate track for inclusion in a playlist.
func NewPlaylistTrack(t Track) PlaylistTrack {
	return PlaylistTrack{
		ID:       t.ID,
		Title:    t.Title,
		Artist:   t.Artist,
		Duration: t.Duration,
		Profile:  t.EmotionalProfile(),
	}
}

// Candidate converts a playlist track back into a candidate track so an
// existing playlist can serve as its own selection pool during
// adaptation.
func (pt PlaylistTrack) Candidate() Track {
	return Track{
		ID:       pt.ID,
		Title:    pt.Title,
		Artist:   pt.Artist,
		Duration: pt.Duration,
		Features: map[string]float64{
			"valence":    pt.Profile.Valence,
			"energy":     pt.Profile.Arousal,
			"dominance":  pt.Profile.Dominance,
			"depth":      pt.Profile.Depth,
			"popularity": pt.Profile.Resonance,
		},
	}
}
