// Package playlist provides the DynamicPlaylist domain aggregate.
package playlist

import (
	"time"

	"github.com/emre2821/echodj/internal/domain/route"
	"github.com/emre2821/echodj/internal/domain/track"
)

// Type represents the playlist archetype chosen for a request.
type Type string

const (
	TypeEmotionalJourney    Type = "emotional_journey"
	TypeMoodMaintenance     Type = "mood_maintenance"
	TypeEnergyBuilding      Type = "energy_building"
	TypeContemplativeDive   Type = "contemplative_dive"
	TypeDiscoveryExpedition Type = "discovery_expedition"
	TypeNostalgicVoyage     Type = "nostalgic_voyage"
	TypeEcstaticRelease     Type = "ecstatic_release"
	TypeHealingSession      Type = "healing_session"
)

// Types returns all playlist archetypes in a stable order.
func Types() []Type {
	return []Type{
		TypeEmotionalJourney,
		TypeMoodMaintenance,
		TypeEnergyBuilding,
		TypeContemplativeDive,
		TypeDiscoveryExpedition,
		TypeNostalgicVoyage,
		TypeEcstaticRelease,
		TypeHealingSession,
	}
}

// Status represents the lifecycle state of a playlist.
type Status string

const (
	StatusPending     Status = "pending"
	StatusGenerating  Status = "generating"
	StatusReady       Status = "ready"
	StatusPlaying     Status = "playing"
	StatusCompleted   Status = "completed"
	StatusInterrupted Status = "interrupted"
)

// PlayEvent records one piece of listening feedback.
type PlayEvent struct {
	Timestamp time.Time
	Feedback  map[string]any
}

// AdaptiveParameters tune how aggressively a playlist reacts to
// feedback.
type AdaptiveParameters struct {
	EmotionalSensitivity float64
	DiscoveryRate        float64
	FamiliarityBalance   float64
}

// DynamicPlaylist is the sequencer's output aggregate. It is created
// once per generation request and mutated in place by adaptation; the
// caller owns disposal.
type DynamicPlaylist struct {
	ID          string
	Name        string
	Description string
	Type        Type
	Status      Status
	Route       *route.Route
	Tracks      []track.PlaylistTrack
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// Preferences holds the raw preference mapping from the generation
	// request so adaptation can rebuild routes with the same settings.
	Preferences map[string]any
	PlayHistory []PlayEvent
	Adaptive    AdaptiveParameters
}

// TrackIDs returns all track IDs in playback order.
func (p *DynamicPlaylist) TrackIDs() []string {
	ids := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// TotalDuration returns the summed duration of all tracks.
func (p *DynamicPlaylist) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range p.Tracks {
		total += t.Duration
	}
	return total
}

// RecordFeedback appends a feedback event to the play history.
func (p *DynamicPlaylist) RecordFeedback(feedback map[string]any) {
	p.PlayHistory = append(p.PlayHistory, PlayEvent{
		Timestamp: time.Now().UTC(),
		Feedback:  feedback,
	})
}
