package engine

import (
	"strings"

	"github.com/emre2821/echodj/internal/domain/playlist"
)

// ArchetypeRule maps request keywords to a playlist archetype. Rules
// are ordered; the first match wins.
type ArchetypeRule struct {
	Type     playlist.Type
	Keywords []string
}

// ArchetypeRules returns the ordered keyword rules used for request
// classification.
func ArchetypeRules() []ArchetypeRule {
	return []ArchetypeRule{
		{playlist.TypeDiscoveryExpedition, []string{"journey", "adventure", "explore"}},
		{playlist.TypeEnergyBuilding, []string{"energy", "pump", "motivate"}},
		{playlist.TypeContemplativeDive, []string{"calm", "peaceful", "meditate"}},
		{playlist.TypeHealingSession, []string{"heal", "therapy", "comfort"}},
		{playlist.TypeNostalgicVoyage, []string{"nostalgia", "memories", "classic"}},
		{playlist.TypeEcstaticRelease, []string{"party", "dance", "celebrate"}},
		{playlist.TypeMoodMaintenance, []string{"maintain", "keep", "steady"}},
	}
}

// determineType classifies a request into a playlist archetype: keyword
// rules first, then emotion-based thresholds.
func determineType(requestText string, userEmotion map[string]float64) playlist.Type {
	text := strings.ToLower(requestText)

	for _, rule := range ArchetypeRules() {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Type
			}
		}
	}

	valence := 0.5
	if v, ok := userEmotion["valence"]; ok {
		valence = v
	}
	arousal := 0.5
	if a, ok := userEmotion["arousal"]; ok {
		arousal = a
	}

	switch {
	case valence < 0.4 && arousal < 0.4:
		return playlist.TypeHealingSession
	case valence > 0.7 && arousal > 0.7:
		return playlist.TypeEcstaticRelease
	case valence < 0.5:
		return playlist.TypeContemplativeDive
	case arousal < 0.4:
		return playlist.TypeContemplativeDive
	default:
		return playlist.TypeEmotionalJourney
	}
}
