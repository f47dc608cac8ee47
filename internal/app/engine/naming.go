package engine

import (
	"fmt"
	"strings"

	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/playlist"
	"github.com/emre2821/echodj/internal/domain/route"
)

var nameTemplates = map[playlist.Type]string{
	playlist.TypeEmotionalJourney:    "Emotional Journey Through Sound",
	playlist.TypeMoodMaintenance:     "Steady State Sessions",
	playlist.TypeEnergyBuilding:      "Energy Ascension",
	playlist.TypeContemplativeDive:   "Deep Contemplation",
	playlist.TypeDiscoveryExpedition: "Sonic Discovery Expedition",
	playlist.TypeNostalgicVoyage:     "Nostalgic Sound Voyage",
	playlist.TypeEcstaticRelease:     "Ecstatic Energy Release",
	playlist.TypeHealingSession:      "Healing Sound Session",
}

// playlistName builds a name from the archetype template and a mood
// descriptor derived from the listener's state.
func playlistName(playlistType playlist.Type, userEmotion map[string]float64) string {
	baseName, ok := nameTemplates[playlistType]
	if !ok {
		baseName = "Curated Sound Experience"
	}

	valence := 0.5
	if v, ok := userEmotion["valence"]; ok {
		valence = v
	}
	arousal := 0.5
	if a, ok := userEmotion["arousal"]; ok {
		arousal = a
	}

	var mood string
	switch {
	case valence > 0.7 && arousal > 0.7:
		mood = "Energetic Joy"
	case valence > 0.7:
		mood = "Peaceful Contentment"
	case valence < 0.3:
		mood = "Contemplative Depth"
	case arousal > 0.7:
		mood = "Dynamic Energy"
	default:
		mood = "Balanced Flow"
	}

	return fmt.Sprintf("%s: %s", baseName, mood)
}

// playlistDescription words the journey from the route's start state to
// its end state.
func playlistDescription(rt *route.Route, playlistType playlist.Type) string {
	typeName := strings.ReplaceAll(string(playlistType), "_", " ")
	return fmt.Sprintf(
		"A carefully crafted %s that begins with %s and journeys toward %s. "+
			"This playlist respects your emotional state while guiding you through a meaningful musical experience.",
		typeName, describePoint(rt.Start), describePoint(rt.End))
}

// describePoint words an emotional point's valence and arousal.
func describePoint(p emotion.Point) string {
	var valenceDesc string
	switch {
	case p.Valence > 0.6:
		valenceDesc = "positive"
	case p.Valence < 0.4:
		valenceDesc = "contemplative"
	default:
		valenceDesc = "balanced"
	}

	var energyDesc string
	switch {
	case p.Arousal > 0.7:
		energyDesc = "high energy"
	case p.Arousal < 0.4:
		energyDesc = "gentle"
	default:
		energyDesc = "moderate energy"
	}

	return fmt.Sprintf("%s and %s moments", valenceDesc, energyDesc)
}
