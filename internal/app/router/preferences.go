package router

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// JourneyType names the endpoint-synthesis archetype used when no
// explicit target emotion is supplied.
type JourneyType string

const (
	JourneyEnergizing  JourneyType = "energizing"
	JourneyCalming     JourneyType = "calming"
	JourneyExploratory JourneyType = "exploratory"
	JourneyDefault     JourneyType = "default"
)

// Preferences is the typed form of the free-form preference mapping
// accepted by route construction and playlist generation.
type Preferences struct {
	JourneyType           string  `mapstructure:"journey_type" default:"exploratory"`
	EmotionalArc          string  `mapstructure:"emotional_arc"`
	Complexity            int     `mapstructure:"complexity" default:"3" validate:"gte=0,lte=12"`
	TransitionStyle       string  `mapstructure:"transition_style"`
	ExperienceLevel       string  `mapstructure:"experience_level" default:"intermediate"`
	FamiliarityPreference float64 `mapstructure:"familiarity_preference" default:"0.5" validate:"gte=0,lte=1"`
	MaxArtistTracks       int     `mapstructure:"max_artist_tracks" default:"2" validate:"gte=1"`
	EmotionalSensitivity  float64 `mapstructure:"emotional_sensitivity" default:"0.7" validate:"gte=0,lte=1"`
	DiscoveryRate         float64 `mapstructure:"discovery_rate" default:"0.3" validate:"gte=0,lte=1"`
	FamiliarityBalance    float64 `mapstructure:"familiarity_balance" default:"0.5" validate:"gte=0,lte=1"`
}

// DecodePreferences decodes a free-form preference mapping, applies
// defaults and validates ranges. Numeric values are decoded weakly, so
// ints and floats mix freely.
func DecodePreferences(settings map[string]any) (Preferences, error) {
	var prefs Preferences
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &prefs,
	})
	if err != nil {
		return Preferences{}, errors.Wrap(err, "failed to build decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return Preferences{}, errors.Wrap(err, "failed to decode preferences")
	}
	if err := defaults.Set(&prefs); err != nil {
		return Preferences{}, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(prefs); err != nil {
		return Preferences{}, errors.Wrap(err, "preference validation failed")
	}
	return prefs, nil
}

// DefaultPreferences returns the preference defaults.
func DefaultPreferences() Preferences {
	var prefs Preferences
	// Set on a zero struct cannot fail for this type.
	_ = defaults.Set(&prefs)
	return prefs
}
