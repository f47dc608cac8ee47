package ethics

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// RuleBasedConfig tunes the rule-based evaluator.
type RuleBasedConfig struct {
	// MaxJourneyMinutes is the longest journey allowed to also target an
	// extreme emotional state.
	MaxJourneyMinutes float64 `yaml:"max_journey_minutes" mapstructure:"max_journey_minutes" default:"180" validate:"gt=0"`
	// ExtremeArousal marks arousal targets above this as extreme.
	ExtremeArousal float64 `yaml:"extreme_arousal" mapstructure:"extreme_arousal" default:"0.95" validate:"gt=0,lte=1"`
	// NegativeValenceFloor marks valence targets at or below this as harm.
	NegativeValenceFloor float64 `yaml:"negative_valence_floor" mapstructure:"negative_valence_floor" default:"-0.8" validate:"gte=-1,lte=0"`
}

// RuleBased evaluates requests against emotional-integrity and non-harm
// rules. Only high or critical severity violations deny.
type RuleBased struct {
	config *RuleBasedConfig
}

// NewRuleBased creates a rule-based evaluator from free-form settings.
func NewRuleBased(settings map[string]any) (*RuleBased, error) {
	var config RuleBasedConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return &RuleBased{config: &config}, nil
}

// Evaluate implements Evaluator.
func (r *RuleBased) Evaluate(_ context.Context, action string, reqContext map[string]any) Decision {
	var violations []Violation

	target, hasTarget := reqContext["target_emotion"].(map[string]float64)
	duration, _ := reqContext["duration_minutes"].(float64)

	if hasTarget {
		if target["arousal"] > r.config.ExtremeArousal && duration > r.config.MaxJourneyMinutes {
			violations = append(violations, Violation{
				Principle:   "emotional_integrity",
				Description: "extreme arousal target sustained over a very long journey",
				Severity:    SeverityHigh,
			})
		}
		if v, ok := target["valence"]; ok && v <= r.config.NegativeValenceFloor {
			violations = append(violations, Violation{
				Principle:   "non_harm",
				Description: "target steers toward a deeply negative state",
				Severity:    SeverityHigh,
			})
		}
	}

	if _, ok := reqContext["user_emotion"]; !ok {
		violations = append(violations, Violation{
			Principle:   "transparency",
			Description: "no current emotional state supplied",
			Severity:    SeverityLow,
		})
	}

	permitted := true
	for _, v := range violations {
		if v.Severity == SeverityHigh || v.Severity == SeverityCritical {
			permitted = false
			break
		}
	}

	if !permitted {
		zlog.Warn().Msgf("action denied by ethics rules: action=%s violations=%d", action, len(violations))
	}

	return Decision{Permitted: permitted, Violations: violations}
}
