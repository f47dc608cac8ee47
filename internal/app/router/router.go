// Package router provides the MoodRouter: it builds emotional journey
// routes and maps them onto concrete track sequences.
package router

import (
	"context"
	"math"

	zlog "github.com/rs/zerolog/log"

	"github.com/emre2821/echodj/internal/app/ethics"
	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/route"
)

// Router builds mood routes from a listener's emotional state.
type Router struct {
	ethics ethics.Evaluator
}

// New creates a Router gated by the given ethics evaluator.
func New(ev ethics.Evaluator) *Router {
	return &Router{ethics: ev}
}

// CreateRoute builds an emotional route from the listener's current
// state toward a target. A nil target lets the router synthesize an
// endpoint from the journey-type preference. CreateRoute never fails:
// denied or malformed requests yield the safe route.
func (r *Router) CreateRoute(ctx context.Context, userEmotion, targetEmotion map[string]float64, durationMinutes float64, settings map[string]any) *route.Route {
	reqContext := map[string]any{
		"duration_minutes": durationMinutes,
		"preferences":      settings,
	}
	if userEmotion != nil {
		reqContext["user_emotion"] = userEmotion
	}
	if targetEmotion != nil {
		reqContext["target_emotion"] = targetEmotion
	}

	decision := r.ethics.Evaluate(ctx, "create_emotional_route", reqContext)
	if !decision.Permitted {
		zlog.Warn().Msgf("routing request denied, falling back to safe route: violations=%d", len(decision.Violations))
		return SafeRoute(durationMinutes)
	}

	prefs, err := DecodePreferences(settings)
	if err != nil {
		zlog.Warn().Msgf("invalid preferences, using defaults: %v", err)
		prefs = DefaultPreferences()
	}

	start := startPoint(userEmotion)

	var end emotion.Point
	if targetEmotion != nil {
		end = targetPoint(targetEmotion)
	} else {
		end = synthesizeEndpoint(start, JourneyType(prefs.JourneyType))
	}

	arc := determineArc(start, end, prefs)
	waypoints := makeWaypoints(start, end, arc, prefs.Complexity)
	transition := determineTransition(prefs)
	impact := estimateImpact(start, end, waypoints)

	rt := &route.Route{
		Start:           start,
		End:             end,
		Arc:             arc,
		Transition:      transition,
		TotalDuration:   durationMinutes,
		EstimatedImpact: impact,
	}
	for _, wp := range waypoints {
		rt.AddWaypoint(wp)
	}

	zlog.Info().Msgf("emotional route created: arc=%s transition=%s waypoints=%d duration=%.1f impact=%.2f",
		arc, transition, len(waypoints), durationMinutes, impact)

	return rt
}

// SafeRoute returns a flat neutral route. It is the documented fallback
// for denied or failed routing requests and never fails itself.
func SafeRoute(durationMinutes float64) *route.Route {
	return &route.Route{
		Start:           emotion.Neutral(0.0),
		End:             emotion.Neutral(1.0),
		Arc:             emotion.ArcStable,
		Transition:      emotion.TransitionSmooth,
		TotalDuration:   durationMinutes,
		EstimatedImpact: 0.5,
	}
}

// startPoint builds the route start from a possibly partial emotion
// mapping. Missing fields default to 0.5 except resonance, which
// defaults to 0.7.
func startPoint(userEmotion map[string]float64) emotion.Point {
	return emotion.Point{
		Timestamp: 0.0,
		Valence:   emotionField(userEmotion, "valence", 0.5),
		Arousal:   emotionField(userEmotion, "arousal", 0.5),
		Dominance: emotionField(userEmotion, "dominance", 0.5),
		Depth:     emotionField(userEmotion, "depth", 0.5),
		Resonance: emotionField(userEmotion, "resonance", 0.7),
	}.Clamp()
}

// targetPoint builds the route end from an explicit target mapping.
func targetPoint(targetEmotion map[string]float64) emotion.Point {
	return emotion.Point{
		Timestamp: 1.0,
		Valence:   emotionField(targetEmotion, "valence", 0.6),
		Arousal:   emotionField(targetEmotion, "arousal", 0.6),
		Dominance: emotionField(targetEmotion, "dominance", 0.6),
		Depth:     emotionField(targetEmotion, "depth", 0.6),
		Resonance: emotionField(targetEmotion, "resonance", 0.8),
	}.Clamp()
}

func emotionField(m map[string]float64, key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// synthesizeEndpoint derives a journey endpoint from the start state
// when no explicit target was given. Each journey type nudges the start
// state by fixed deltas.
func synthesizeEndpoint(start emotion.Point, journey JourneyType) emotion.Point {
	var end emotion.Point
	switch journey {
	case JourneyEnergizing:
		end = emotion.Point{
			Valence:   math.Min(0.9, start.Valence+0.2),
			Arousal:   math.Min(0.9, start.Arousal+0.3),
			Dominance: math.Max(0.6, start.Dominance+0.1),
			Depth:     start.Depth,
			Resonance: math.Min(0.9, start.Resonance+0.1),
		}
	case JourneyCalming:
		end = emotion.Point{
			Valence:   math.Max(0.6, start.Valence+0.1),
			Arousal:   math.Max(0.2, start.Arousal-0.3),
			Dominance: math.Max(0.4, start.Dominance-0.1),
			Depth:     math.Max(0.6, start.Depth+0.1),
			Resonance: math.Max(0.8, start.Resonance+0.1),
		}
	case JourneyExploratory:
		// Flip valence and arousal toward the opposite half of their
		// range to create contrast while raising depth and resonance.
		valence := 0.4
		if start.Valence < 0.5 {
			valence = 0.7
		}
		arousal := 0.4
		if start.Arousal < 0.5 {
			arousal = 0.6
		}
		end = emotion.Point{
			Valence:   valence,
			Arousal:   arousal,
			Dominance: 0.6,
			Depth:     math.Max(0.7, start.Depth+0.2),
			Resonance: math.Max(0.8, start.Resonance+0.1),
		}
	default:
		// Slight improvement over the current state.
		end = emotion.Point{
			Valence:   math.Min(0.8, start.Valence+0.1),
			Arousal:   start.Arousal,
			Dominance: start.Dominance,
			Depth:     math.Max(0.6, start.Depth+0.1),
			Resonance: math.Max(0.8, start.Resonance+0.1),
		}
	}
	end.Timestamp = 1.0
	return end.Clamp()
}

// determineArc picks the arc type: an explicit valid preference wins,
// otherwise the arc is classified from the valence/arousal deltas.
func determineArc(start, end emotion.Point, prefs Preferences) emotion.Arc {
	if arc, ok := emotion.ParseArc(prefs.EmotionalArc); ok {
		return arc
	}

	valenceDiff := end.Valence - start.Valence
	arousalDiff := end.Arousal - start.Arousal

	switch {
	case valenceDiff > 0.3 && arousalDiff > 0.2:
		return emotion.ArcAscending
	case valenceDiff < -0.3 && arousalDiff < -0.2:
		return emotion.ArcDescending
	case math.Abs(valenceDiff) < 0.1 && math.Abs(arousalDiff) < 0.1:
		return emotion.ArcStable
	case valenceDiff >= 0.3 || arousalDiff >= 0.3:
		return emotion.ArcResolution
	default:
		return emotion.ArcWavy
	}
}

// makeWaypoints generates count interior waypoints evenly spaced along
// the journey. Valence and arousal follow the arc shape; dominance,
// depth and resonance always interpolate linearly. Every waypoint is
// clamped after computation.
func makeWaypoints(start, end emotion.Point, arc emotion.Arc, count int) []emotion.Point {
	waypoints := make([]emotion.Point, 0, count)
	for i := 1; i <= count; i++ {
		progress := float64(i) / float64(count+1)
		wp := emotion.Lerp(start, end, progress)

		if arc == emotion.ArcWavy {
			waveOffset := 0.1 * math.Sin(progress*4*math.Pi)
			wp.Valence += waveOffset
			wp.Arousal += waveOffset
		}

		wp.Timestamp = progress
		waypoints = append(waypoints, wp.Clamp())
	}
	return waypoints
}

// determineTransition picks the transition style: an explicit valid
// preference wins, otherwise the style is mapped from experience level.
func determineTransition(prefs Preferences) emotion.TransitionStyle {
	if style, ok := emotion.ParseTransitionStyle(prefs.TransitionStyle); ok {
		return style
	}
	switch prefs.ExperienceLevel {
	case "beginner":
		return emotion.TransitionSmooth
	case "advanced":
		return emotion.TransitionContrast
	default:
		return emotion.TransitionStepwise
	}
}

// estimateImpact scores the route by the average emotional distance
// traveled along the chain, weighted with the average resonance. The
// formulas are heuristic; the result is clamped to 1.0 rather than
// assumed to be a probability.
func estimateImpact(start, end emotion.Point, waypoints []emotion.Point) float64 {
	if len(waypoints) == 0 {
		return 0.5
	}

	totalDistance := start.DistanceTo(waypoints[0])
	for i := 0; i < len(waypoints)-1; i++ {
		totalDistance += waypoints[i].DistanceTo(waypoints[i+1])
	}
	totalDistance += waypoints[len(waypoints)-1].DistanceTo(end)

	avgDistance := totalDistance / float64(len(waypoints)+1)

	resonanceSum := start.Resonance + end.Resonance
	for _, wp := range waypoints {
		resonanceSum += wp.Resonance
	}
	avgResonance := resonanceSum / float64(len(waypoints)+2)

	return math.Min(1.0, avgDistance*0.6+avgResonance*0.4)
}
