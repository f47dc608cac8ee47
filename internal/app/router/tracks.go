package router

import (
	"math"
	"sort"

	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/route"
	"github.com/emre2821/echodj/internal/domain/track"
)

// slotCount fixes the number of positional slots filled when mapping a
// route onto tracks: positions 0.0, 0.1, ... 1.0.
const slotCount = 11

// slotTolerance is how far a candidate's catalog position may sit from
// a slot and still be eligible for it.
const slotTolerance = 0.15

type scoredCandidate struct {
	track    track.Track
	index    int
	position float64
	fitness  float64
}

// RouteToTracks maps a route onto an ordered track sequence. Each
// candidate is scored against the route's emotional state at its
// catalog position, then positional slots are filled greedily from the
// fittest candidates. Sparse catalogs can fill fewer than all slots.
// Ties break deterministically in catalog order.
func (r *Router) RouteToTracks(rt *route.Route, available []track.Track) []track.Track {
	n := len(available)
	if n == 0 {
		return nil
	}

	candidates := make([]scoredCandidate, n)
	for i, t := range available {
		position := 0.0
		if n > 1 {
			position = float64(i) / float64(n-1)
		}
		target := rt.EmotionalAt(position)
		candidates[i] = scoredCandidate{
			track:    t,
			index:    i,
			position: position,
			fitness:  trackFitness(t.EmotionalProfile(), target, rt.Transition),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].fitness > candidates[j].fitness
	})

	used := make([]bool, n)
	selected := make([]track.Track, 0, slotCount)

	for slot := 0; slot < slotCount; slot++ {
		targetPosition := float64(slot) / float64(slotCount-1)

		best := -1
		bestScore := -1.0
		for ci, c := range candidates {
			if used[c.index] {
				continue
			}
			positionDiff := math.Abs(c.position - targetPosition)
			if positionDiff >= slotTolerance {
				continue
			}
			// Penalize position mismatch against raw fitness.
			score := c.fitness * (1 - positionDiff)
			if score > bestScore {
				bestScore = score
				best = ci
			}
		}

		if best >= 0 {
			used[candidates[best].index] = true
			selected = append(selected, candidates[best].track)
		}
	}

	return selected
}

// trackFitness scores how well a track's emotional profile matches a
// target point. Smooth transitions reward closeness; contrast and
// stepwise reward a moderate emotional gap.
func trackFitness(profile, target emotion.Point, style emotion.TransitionStyle) float64 {
	distance := profile.DistanceTo(target)

	switch style {
	case emotion.TransitionSmooth:
		return 1.0 / (1.0 + distance)
	case emotion.TransitionContrast:
		return 1.0 / (1.0 + math.Abs(distance-0.3))
	default:
		return 1.0 / (1.0 + math.Abs(distance-0.2))
	}
}
