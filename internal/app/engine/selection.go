package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/emre2821/echodj/internal/app/profile"
	"github.com/emre2821/echodj/internal/app/router"
	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/route"
	"github.com/emre2821/echodj/internal/domain/track"
)

// skipReplaceThreshold is the skip rate above which a track is swapped
// out during adaptation.
const skipReplaceThreshold = 0.7

// selectTracksForRoute picks one track per route chain point, keeping
// artist diversity and attaching transition notes between consecutive
// picks.
func (e *Engine) selectTracksForRoute(rt *route.Route, available []track.Track, prefs router.Preferences) []track.PlaylistTrack {
	chain := rt.Chain()

	selected := make([]track.PlaylistTrack, 0, len(chain))
	selectedIDs := make(map[string]bool)
	artistCounts := make(map[string]int)

	for i, point := range chain {
		scored := scoreForEmotion(available, point, prefs.FamiliarityPreference)

		var chosen *track.Track
		for j := range scored {
			c := &scored[j]
			if selectedIDs[c.track.ID] {
				continue
			}
			if artistCounts[c.track.Artist] >= prefs.MaxArtistTracks {
				continue
			}
			chosen = &c.track
			break
		}
		if chosen == nil {
			continue
		}

		pt := track.NewPlaylistTrack(*chosen)
		if i > 0 && len(selected) > 0 {
			pt.TransitionNotes = transitionNotes(chain[i-1], point)
		}

		selected = append(selected, pt)
		selectedIDs[pt.ID] = true
		artistCounts[pt.Artist]++
	}

	return selected
}

type emotionScored struct {
	track track.Track
	score float64
}

// scoreForEmotion scores every candidate against a target emotional
// state: closeness plus a resonance boost weighted by the familiarity
// preference. The result is sorted best first with catalog order
// breaking ties.
func scoreForEmotion(available []track.Track, target emotion.Point, familiarity float64) []emotionScored {
	scored := make([]emotionScored, len(available))
	for i, t := range available {
		p := t.EmotionalProfile()
		distance := p.DistanceTo(target)
		scored[i] = emotionScored{
			track: t,
			score: 1.0/(1.0+distance) + p.Resonance*familiarity*0.2,
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// transitionNotes words the valence/arousal shift between two emotional
// states.
func transitionNotes(from, to emotion.Point) string {
	valenceChange := to.Valence - from.Valence
	arousalChange := to.Arousal - from.Arousal

	var mood string
	switch {
	case valenceChange > 0.2:
		mood = "lifting"
	case valenceChange < -0.2:
		mood = "deepening"
	default:
		mood = "maintaining"
	}

	var energy string
	switch {
	case arousalChange > 0.2:
		energy = "energizing"
	case arousalChange < -0.2:
		energy = "calming"
	default:
		energy = "steady"
	}

	return fmt.Sprintf("%s and %s transition", mood, energy)
}

// adjustDuration repairs the playlist toward the target duration. Short
// playlists grow by appending the best emotional-continuity candidate;
// long playlists shrink by removing the interior track whose absence
// least disturbs its neighbors. The first and last tracks are never
// removed.
func (e *Engine) adjustDuration(tracks []track.PlaylistTrack, targetMinutes float64, pool []track.Track, catalogProfile *profile.CatalogProfile, discoveryRate float64) []track.PlaylistTrack {
	current := totalMinutes(tracks)

	switch {
	case current < targetMinutes:
		return e.extendPlaylist(tracks, targetMinutes, pool, catalogProfile, discoveryRate)
	case current > targetMinutes:
		return trimPlaylist(tracks, targetMinutes)
	default:
		return tracks
	}
}

// extendPlaylist appends continuity-scored tracks from the pool until
// the estimated gap is covered or candidates run out.
func (e *Engine) extendPlaylist(tracks []track.PlaylistTrack, targetMinutes float64, pool []track.Track, catalogProfile *profile.CatalogProfile, discoveryRate float64) []track.PlaylistTrack {
	if len(pool) == 0 {
		return tracks
	}

	var poolTotal time.Duration
	for _, t := range pool {
		poolTotal += t.Duration
	}
	avgMinutes := poolTotal.Minutes() / float64(len(pool))
	if avgMinutes <= 0 {
		return tracks
	}

	remaining := targetMinutes - totalMinutes(tracks)
	needed := int(remaining / avgMinutes)
	if needed < 1 {
		needed = 1
	}

	inPlaylist := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		inPlaylist[t.ID] = true
	}

	regionsPresent := make(map[int]bool)
	if catalogProfile != nil {
		for _, t := range tracks {
			if r := catalogProfile.RegionOf(t.ID); r >= 0 {
				regionsPresent[r] = true
			}
		}
	}

	for appended := 0; appended < needed; appended++ {
		best := -1
		bestScore := -1.0

		for i, candidate := range pool {
			if inPlaylist[candidate.ID] {
				continue
			}

			score := 0.5
			if len(tracks) > 0 {
				last := tracks[len(tracks)-1]
				distance := candidate.EmotionalProfile().DistanceTo(last.Profile)
				score = 1.0 / (1.0 + distance)
			}

			// Discovery playlists trade continuity for mood novelty.
			if catalogProfile != nil && discoveryRate > 0 {
				novelty := 0.0
				if r := catalogProfile.RegionOf(candidate.ID); r >= 0 && !regionsPresent[r] {
					novelty = 1.0
				}
				score = score*(1-discoveryRate) + novelty*discoveryRate
			}

			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		if best < 0 {
			break
		}

		pt := track.NewPlaylistTrack(pool[best])
		if len(tracks) > 0 {
			pt.TransitionNotes = transitionNotes(tracks[len(tracks)-1].Profile, pt.Profile)
		}
		tracks = append(tracks, pt)
		inPlaylist[pt.ID] = true
		if catalogProfile != nil {
			if r := catalogProfile.RegionOf(pt.ID); r >= 0 {
				regionsPresent[r] = true
			}
		}
	}

	return tracks
}

// trimPlaylist removes interior tracks, one at a time, always choosing
// the removal that leaves the smallest emotional gap between the former
// neighbors. Stops at the target or when no interior track remains.
func trimPlaylist(tracks []track.PlaylistTrack, targetMinutes float64) []track.PlaylistTrack {
	for totalMinutes(tracks) > targetMinutes && len(tracks) > 2 {
		bestIndex := -1
		bestGap := 0.0

		for i := 1; i < len(tracks)-1; i++ {
			gap := tracks[i-1].Profile.DistanceTo(tracks[i+1].Profile)
			if bestIndex < 0 || gap < bestGap {
				bestGap = gap
				bestIndex = i
			}
		}
		if bestIndex < 0 {
			break
		}

		tracks = append(tracks[:bestIndex], tracks[bestIndex+1:]...)
	}
	return tracks
}

func totalMinutes(tracks []track.PlaylistTrack) float64 {
	var total time.Duration
	for _, t := range tracks {
		total += t.Duration
	}
	return total.Minutes()
}
