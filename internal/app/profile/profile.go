// Package profile groups a candidate catalog into mood regions using
// k-means clustering over emotional space.
package profile

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/emre2821/echodj/internal/domain/emotion"
	"github.com/emre2821/echodj/internal/domain/track"
)

// Region is one mood cluster of the catalog.
type Region struct {
	Name     string
	Center   emotion.Point
	TrackIDs []string
}

// CatalogProfile summarizes the emotional shape of a candidate pool.
type CatalogProfile struct {
	Regions []Region
	// regionByTrack maps track id to region index.
	regionByTrack map[string]int
}

// trackObservation adapts a track's emotional profile to the
// clusters.Observation interface. Coordinates are (valence, arousal,
// depth, resonance); dominance varies little across catalogs and only
// blurs the clusters.
type trackObservation struct {
	id     string
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Analyze partitions the catalog into numRegions mood regions. Catalogs
// smaller than numRegions cannot be partitioned and return an error;
// callers treat a failed analysis as "no profile" rather than a fatal
// condition.
func Analyze(tracks []track.Track, numRegions int) (*CatalogProfile, error) {
	if numRegions <= 0 {
		return nil, errors.Newf("invalid region count %d", numRegions)
	}
	if len(tracks) < numRegions {
		return nil, errors.Newf("catalog too small: %d tracks for %d regions", len(tracks), numRegions)
	}

	var obs clusters.Observations
	for _, t := range tracks {
		p := t.EmotionalProfile()
		obs = append(obs, trackObservation{
			id:     t.ID,
			coords: clusters.Coordinates{p.Valence, p.Arousal, p.Depth, p.Resonance},
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, numRegions)
	if err != nil {
		return nil, errors.Wrap(err, "k-means partition failed")
	}

	prof := &CatalogProfile{regionByTrack: make(map[string]int)}
	for _, cluster := range result {
		center := emotion.Point{
			Valence:   cluster.Center[0],
			Arousal:   cluster.Center[1],
			Depth:     cluster.Center[2],
			Resonance: cluster.Center[3],
		}

		region := Region{
			Name:   describeRegion(center),
			Center: center,
		}
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				region.TrackIDs = append(region.TrackIDs, to.id)
			}
		}

		idx := len(prof.Regions)
		prof.Regions = append(prof.Regions, region)
		for _, id := range region.TrackIDs {
			prof.regionByTrack[id] = idx
		}
	}

	return prof, nil
}

// RegionOf returns the region index for a track id, or -1 when the
// track was not part of the analyzed catalog.
func (p *CatalogProfile) RegionOf(trackID string) int {
	if idx, ok := p.regionByTrack[trackID]; ok {
		return idx
	}
	return -1
}

// describeRegion names a region from its center's valence and arousal.
func describeRegion(center emotion.Point) string {
	var mood string
	switch {
	case center.Valence > 0.6:
		mood = "bright"
	case center.Valence < 0.4:
		mood = "shadowed"
	default:
		mood = "balanced"
	}

	var energy string
	switch {
	case center.Arousal > 0.7:
		energy = "driving"
	case center.Arousal < 0.4:
		energy = "gentle"
	default:
		energy = "steady"
	}

	return fmt.Sprintf("%s %s", mood, energy)
}
