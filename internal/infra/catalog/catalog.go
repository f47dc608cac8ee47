// Package catalog loads candidate tracks from YAML files.
package catalog

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/emre2821/echodj/internal/domain/track"
)

// fileCatalog is the on-disk catalog shape.
type fileCatalog struct {
	Tracks []fileTrack `yaml:"tracks"`
}

type fileTrack struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Artist      string         `yaml:"artist"`
	DurationSec int            `yaml:"duration_sec"`
	Genres      []string       `yaml:"genres"`
	Features    map[string]any `yaml:"features"`
}

// Load reads a candidate track catalog from a YAML file. Tracks missing
// an id or title are rejected; unreadable feature values are dropped
// with a warning rather than failing the whole catalog.
func Load(path string) ([]track.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog file")
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog file")
	}

	tracks := make([]track.Track, 0, len(fc.Tracks))
	for i, ft := range fc.Tracks {
		if ft.ID == "" {
			return nil, errors.Newf("track %d: missing id", i)
		}
		if ft.Title == "" {
			return nil, errors.Newf("track %q: missing title", ft.ID)
		}
		if ft.DurationSec <= 0 {
			return nil, errors.Newf("track %q: invalid duration %d", ft.ID, ft.DurationSec)
		}

		features, err := decodeFeatures(ft.Features)
		if err != nil {
			zlog.Warn().Msgf("track %q: dropping unreadable features: %v", ft.ID, err)
			features = nil
		}

		tracks = append(tracks, track.Track{
			ID:       ft.ID,
			Title:    ft.Title,
			Artist:   ft.Artist,
			Duration: time.Duration(ft.DurationSec) * time.Second,
			Genres:   ft.Genres,
			Features: features,
		})
	}

	return tracks, nil
}

// decodeFeatures converts a loosely typed feature mapping to floats.
func decodeFeatures(raw map[string]any) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var features map[string]float64
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &features,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode features")
	}
	return features, nil
}
