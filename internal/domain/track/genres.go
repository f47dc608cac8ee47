package track

import "github.com/emre2821/echodj/internal/domain/emotion"

// genreEmotions maps genre names to their characteristic emotional
// profile, used when a catalog supplies genres but no numeric features.
var genreEmotions = map[string]emotion.Point{
	"ambient":    {Valence: 0.6, Arousal: 0.3, Dominance: 0.4, Depth: 0.8, Resonance: 0.7},
	"classical":  {Valence: 0.5, Arousal: 0.4, Dominance: 0.6, Depth: 0.9, Resonance: 0.8},
	"electronic": {Valence: 0.7, Arousal: 0.8, Dominance: 0.7, Depth: 0.6, Resonance: 0.8},
	"jazz":       {Valence: 0.6, Arousal: 0.5, Dominance: 0.8, Depth: 0.8, Resonance: 0.7},
	"metal":      {Valence: 0.3, Arousal: 0.9, Dominance: 0.8, Depth: 0.7, Resonance: 0.9},
	"pop":        {Valence: 0.8, Arousal: 0.7, Dominance: 0.6, Depth: 0.4, Resonance: 0.8},
	"rock":       {Valence: 0.6, Arousal: 0.8, Dominance: 0.7, Depth: 0.6, Resonance: 0.8},
	"folk":       {Valence: 0.6, Arousal: 0.4, Dominance: 0.5, Depth: 0.7, Resonance: 0.6},
	"blues":      {Valence: 0.3, Arousal: 0.4, Dominance: 0.5, Depth: 0.8, Resonance: 0.7},
	"soul":       {Valence: 0.7, Arousal: 0.6, Dominance: 0.7, Depth: 0.8, Resonance: 0.9},
}

// GenreProfile averages the known-genre profiles for the given genre
// list. The second return value is false when no genre is recognized.
func GenreProfile(genres []string) (emotion.Point, bool) {
	var sum emotion.Point
	matched := 0
	for _, g := range genres {
		p, ok := genreEmotions[g]
		if !ok {
			continue
		}
		sum.Valence += p.Valence
		sum.Arousal += p.Arousal
		sum.Dominance += p.Dominance
		sum.Depth += p.Depth
		sum.Resonance += p.Resonance
		matched++
	}
	if matched == 0 {
		return emotion.Point{}, false
	}
	n := float64(matched)
	return emotion.Point{
		Valence:   sum.Valence / n,
		Arousal:   sum.Arousal / n,
		Dominance: sum.Dominance / n,
		Depth:     sum.Depth / n,
		Resonance: sum.Resonance / n,
	}, true
}
