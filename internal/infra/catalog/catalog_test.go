package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
tracks:
  - id: t1
    title: First Light
    artist: Dawn Chorus
    duration_sec: 215
    genres: [ambient, electronic]
    features:
      valence: 0.7
      energy: 0.4
      popularity: 0.6
  - id: t2
    title: Night Drive
    artist: Midnight Motor
    duration_sec: 180
    genres: [electronic]
`)

	tracks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "t1", tracks[0].ID)
	assert.Equal(t, "First Light", tracks[0].Title)
	assert.Equal(t, "Dawn Chorus", tracks[0].Artist)
	assert.Equal(t, 215*time.Second, tracks[0].Duration)
	assert.Equal(t, []string{"ambient", "electronic"}, tracks[0].Genres)
	assert.Equal(t, 0.7, tracks[0].Features["valence"])

	// A genre-only track keeps nil features and relies on the genre map.
	assert.Nil(t, tracks[1].Features)
	profile := tracks[1].EmotionalProfile()
	assert.Greater(t, profile.Arousal, 0.5, "electronic leans energetic")
}

func TestLoad_WeaklyTypedFeatures(t *testing.T) {
	path := writeCatalog(t, `
tracks:
  - id: t1
    title: Mixed Types
    duration_sec: 200
    features:
      valence: "0.8"
      energy: 1
`)

	tracks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 0.8, tracks[0].Features["valence"])
	assert.Equal(t, 1.0, tracks[0].Features["energy"])
}

func TestLoad_UnreadableFeaturesDropped(t *testing.T) {
	path := writeCatalog(t, `
tracks:
  - id: t1
    title: Broken Features
    duration_sec: 200
    features:
      valence: [not, a, number]
`)

	tracks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Nil(t, tracks[0].Features, "unreadable features drop, track survives")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Missing id",
			content: "tracks:\n  - title: No ID\n    duration_sec: 100\n",
		},
		{
			name:    "Missing title",
			content: "tracks:\n  - id: t1\n    duration_sec: 100\n",
		},
		{
			name:    "Zero duration",
			content: "tracks:\n  - id: t1\n    title: Zero\n    duration_sec: 0\n",
		},
		{
			name:    "Negative duration",
			content: "tracks:\n  - id: t1\n    title: Negative\n    duration_sec: -30\n",
		},
		{
			name:    "Malformed yaml",
			content: "tracks: [unclosed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyCatalog(t *testing.T) {
	tracks, err := Load(writeCatalog(t, "tracks: []\n"))
	require.NoError(t, err)
	assert.Empty(t, tracks)
}
