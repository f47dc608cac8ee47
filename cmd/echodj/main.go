// Package main provides the echodj command line entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/emre2821/echodj/internal/app/engine"
	"github.com/emre2821/echodj/internal/app/router"
	"github.com/emre2821/echodj/internal/app/store"
	"github.com/emre2821/echodj/internal/domain/playlist"
	"github.com/emre2821/echodj/internal/infra/catalog"
	"github.com/emre2821/echodj/internal/infra/config"
	"github.com/emre2821/echodj/internal/infra/logger"
)

var (
	app        = kingpin.New("echodj", "emotional journey playlist sequencer")
	configPath = app.Flag("config", "Path to config file").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()

	generateCmd = app.Command("generate", "Generate a playlist from a catalog").Default()
	catalogPath = generateCmd.Flag("catalog", "Path to catalog YAML").String()
	requestText = generateCmd.Flag("text", "Free-form playlist request").String()
	duration    = generateCmd.Flag("duration", "Playlist duration in minutes").Default("0").Float64()
	valence     = generateCmd.Flag("valence", "Current valence (-1 to 1)").Default("0.5").Float64()
	arousal     = generateCmd.Flag("arousal", "Current arousal (0 to 1)").Default("0.5").Float64()
	dominance   = generateCmd.Flag("dominance", "Current dominance (0 to 1)").Default("0.5").Float64()
	depth       = generateCmd.Flag("depth", "Current depth (0 to 1)").Default("0.5").Float64()
	resonance   = generateCmd.Flag("resonance", "Current resonance (0 to 1)").Default("0.7").Float64()
	journey     = generateCmd.Flag("journey", "Journey type (energizing, calming, exploratory, default)").String()
	arc         = generateCmd.Flag("arc", "Preferred emotional arc").String()
	transition  = generateCmd.Flag("transition", "Preferred transition style").String()
	complexity  = generateCmd.Flag("complexity", "Number of interior waypoints").Default("3").Int()

	listArchetypesCmd = app.Command("list-archetypes", "List playlist archetypes and their keyword triggers")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listArchetypesCmd.FullCommand() {
		printArchetypes()
		return
	}

	cfg := loadConfig()

	loggerConfig := cfg.Logging
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	if err := runGenerate(cfg); err != nil {
		zlog.Error().Msgf("generate failed: %v", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	if *configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	return cfg
}

func runGenerate(cfg *config.Config) error {
	path := *catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		return fmt.Errorf("no catalog given: use --catalog or set catalog.path in config")
	}

	tracks, err := catalog.Load(path)
	if err != nil {
		return err
	}
	zlog.Info().Msgf("catalog loaded: path=%s tracks=%d", path, len(tracks))

	evaluator, err := cfg.Evaluator()
	if err != nil {
		return err
	}

	eng := engine.New(router.New(evaluator), evaluator, store.NewMemory(), cfg.Engine)

	preferences := map[string]any{
		"complexity": *complexity,
	}
	if *journey != "" {
		preferences["journey_type"] = *journey
	}
	if *arc != "" {
		preferences["emotional_arc"] = *arc
	}
	if *transition != "" {
		preferences["transition_style"] = *transition
	}

	userEmotion := map[string]float64{
		"valence":   *valence,
		"arousal":   *arousal,
		"dominance": *dominance,
		"depth":     *depth,
		"resonance": *resonance,
	}

	p := eng.Generate(context.Background(), engine.Request{
		Text:            *requestText,
		DurationMinutes: *duration,
	}, userEmotion, tracks, preferences)

	return printPlaylist(p)
}

// printable mirrors the playlist for YAML output.
type printable struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Type        string           `yaml:"type"`
	Arc         string           `yaml:"arc"`
	Transition  string           `yaml:"transition"`
	Impact      float64          `yaml:"estimated_impact"`
	Duration    string           `yaml:"total_duration"`
	Tracks      []printableTrack `yaml:"tracks"`
}

type printableTrack struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Artist     string `yaml:"artist"`
	Duration   string `yaml:"duration"`
	Transition string `yaml:"transition,omitempty"`
}

func printPlaylist(p *playlist.DynamicPlaylist) error {
	out := printable{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Arc:         string(p.Route.Arc),
		Transition:  string(p.Route.Transition),
		Impact:      p.Route.EstimatedImpact,
		Duration:    p.TotalDuration().String(),
	}
	for _, t := range p.Tracks {
		out.Tracks = append(out.Tracks, printableTrack{
			ID:         t.ID,
			Title:      t.Title,
			Artist:     t.Artist,
			Duration:   t.Duration.String(),
			Transition: t.TransitionNotes,
		})
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printArchetypes() {
	fmt.Println("Playlist archetypes:")
	fmt.Println()
	for _, rule := range engine.ArchetypeRules() {
		fmt.Printf("  %-22s triggers: %s\n", rule.Type, strings.Join(rule.Keywords, ", "))
	}
	fmt.Println()
	fmt.Println("Requests with no keyword match are classified from the current emotional state.")
}
