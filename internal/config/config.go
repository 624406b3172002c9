// Package config provides configuration loading and validation for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid         GridConfig         `yaml:"grid"`
	Scenario     ScenarioConfig     `yaml:"scenario"`
	Extensions   ExtensionsConfig   `yaml:"extensions"`
	Metabolism   MetabolismConfig   `yaml:"metabolism"`
	Thresholds   ThresholdConfig    `yaml:"thresholds"`
	Pathfinding  PathfindingConfig  `yaml:"pathfinding"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Corpse       CorpseConfig       `yaml:"corpse"`
	Run          RunConfig          `yaml:"run"`
	Output       OutputConfig       `yaml:"output"`
	API          APIConfig          `yaml:"api"`
}

// GridConfig holds the spatial parameters of the world.
type GridConfig struct {
	Size          int     `yaml:"size"`           // Grid is Size×Size cells
	WaterFraction float64 `yaml:"water_fraction"` // Fraction of cells seeded as water
	PlantFraction float64 `yaml:"plant_fraction"` // Fraction of cells seeded as plants
	PlantRegrowth float64 `yaml:"plant_regrowth"` // Per-turn chance a new plant sprouts
}

// ScenarioConfig selects the initial population mix. A named preset fills
// in the percentages; explicit percentages override the preset.
type ScenarioConfig struct {
	Preset           string  `yaml:"preset"` // "balanced", "predator_heavy", "prey_heavy", or "" for explicit
	PredatorPercent  float64 `yaml:"predator_percent"`
	PreyPercent      float64 `yaml:"prey_percent"`
	ScavengerPercent float64 `yaml:"scavenger_percent"`
}

// ExtensionsConfig toggles optional simulation features.
type ExtensionsConfig struct {
	ThirdSpecies bool `yaml:"third_species"` // Enable the scavenger species
	Mutations    bool `yaml:"mutations"`     // Enable the mutation system
}

// MetabolismConfig holds per-turn physiological rates.
type MetabolismConfig struct {
	HungerRate        int `yaml:"hunger_rate"`         // Hunger added per turn (pre-mutation)
	ThirstRate        int `yaml:"thirst_rate"`         // Thirst added per turn (pre-mutation)
	InitialEnergy     int `yaml:"initial_energy"`      // Energy at creation
	MaxEnergy         int `yaml:"max_energy"`          // Energy cap
	StarvationTurns   int `yaml:"starvation_turns"`    // Turns at max hunger before death
	PlantNutrition    int `yaml:"plant_nutrition"`     // Energy gained eating a plant cell
	PreyNutrition     int `yaml:"prey_nutrition"`      // Energy a predator gains from a kill
	DrinkThirstRelief int `yaml:"drink_thirst_relief"` // Thirst removed per drink
	EatHungerRelief   int `yaml:"eat_hunger_relief"`   // Hunger removed per meal
}

// ThresholdConfig holds the hunger/thirst levels that drive the priority
// policy chain. Levels run 0 (sated) to 100 (maximal need).
type ThresholdConfig struct {
	Critical      int `yaml:"critical"`      // P1/P2 trigger
	Scavenge      int `yaml:"scavenge"`      // Scavenger corpse-seeking trigger
	Opportunistic int `yaml:"opportunistic"` // P4 trigger
}

// PathfindingConfig holds the per-role search radii, in cells
// (Chebyshev distance from the searcher).
type PathfindingConfig struct {
	PredatorRadius  int `yaml:"predator_radius"`
	PreyRadius      int `yaml:"prey_radius"`      // Also the predator-detection radius for fleeing
	ScavengerRadius int `yaml:"scavenger_radius"`
	ResourceRadius  int `yaml:"resource_radius"`  // Water/plant search radius for everyone
	MovementRange   int `yaml:"movement_range"`   // Cells moved per turn; the engine requires 1
}

// ReproductionConfig holds mating eligibility parameters.
type ReproductionConfig struct {
	MaturityAge   int `yaml:"maturity_age"`   // Turns alive before a creature can mate
	CooldownTurns int `yaml:"cooldown_turns"` // Post-mating delay
	MinEnergy     int `yaml:"min_energy"`     // Minimum energy for both partners
}

// MutationConfig holds the two mutation-assignment probabilities.
type MutationConfig struct {
	InitialChance float64 `yaml:"initial_chance"`  // Applied once at scenario setup
	PerTurnChance float64 `yaml:"per_turn_chance"` // Applied to offspring and eligible creatures
}

// CorpseConfig holds corpse decay and nutrition parameters.
type CorpseConfig struct {
	DecayTurns         int `yaml:"decay_turns"`
	PredatorNutrition  int `yaml:"predator_nutrition"`
	PreyNutrition      int `yaml:"prey_nutrition"`
	ScavengerNutrition int `yaml:"scavenger_nutrition"`
}

// RunConfig holds run-level controls.
type RunConfig struct {
	TurnCap    int    `yaml:"turn_cap"`
	Seed       int64  `yaml:"seed"`
	IntervalMS int    `yaml:"interval_ms"` // Pacing between turns; 0 = as fast as possible
	DBPath     string `yaml:"db_path"`
}

// OutputConfig controls per-run report output.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = report output disabled
}

// APIConfig controls the HTTP observation server.
type APIConfig struct {
	Port     int    `yaml:"port"` // 0 = API disabled
	AdminKey string `yaml:"admin_key"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.applyPreset()
	return &cfg, nil
}

// Load reads configuration from a YAML file layered over the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyPreset()
	return cfg, nil
}

// Presets maps scenario names to population percentages
// (predator, prey, scavenger).
var presets = map[string][3]float64{
	"balanced":       {0.10, 0.25, 0.05},
	"predator_heavy": {0.20, 0.20, 0.05},
	"prey_heavy":     {0.05, 0.35, 0.05},
}

// applyPreset fills in the scenario percentages from a named preset.
// Explicit non-zero percentages win over the preset.
func (c *Config) applyPreset() {
	p, ok := presets[c.Scenario.Preset]
	if !ok {
		return
	}
	if c.Scenario.PredatorPercent == 0 {
		c.Scenario.PredatorPercent = p[0]
	}
	if c.Scenario.PreyPercent == 0 {
		c.Scenario.PreyPercent = p[1]
	}
	if c.Scenario.ScavengerPercent == 0 {
		c.Scenario.ScavengerPercent = p[2]
	}
}

// Validate checks the configuration invariants. It is called once at
// engine initialization; a non-nil error is fatal to the run.
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("grid size must be positive, got %d", c.Grid.Size)
	}
	if c.Scenario.Preset != "" {
		if _, ok := presets[c.Scenario.Preset]; !ok {
			return fmt.Errorf("unknown scenario preset %q", c.Scenario.Preset)
		}
	}
	total := c.Scenario.PredatorPercent + c.Scenario.PreyPercent
	if c.Extensions.ThirdSpecies {
		total += c.Scenario.ScavengerPercent
	}
	if total >= 1.0 {
		return fmt.Errorf("population percentages sum to %.2f, must be < 1.0", total)
	}
	if c.Scenario.PredatorPercent < 0 || c.Scenario.PreyPercent < 0 || c.Scenario.ScavengerPercent < 0 {
		return fmt.Errorf("population percentages must be non-negative")
	}
	if c.Run.TurnCap <= 0 {
		return fmt.Errorf("turn cap must be positive, got %d", c.Run.TurnCap)
	}
	if c.Pathfinding.MovementRange != 1 {
		return fmt.Errorf("movement range is fixed at 1 cell, got %d", c.Pathfinding.MovementRange)
	}
	if c.Grid.WaterFraction < 0 || c.Grid.PlantFraction < 0 ||
		c.Grid.WaterFraction+c.Grid.PlantFraction >= 1.0 {
		return fmt.Errorf("resource fractions must be non-negative and sum below 1.0")
	}
	if c.Grid.PlantRegrowth < 0 || c.Grid.PlantRegrowth > 1 {
		return fmt.Errorf("plant regrowth chance must be in [0, 1]")
	}
	if c.Mutation.InitialChance < 0 || c.Mutation.InitialChance > 1 ||
		c.Mutation.PerTurnChance < 0 || c.Mutation.PerTurnChance > 1 {
		return fmt.Errorf("mutation chances must be in [0, 1]")
	}
	if c.Corpse.DecayTurns <= 0 {
		return fmt.Errorf("corpse decay turns must be positive, got %d", c.Corpse.DecayTurns)
	}
	return nil
}

// WriteYAML saves the configuration to a file, as a record of the run.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
