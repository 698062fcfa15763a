package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/particles"
	"github.com/san-kum/seaweed/internal/scene"
	"github.com/san-kum/seaweed/internal/vecmath"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 2400
	DefaultSeed   = 1
)

// Environment variables that override file values.
const (
	EnvDt    = "SEAWEED_DT"
	EnvSeed  = "SEAWEED_SEED"
	EnvField = "SEAWEED_FIELD"
	EnvFish  = "SEAWEED_FISH"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Dt          float64           `yaml:"dt"`
	Frames      int               `yaml:"frames"`
	Seed        int64             `yaml:"seed"`
	Strict      bool              `yaml:"strict"`
	World       WorldConfig       `yaml:"world"`
	Seaweed     SeaweedConfig     `yaml:"seaweed"`
	Player      PlayerConfig      `yaml:"player"`
	Fish        FishConfig        `yaml:"fish"`
	Bubbles     BubbleConfig      `yaml:"bubbles"`
	Environment EnvironmentConfig `yaml:"environment"`
}

type WorldConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Drag             float64 `yaml:"drag"`
	CollisionDamping float64 `yaml:"collision_damping"`
}

type SeaweedConfig struct {
	Count         int     `yaml:"count"`
	Spacing       float64 `yaml:"spacing"`
	Grid          int     `yaml:"grid"`
	ColumnSpacing float64 `yaml:"column_spacing"`
	RowSpacing    float64 `yaml:"row_spacing"`
	Mass          float64 `yaml:"mass"`
	Timer         float64 `yaml:"timer"`
	Size          float64 `yaml:"size"`
	Stiffness     float64 `yaml:"stiffness"`
	Damping       float64 `yaml:"damping"`
	RestLength    float64 `yaml:"rest_length"`
	Buoyancy      float64 `yaml:"buoyancy"`
}

type PlayerConfig struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

type FishConfig struct {
	Count       int     `yaml:"count"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MinMass     float64 `yaml:"min_mass"`
	MaxMass     float64 `yaml:"max_mass"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	OrbitChance float64 `yaml:"orbit_chance"`
}

type BubbleConfig struct {
	Count    int     `yaml:"count"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	MinLife  float64 `yaml:"min_life"`
	MaxLife  float64 `yaml:"max_life"`
	Mass     float64 `yaml:"mass"`
	Size     float64 `yaml:"size"`
	Buoyancy float64 `yaml:"buoyancy"`
}

// EnvironmentConfig selects the current applied to the seaweed. Period and
// Gain drive the sawtooth; Strength, Scale and Speed drive perlin.
type EnvironmentConfig struct {
	Field    string  `yaml:"field"`
	Period   float64 `yaml:"period"`
	Gain     float64 `yaml:"gain"`
	Strength float64 `yaml:"strength"`
	Scale    float64 `yaml:"scale"`
	Speed    float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	lat := particles.DefaultLatticeParams()
	burst := particles.DefaultBurstParams()
	fish := scene.DefaultOptions().Fish

	return &Config{
		Dt:     scene.DefaultDt,
		Frames: DefaultFrames,
		Seed:   DefaultSeed,
		World: WorldConfig{
			Width:            particles.DefaultWidth,
			Height:           particles.DefaultHeight,
			Drag:             scene.DefaultDrag,
			CollisionDamping: scene.DefaultCollisionDamping,
		},
		Seaweed: SeaweedConfig{
			Count:         scene.DefaultSeaweed,
			Spacing:       scene.DefaultSeaweedSpacing,
			Grid:          lat.GridSize,
			ColumnSpacing: lat.ColumnSpacing,
			RowSpacing:    lat.RowSpacing,
			Mass:          lat.Mass,
			Timer:         lat.Timer,
			Size:          lat.Size,
			Stiffness:     lat.Stiffness,
			Damping:       lat.Damping,
			RestLength:    lat.RestLength,
			Buoyancy:      lat.Buoyancy.Y,
		},
		Player: PlayerConfig{Radius: 40, Mass: 20},
		Fish: FishConfig{
			Count:       fish.Count,
			MinRadius:   fish.MinRadius,
			MaxRadius:   fish.MaxRadius,
			MinMass:     fish.MinMass,
			MaxMass:     fish.MaxMass,
			MinSpeed:    fish.MinSpeed,
			MaxSpeed:    fish.MaxSpeed,
			OrbitChance: fish.OrbitChance,
		},
		Bubbles: BubbleConfig{
			Count:    burst.Count,
			MinSpeed: burst.MinSpeed,
			MaxSpeed: burst.MaxSpeed,
			MinLife:  burst.MinTimer,
			MaxLife:  burst.MaxTimer,
			Mass:     burst.Mass,
			Size:     burst.Size,
			Buoyancy: burst.Buoyancy.Y,
		},
		Environment: EnvironmentConfig{
			Field:    forces.KindSawtooth,
			Period:   4,
			Gain:     0.025,
			Strength: 30,
			Scale:    0.01,
			Speed:    0.5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named) without overriding the process environment. Missing files are not
// an error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from SEAWEED_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvDt); ok {
		dt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDt, err)
		}
		c.Dt = dt
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvField); ok {
		c.Environment.Field = v
	}
	if v, ok := os.LookupEnv(EnvFish); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFish, err)
		}
		c.Fish.Count = n
	}
	return nil
}

func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Dt > 0, "dt must be positive"},
		{c.Frames >= 0, "frames must not be negative"},
		{c.World.Width > 0 && c.World.Height > 0, "world size must be positive"},
		{c.Seaweed.Count >= 0, "seaweed count must not be negative"},
		{c.Seaweed.Grid >= 1, "seaweed grid must be at least 1"},
		{c.Seaweed.Mass > 0, "seaweed mass must be positive"},
		{c.Seaweed.Size > 0, "seaweed size must be positive"},
		{c.Player.Radius > 0 && c.Player.Mass > 0, "player radius and mass must be positive"},
		{c.Fish.Count >= 0, "fish count must not be negative"},
		{c.Bubbles.Count >= 1, "bubble count must be at least 1"},
		{c.Bubbles.Mass > 0 && c.Bubbles.Size > 0, "bubble mass and size must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.what)
		}
	}

	if _, err := forces.New(c.Environment.Field, c.fieldOptions()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) fieldOptions() forces.Options {
	return forces.Options{
		Period:   c.Environment.Period,
		Gain:     c.Environment.Gain,
		Strength: c.Environment.Strength,
		Scale:    c.Environment.Scale,
		Speed:    c.Environment.Speed,
		Seed:     c.Seed,
	}
}

// SceneOptions converts the configuration into scene options.
func (c *Config) SceneOptions(logger *slog.Logger) (scene.Options, error) {
	if err := c.Validate(); err != nil {
		return scene.Options{}, err
	}
	field, err := forces.New(c.Environment.Field, c.fieldOptions())
	if err != nil {
		return scene.Options{}, err
	}

	opts := scene.DefaultOptions()
	opts.Dt = c.Dt
	opts.Bounds = particles.NewBounds(c.World.Width, c.World.Height)
	opts.Drag = c.World.Drag
	opts.CollisionDamping = c.World.CollisionDamping
	opts.Field = field
	opts.Seaweed = c.Seaweed.Count
	opts.SeaweedSpacing = c.Seaweed.Spacing
	opts.Seed = c.Seed
	opts.ValidateState = c.Strict
	opts.Logger = logger

	opts.Lattice.GridSize = c.Seaweed.Grid
	opts.Lattice.ColumnSpacing = c.Seaweed.ColumnSpacing
	opts.Lattice.RowSpacing = c.Seaweed.RowSpacing
	opts.Lattice.Mass = c.Seaweed.Mass
	opts.Lattice.Timer = c.Seaweed.Timer
	opts.Lattice.Size = c.Seaweed.Size
	opts.Lattice.Stiffness = c.Seaweed.Stiffness
	opts.Lattice.Damping = c.Seaweed.Damping
	opts.Lattice.RestLength = c.Seaweed.RestLength
	opts.Lattice.Buoyancy = vecmath.New(0, c.Seaweed.Buoyancy, 0)

	opts.Player.Radius = c.Player.Radius
	opts.Player.Mass = c.Player.Mass

	opts.Fish.Count = c.Fish.Count
	opts.Fish.MinRadius = c.Fish.MinRadius
	opts.Fish.MaxRadius = c.Fish.MaxRadius
	opts.Fish.MinMass = c.Fish.MinMass
	opts.Fish.MaxMass = c.Fish.MaxMass
	opts.Fish.MinSpeed = c.Fish.MinSpeed
	opts.Fish.MaxSpeed = c.Fish.MaxSpeed
	opts.Fish.OrbitChance = c.Fish.OrbitChance

	opts.Bubbles.Count = c.Bubbles.Count
	opts.Bubbles.MinSpeed = c.Bubbles.MinSpeed
	opts.Bubbles.MaxSpeed = c.Bubbles.MaxSpeed
	opts.Bubbles.MinTimer = c.Bubbles.MinLife
	opts.Bubbles.MaxTimer = c.Bubbles.MaxLife
	opts.Bubbles.Mass = c.Bubbles.Mass
	opts.Bubbles.Size = c.Bubbles.Size
	opts.Bubbles.Buoyancy = vecmath.New(0, c.Bubbles.Buoyancy, 0)

	return opts, nil
}
