package config

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no -config flag is given.
const EnvPath = "BLOCKFALL_CONFIG"

// Supplier kinds.
const (
	SupplierBag      = "bag"
	SupplierRandom   = "random"
	SupplierSequence = "sequence"
)

// Config holds all game configuration
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Supplier SupplierConfig `yaml:"supplier"`
}

// BoardConfig holds playfield settings
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Preview int `yaml:"preview"` // upcoming shapes shown
}

// TimingConfig holds the engine delays
type TimingConfig struct {
	Gravity      Duration `yaml:"gravity"`
	MoveRepeat   Duration `yaml:"move_repeat"`
	RotateRepeat Duration `yaml:"rotate_repeat"`
	LockDelay    Duration `yaml:"lock_delay"`
}

// SupplierConfig selects how shapes are chosen
type SupplierConfig struct {
	Kind     string   `yaml:"kind"`
	Seed     uint64   `yaml:"seed"`     // 0 picks a random seed
	Sequence []string `yaml:"sequence"` // shape letters, for kind "sequence"
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	switch cfg.Supplier.Kind {
	case SupplierBag, SupplierRandom:
	case SupplierSequence:
		if len(cfg.Supplier.Sequence) == 0 {
			return nil, fmt.Errorf("supplier kind %q needs a sequence", cfg.Supplier.Kind)
		}
		for _, name := range cfg.Supplier.Sequence {
			if _, err := ParseShape(name); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown supplier kind %q", cfg.Supplier.Kind)
	}

	return &cfg, nil
}

// Resolve picks the config path: the flag value if set, else $BLOCKFALL_CONFIG.
// An empty result means built-in defaults.
func Resolve(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	def := engine.DefaultConfig()

	if c.Board.Rows == 0 {
		c.Board.Rows = def.Rows
	}
	if c.Board.Columns == 0 {
		c.Board.Columns = def.Columns
	}
	if c.Board.Preview == 0 {
		c.Board.Preview = def.Preview
	}
	if c.Timing.Gravity == 0 {
		c.Timing.Gravity = Duration(def.GravityInterval)
	}
	if c.Timing.MoveRepeat == 0 {
		c.Timing.MoveRepeat = Duration(def.MoveRepeat)
	}
	if c.Timing.RotateRepeat == 0 {
		c.Timing.RotateRepeat = Duration(def.RotateRepeat)
	}
	if c.Timing.LockDelay == 0 {
		c.Timing.LockDelay = Duration(def.LockDelay)
	}
	if c.Supplier.Kind == "" {
		c.Supplier.Kind = SupplierBag
	}
	c.Supplier.Kind = strings.ToLower(c.Supplier.Kind)
}

// EngineConfig converts the file settings to an engine.Config. Validation is
// left to engine.New.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Rows:            c.Board.Rows,
		Columns:         c.Board.Columns,
		GravityInterval: time.Duration(c.Timing.Gravity),
		MoveRepeat:      time.Duration(c.Timing.MoveRepeat),
		RotateRepeat:    time.Duration(c.Timing.RotateRepeat),
		LockDelay:       time.Duration(c.Timing.LockDelay),
		Preview:         c.Board.Preview,
	}
}

// NewSupplier builds the configured shape supplier.
func (c *Config) NewSupplier() (engine.Supplier, error) {
	var rng *rand.Rand
	if c.Supplier.Seed != 0 {
		rng = rand.New(rand.NewPCG(c.Supplier.Seed, c.Supplier.Seed))
	}

	switch c.Supplier.Kind {
	case SupplierBag:
		return engine.NewBagSupplier(rng), nil
	case SupplierRandom:
		return engine.NewRandomSupplier(rng), nil
	case SupplierSequence:
		if len(c.Supplier.Sequence) == 0 {
			return nil, fmt.Errorf("supplier kind %q needs a sequence", c.Supplier.Kind)
		}
		shapes := make([]piece.Shape, 0, len(c.Supplier.Sequence))
		for _, name := range c.Supplier.Sequence {
			s, err := ParseShape(name)
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, s)
		}
		return engine.NewSequenceSupplier(shapes...), nil
	default:
		return nil, fmt.Errorf("unknown supplier kind %q", c.Supplier.Kind)
	}
}

// ParseShape maps a shape letter such as "T" or "i" to its piece.Shape.
func ParseShape(name string) (piece.Shape, error) {
	for _, s := range piece.Shapes() {
		if strings.EqualFold(s.String(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}
