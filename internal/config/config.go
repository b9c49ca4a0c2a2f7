// Package config loads tilegen settings through viper: defaults, an optional
// YAML file, TILEGEN_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/tiles"
)

// EnvPrefix is prepended to every environment override, e.g.
// TILEGEN_GENERATE_MODE.
const EnvPrefix = "TILEGEN"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Sink kinds.
const (
	SinkLog      = "log"
	SinkManifest = "manifest"
	SinkBpy      = "bpy"
	SinkNone     = "none"
)

// Config is the full tool configuration.
type Config struct {
	Generate Generate `mapstructure:"generate"`
	Scene    Scene    `mapstructure:"scene"`
	Store    Store    `mapstructure:"store"`
	Server   Server   `mapstructure:"server"`
	Log      Log      `mapstructure:"log"`
}

// Generate controls what gets produced.
type Generate struct {
	Mode              string        `mapstructure:"mode"`
	Count             int           `mapstructure:"count"`
	Seed              string        `mapstructure:"seed"`
	TileType          string        `mapstructure:"tile_type"`
	Params            params.Ranges `mapstructure:"params"`
	Precision         int           `mapstructure:"precision"`
	Extension         string        `mapstructure:"extension"`
	OutputDir         string        `mapstructure:"output_dir"`
	Filter            string        `mapstructure:"filter"`
	DistinctRotations bool          `mapstructure:"distinct_rotations"`
	Tileset           string        `mapstructure:"tileset"`
}

// Scene says how tiles reach the 3D tool.
type Scene struct {
	Sink     string         `mapstructure:"sink"`
	Object   string         `mapstructure:"object"`
	ID       params.Binding `mapstructure:"id"`
	Template string         `mapstructure:"template"`
	Script   string         `mapstructure:"script"`
}

// Store locates the run history database. Empty Path disables history.
type Store struct {
	Path string `mapstructure:"path"`
}

// Server configures `tilegen serve`.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.mode", string(tiles.ModeSampled))
	v.SetDefault("generate.count", tiles.DefaultCount)
	v.SetDefault("generate.seed", "")
	v.SetDefault("generate.tile_type", "hex")
	v.SetDefault("generate.precision", tiles.DefaultPrecision)
	v.SetDefault("generate.extension", tiles.DefaultExtension)
	v.SetDefault("generate.output_dir", "tiles")
	v.SetDefault("generate.filter", "")
	v.SetDefault("generate.distinct_rotations", false)
	v.SetDefault("generate.tileset", "")

	v.SetDefault("scene.sink", SinkLog)
	v.SetDefault("scene.object", "Plane")
	v.SetDefault("scene.id.modifier", "GeometryNodes")
	v.SetDefault("scene.id.socket", "Types")
	v.SetDefault("scene.template", "")
	v.SetDefault("scene.script", "generate_tiles.py")

	v.SetDefault("store.path", "")
	v.SetDefault("server.addr", "127.0.0.1:8077")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Setup applies defaults and environment handling to v and, when file is
// non-empty, reads it.
func Setup(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", file, err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	if _, err := tiles.ParseMode(c.Generate.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Generate.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfig, c.Generate.Count)
	}
	if c.Generate.Precision < 0 {
		return fmt.Errorf("%w: precision must be >= 0, got %d", ErrInvalidConfig, c.Generate.Precision)
	}
	if c.Generate.TileType == "" {
		return fmt.Errorf("%w: tile_type is required", ErrInvalidConfig)
	}
	if _, err := c.Ranges(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Scene.Sink {
	case SinkLog, SinkManifest, SinkBpy, SinkNone:
	default:
		return fmt.Errorf("%w: unknown sink %q", ErrInvalidConfig, c.Scene.Sink)
	}
	if c.Scene.Sink == SinkBpy && c.Scene.Script == "" {
		return fmt.Errorf("%w: bpy sink needs scene.script", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Ranges returns the explicit params list when one is configured and the
// tile type's preset otherwise.
func (c *Config) Ranges() (params.Ranges, error) {
	if len(c.Generate.Params) > 0 {
		rs := make(params.Ranges, len(c.Generate.Params))
		copy(rs, c.Generate.Params)
		return rs, rs.Validate()
	}
	return params.Preset(c.Generate.TileType)
}

// Mode returns the parsed generation mode.
func (c *Config) Mode() tiles.Mode {
	return tiles.Mode(c.Generate.Mode)
}
