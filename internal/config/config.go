package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saravenpi/barter/internal/location"
	"github.com/spf13/viper"
)

type Config struct {
	User struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"user"`

	DataDir string `mapstructure:"data_dir"`
	DBPath  string `mapstructure:"db_path"`
	LogFile string `mapstructure:"log_file"`

	Location struct {
		Enabled  bool    `mapstructure:"enabled"`
		Lat      float64 `mapstructure:"lat"`
		Lon      float64 `mapstructure:"lon"`
		City     string  `mapstructure:"city"`
		Region   string  `mapstructure:"region"`
		Country  string  `mapstructure:"country"`
		RadiusKm float64 `mapstructure:"radius_km"`
	} `mapstructure:"location"`

	Toast struct {
		Seconds int `mapstructure:"seconds"`
	} `mapstructure:"toast"`
}

// DefaultDir returns ~/.barter.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".barter")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user.name", "You")
	v.SetDefault("data_dir", DefaultDir())
	v.SetDefault("db_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("location.enabled", false)
	v.SetDefault("location.lat", 0.0)
	v.SetDefault("location.lon", 0.0)
	v.SetDefault("location.city", "")
	v.SetDefault("location.region", "")
	v.SetDefault("location.country", "")
	v.SetDefault("location.radius_km", 50.0)
	v.SetDefault("toast.seconds", 2)
}

// Load reads configuration from path, or from ~/.barter/config.yml when path is empty.
// A missing file is not an error. BARTER_* environment variables (and a local .env)
// override file values, e.g. BARTER_LOCATION_CITY.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to read .env: %v", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("barter")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "barter.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "barter.log")
	}
	if cfg.Toast.Seconds <= 0 {
		cfg.Toast.Seconds = 2
	}

	return &cfg, nil
}

// DirectoryDir is where freelancer YAML files live.
func (c *Config) DirectoryDir() string {
	return filepath.Join(c.DataDir, "freelancers")
}

func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Toast.Seconds) * time.Second
}

// LocationProvider builds the configured location capability.
func (c *Config) LocationProvider() location.StaticProvider {
	return location.StaticProvider{
		Enabled:  c.Location.Enabled,
		Position: location.Coords{Lat: c.Location.Lat, Lon: c.Location.Lon},
		Place: location.Address{
			City:    c.Location.City,
			Region:  c.Location.Region,
			Country: c.Location.Country,
		},
	}
}
