package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Import    ImportConfig    `yaml:"import"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Export    ExportConfig    `yaml:"export"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	// Token, when set, is required as a bearer token on every HTTP request
	// except /health.
	Token string `yaml:"token"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite badger memory"`
	Path   string `yaml:"path" validate:"required_unless=Driver memory"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" validate:"oneof=stdio http"`
}

type ImportConfig struct {
	// Strict rejects imported entries missing an id, block number, width or length.
	Strict bool `yaml:"strict"`
}

type CatalogConfig struct {
	Colors []string  `yaml:"colors" validate:"dive,required"`
	Widths []float64 `yaml:"widths" validate:"dive,gt=0"`
}

type ExportConfig struct {
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
	Prefix    string `yaml:"prefix"`
	PathStyle bool   `yaml:"path_style"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "slabstock.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// An empty path falls back to SLABSTOCK_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SLABSTOCK_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := map[string]*string{
		"SLABSTOCK_SERVER_HOST":        &cfg.Server.Host,
		"SLABSTOCK_SERVER_TOKEN":       &cfg.Server.Token,
		"SLABSTOCK_STORAGE_DRIVER":     &cfg.Storage.Driver,
		"SLABSTOCK_STORAGE_PATH":       &cfg.Storage.Path,
		"SLABSTOCK_LOG_LEVEL":          &cfg.Log.Level,
		"SLABSTOCK_LOG_PATH":           &cfg.Log.Path,
		"SLABSTOCK_TRANSPORT":          &cfg.Transport.Mode,
		"SLABSTOCK_EXPORT_DIR":         &cfg.Export.Dir,
		"SLABSTOCK_EXPORT_S3_BUCKET":   &cfg.Export.S3.Bucket,
		"SLABSTOCK_EXPORT_S3_REGION":   &cfg.Export.S3.Region,
		"SLABSTOCK_EXPORT_S3_ENDPOINT": &cfg.Export.S3.Endpoint,
		"SLABSTOCK_EXPORT_S3_PREFIX":   &cfg.Export.S3.Prefix,
	}
	for key, dst := range setString {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if portStr := os.Getenv("SLABSTOCK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SLABSTOCK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	setBool := map[string]*bool{
		"SLABSTOCK_IMPORT_STRICT":        &cfg.Import.Strict,
		"SLABSTOCK_METRICS_ENABLED":      &cfg.Metrics.Enabled,
		"SLABSTOCK_EXPORT_S3_PATH_STYLE": &cfg.Export.S3.PathStyle,
	}
	for key, dst := range setBool {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
	}

	if colors := os.Getenv("SLABSTOCK_CATALOG_COLORS"); colors != "" {
		cfg.Catalog.Colors = splitList(colors)
	}
	if widths := os.Getenv("SLABSTOCK_CATALOG_WIDTHS"); widths != "" {
		cfg.Catalog.Widths = nil
		for _, w := range splitList(widths) {
			v, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return fmt.Errorf("invalid SLABSTOCK_CATALOG_WIDTHS: %w", err)
			}
			cfg.Catalog.Widths = append(cfg.Catalog.Widths, v)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks field constraints.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
