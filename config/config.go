// Package config loads service settings from defaults, an optional JSON
// file and DECKGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DECKGEN_UPLOADS_DIR.
const EnvPrefix = "DECKGEN"

// Config structure
type Config struct {
	UploadsDir       string `json:"uploadsDir" mapstructure:"uploads_dir"`
	LogDir           string `json:"logDir" mapstructure:"log_dir"`     // empty logs to stderr
	LogLevel         string `json:"logLevel" mapstructure:"log_level"` // logrus level name
	Author           string `json:"author" mapstructure:"author"`
	Company          string `json:"company" mapstructure:"company"`
	MaxTemplateBytes int64  `json:"maxTemplateBytes" mapstructure:"max_template_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		UploadsDir:       "./uploads",
		LogLevel:         "info",
		Author:           "Auto PPT Generator",
		MaxTemplateBytes: 100 << 20,
	}
}

// ImagesDir is where extracted template media is stored.
func (c Config) ImagesDir() string {
	return filepath.Join(c.UploadsDir, "extracted_images")
}

// Load reads configuration. path may be empty; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("uploads_dir", def.UploadsDir)
	v.SetDefault("log_dir", def.LogDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("author", def.Author)
	v.SetDefault("company", def.Company)
	v.SetDefault("max_template_bytes", def.MaxTemplateBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.UploadsDir) == "" {
		return errors.New("uploads_dir must not be empty")
	}
	if c.MaxTemplateBytes <= 0 {
		return fmt.Errorf("max_template_bytes must be positive, got %d", c.MaxTemplateBytes)
	}
	return nil
}

// viper reports an explicitly named but absent file as a plain fs error.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
