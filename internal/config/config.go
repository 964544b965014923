package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	commonerrors "github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/osutil"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files and directories
	AppName = "shortcuts-doc"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "SHORTCUTS_DOC"
)

// AppConfig holds the application configuration
type AppConfig struct {
	// Core settings
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	Database struct {
		File              string `mapstructure:"file"`
		BackupDir         string `mapstructure:"backup_dir"`
		BackupCount       int    `mapstructure:"backup_count"`
		BackupCompression string `mapstructure:"backup_compression"` // none, gzip, bzip2, xz
	} `mapstructure:"database"`

	Output struct {
		Dir           string   `mapstructure:"dir"`
		Formats       []string `mapstructure:"formats"`
		DefaultFormat string   `mapstructure:"default_format"`
		TemplatesDir  string   `mapstructure:"templates_dir"`
	} `mapstructure:"output"`

	Visualization struct {
		Enabled bool   `mapstructure:"enabled"`
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"visualization"`

	Analysis struct {
		MinPatternFrequency int `mapstructure:"min_pattern_frequency"`
		MinSequenceLength   int `mapstructure:"min_sequence_length"`
		MaxSequenceLength   int `mapstructure:"max_sequence_length"`
		MaxPatternLength    int `mapstructure:"max_pattern_length"`
		TopSequences        int `mapstructure:"top_sequences"`
	} `mapstructure:"analysis"`

	Ingest struct {
		Recursive  bool     `mapstructure:"recursive"`
		Extensions []string `mapstructure:"extensions"`
	} `mapstructure:"ingest"`

	// ConfigFile is the file the configuration was read from, if any
	ConfigFile string `mapstructure:"-"`
}

// Load reads configuration from cfgFile (or the standard search paths when
// empty), the SHORTCUTS_DOC_* environment and built-in defaults.
func Load(cfgFile string) (*AppConfig, error) {
	return LoadWith(viper.New(), cfgFile)
}

// LoadWith is Load on a caller-supplied viper instance, so CLI flags bound to
// it take part in the lookup.
func LoadWith(v *viper.Viper, cfgFile string) (*AppConfig, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		addSearchPaths(v)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &AppConfig{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", commonerrors.ErrConfigParseError, err)
		}
	} else {
		cfg.ConfigFile = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", commonerrors.ErrConfigParseError, err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("%w: %v", commonerrors.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading files or env
func Default() *AppConfig {
	v := viper.New()
	setDefaults(v)
	cfg := &AppConfig{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate checks values that would otherwise fail deep inside a component
func (c *AppConfig) Validate() error {
	if c.Database.File == "" {
		return fmt.Errorf("%w: database.file must be set", commonerrors.ErrConfigInvalid)
	}
	if c.Database.BackupCount < 0 {
		return fmt.Errorf("%w: database.backup_count must not be negative", commonerrors.ErrConfigInvalid)
	}
	if c.Analysis.MinSequenceLength < 2 || c.Analysis.MaxSequenceLength < c.Analysis.MinSequenceLength {
		return fmt.Errorf("%w: analysis sequence lengths must satisfy 2 <= min <= max", commonerrors.ErrConfigInvalid)
	}
	if c.Analysis.MaxPatternLength < 2 {
		return fmt.Errorf("%w: analysis.max_pattern_length must be at least 2", commonerrors.ErrConfigInvalid)
	}
	switch c.LogFormat {
	case "json", "human":
	default:
		return fmt.Errorf("%w: log_format must be json or human", commonerrors.ErrConfigInvalid)
	}
	return nil
}

// expandPaths resolves a leading ~ in every path setting
func (c *AppConfig) expandPaths() error {
	for _, p := range []*string{
		&c.LogFile,
		&c.Database.File,
		&c.Database.BackupDir,
		&c.Output.Dir,
		&c.Output.TemplatesDir,
		&c.Visualization.Dir,
	} {
		expanded, err := fsutil.ExpandTilde(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")

	dataDir, err := fsutil.GetDataDir(AppName)
	if err != nil {
		dataDir = "."
	}
	v.SetDefault("database.file", filepath.Join(dataDir, "shortcuts_db.json"))
	v.SetDefault("database.backup_dir", filepath.Join(dataDir, "backups"))
	v.SetDefault("database.backup_count", 5)
	v.SetDefault("database.backup_compression", "none")

	v.SetDefault("output.dir", "documentation")
	v.SetDefault("output.formats", []string{"markdown", "html", "json"})
	v.SetDefault("output.default_format", "markdown")
	v.SetDefault("output.templates_dir", "templates")

	v.SetDefault("visualization.enabled", true)
	v.SetDefault("visualization.dir", "visualizations")

	v.SetDefault("analysis.min_pattern_frequency", 2)
	v.SetDefault("analysis.min_sequence_length", 2)
	v.SetDefault("analysis.max_sequence_length", 5)
	v.SetDefault("analysis.max_pattern_length", 5)
	v.SetDefault("analysis.top_sequences", 10)

	v.SetDefault("ingest.recursive", false)
	v.SetDefault("ingest.extensions", []string{".json", ".plist", ".shortcut"})
}

// addSearchPaths adds config search paths
func addSearchPaths(v *viper.Viper) {
	// Always check current directory first
	v.AddConfigPath(".")

	if osutil.IsRunningInPipeline() {
		v.AddConfigPath("/etc/" + AppName)
		return
	}

	if configDir, err := fsutil.GetConfigDir(AppName); err == nil {
		v.AddConfigPath(configDir)
	}

	if systemConfigDir, err := fsutil.GetSystemConfigDir(AppName); err == nil {
		v.AddConfigPath(systemConfigDir)
	}
}
