package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds the application settings. Scenario data is not part of it.
type Settings struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SimulationConfig holds Monte Carlo defaults that command-line flags can override.
type SimulationConfig struct {
	Iterations       int   `yaml:"iterations" mapstructure:"iterations"`
	Workers          int   `yaml:"workers" mapstructure:"workers"`
	ProgressInterval int   `yaml:"progress_interval" mapstructure:"progress_interval"`
	Seed             int64 `yaml:"seed" mapstructure:"seed"`
}

// LoadSettings reads settings from file and environment.
// With an empty configFile it looks for an optional rpgo.yaml in the working directory.
// Environment variables use the RPGO_ prefix, e.g. RPGO_LOG_LEVEL or RPGO_SIMULATION_WORKERS.
func LoadSettings(configFile string) (*Settings, error) {
	v := viper.New()

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("rpgo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("RPGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("simulation.iterations", 10000)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.progress_interval", 1000)
	v.SetDefault("simulation.seed", 0)

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &settings, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	// Reports go to stdout; keep logs off it.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
