package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-pagesync/pkg/orchestrator"
	"github.com/goliatone/go-pagesync/pkg/sections"
)

const (
	envPrefix         = "PAGESYNC"
	defaultConfigName = "pagesync"
)

// Config mirrors pagesync.yaml.
type Config struct {
	DataDir       string                 `mapstructure:"data_dir"`
	PagesDir      string                 `mapstructure:"pages_dir"`
	TemplatesDir  string                 `mapstructure:"templates_dir"`
	EndIndent     string                 `mapstructure:"end_indent"`
	StrictMarkers bool                   `mapstructure:"strict_markers"`
	Sanitize      bool                   `mapstructure:"sanitize"`
	HTTPTimeout   time.Duration          `mapstructure:"http_timeout"`
	Log           LogConfig              `mapstructure:"log"`
	Bindings      []orchestrator.Binding `mapstructure:"bindings"`
}

// LogConfig selects the go-logger level and output format. Focus limits
// output to the named module loggers.
type LogConfig struct {
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", orchestrator.DefaultDataDir)
	v.SetDefault("pages_dir", orchestrator.DefaultPagesDir)
	v.SetDefault("templates_dir", "")
	v.SetDefault("end_indent", sections.DefaultIndent)
	v.SetDefault("strict_markers", false)
	v.SetDefault("sanitize", false)
	v.SetDefault("http_timeout", 10*time.Second)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.add_source", false)
	v.SetDefault("log.focus", []string{})
}

// loadConfig reads the optional config file, PAGESYNC_* variables and bound
// flags. An explicit config path that does not exist is an error.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (Config, string, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"data_dir":  "data-dir",
			"pages_dir": "pages-dir",
			"log.level": "log-level",
		} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, "", fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Config{}, "", fmt.Errorf("config: read %s: %w", describe(cfgFile), err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("config: decode: %w", err)
	}
	return cfg, used, nil
}

func describe(cfgFile string) string {
	if cfgFile == "" {
		return defaultConfigName + ".yaml"
	}
	return cfgFile
}

// bindingFor returns the first binding rendered by kind.
func (c Config) bindingFor(kind string) (orchestrator.Binding, bool) {
	bindings := c.Bindings
	if len(bindings) == 0 {
		bindings = orchestrator.DefaultBindings()
	}
	for _, b := range bindings {
		if b.Renderer == kind {
			return b.Resolve(c.DataDir, c.PagesDir), true
		}
	}
	return orchestrator.Binding{}, false
}
