package calc

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds the shell settings and the parser options it passes on.
//
// Recognized properties:
//
//	prompt           = >
//	exit             = exit
//	parser.strict    = false
//	parser.max_depth = 256
//	log.level        = info
type Config struct {
	Prompt      string
	ExitKeyword string
	Strict      bool
	MaxDepth    int
	LogLevel    string
}

func DefaultConfig() Config {
	return Config{
		Prompt:      "> ",
		ExitKeyword: "exit",
		Strict:      false,
		MaxDepth:    DefaultMaxDepth,
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

func LoadConfig(filename string) (Config, error) {
	p, err := properties.LoadFile(filename, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", filename)
	}
	cfg, err := configFromProperties(p)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", filename)
	}
	return cfg, nil
}

func ParseConfig(text string) (Config, error) {
	p, err := properties.LoadString(text)
	if err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return configFromProperties(p)
}

func configFromProperties(p *properties.Properties) (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Prompt:      p.GetString("prompt", def.Prompt),
		ExitKeyword: p.GetString("exit", def.ExitKeyword),
		Strict:      p.GetBool("parser.strict", def.Strict),
		MaxDepth:    p.GetInt("parser.max_depth", def.MaxDepth),
		LogLevel:    p.GetString("log.level", def.LogLevel),
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if cfg.MaxDepth < 1 {
		return Config{}, errors.Errorf("parser.max_depth must be positive, got %d", cfg.MaxDepth)
	}
	return cfg, nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "log.level %q", c.LogLevel)
	}
	return level, nil
}

func (c Config) ParserOptions() []Option {
	return []Option{
		WithStrict(c.Strict),
		WithMaxDepth(c.MaxDepth),
	}
}
