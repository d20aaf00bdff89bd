package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"go.alis.build/alog"
	"gopkg.in/yaml.v3"

	"github.com/megabites2013/n-cube/cell"
	"github.com/megabites2013/n-cube/stream"
	"github.com/megabites2013/n-cube/template"
)

// Config is the optional YAML file given with --config. Fields left unset
// take their value from DefaultConfig.
//
//	log_level: debug
//	location: America/New_York
//	stream:
//	  no_crc: true
//	  max_payload: 1048576
//	  sequence_check: true
//	template:
//	  closures_file: ./closures.gsp
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Location string         `yaml:"location"`
	Stream   StreamConfig   `yaml:"stream"`
	Template TemplateConfig `yaml:"template"`
}

// StreamConfig controls CR1 framing.
type StreamConfig struct {
	NoCRC         bool `yaml:"no_crc"`
	MaxPayload    int  `yaml:"max_payload"`
	SequenceCheck bool `yaml:"sequence_check"`
}

// TemplateConfig controls template assembly.
type TemplateConfig struct {
	ClosuresFile string `yaml:"closures_file"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warning",
		Location: "UTC",
		Stream: StreamConfig{
			MaxPayload: stream.MaxPayloadSize,
		},
	}
}

// LoadConfig reads path, if not empty, and fills the gaps from DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeConfig(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var logLevels = map[string]alog.LogLevel{
	"debug":    alog.LevelDebug,
	"info":     alog.LevelInfo,
	"notice":   alog.LevelNotice,
	"warning":  alog.LevelWarning,
	"error":    alog.LevelError,
	"critical": alog.LevelCritical,
}

// Level returns the alog level named by LogLevel.
func (c Config) Level() (alog.LogLevel, error) {
	l, ok := logLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return l, nil
}

// Decoder returns a cell decoder that reads dates in Location.
func (c Config) Decoder() (*cell.Decoder, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	return cell.NewDecoder(cell.WithLocation(loc)), nil
}

// ReaderOptions returns the stream reader options for this configuration.
func (c Config) ReaderOptions() []stream.ReaderOption {
	opts := []stream.ReaderOption{
		stream.WithMaxPayload(c.Stream.MaxPayload),
		stream.WithCRCVerification(!c.Stream.NoCRC),
	}
	if c.Stream.SequenceCheck {
		opts = append(opts, stream.WithSequenceCheck())
	}
	return opts
}

// TemplateOptions returns the assembler options for this configuration.
func (c Config) TemplateOptions() ([]template.Option, error) {
	if c.Template.ClosuresFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Template.ClosuresFile)
	if err != nil {
		return nil, fmt.Errorf("read closures: %w", err)
	}
	return []template.Option{template.WithClosures(string(data))}, nil
}
