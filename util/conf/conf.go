package conf

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEpochs = 10
	DefaultAlpha  = 1.0
	DefaultClip   = 8
)

// Config holds the training and parsing settings of a run.
type Config struct {
	Epochs  int     `yaml:"epochs"`
	Seed    int64   `yaml:"seed"`
	Alpha   float64 `yaml:"alpha"`
	Clip    int     `yaml:"clip"`
	Labeled bool    `yaml:"labeled"`
	Workers int     `yaml:"workers"`
}

func Read(reader io.Reader) (*Config, error) {
	conf := &Config{}
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return conf, nil
}

func ReadFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// ApplyDefaults fills every unset (zero or negative) value.
func (c *Config) ApplyDefaults() {
	if c.Epochs <= 0 {
		c.Epochs = DefaultEpochs
		log.Warn().Int("epochs", c.Epochs).Msg("epochs not specified, using default")
	}
	if c.Alpha <= 0 {
		c.Alpha = DefaultAlpha
		log.Warn().Float64("alpha", c.Alpha).Msg("alpha not specified, using default")
	}
	if c.Clip <= 0 {
		c.Clip = DefaultClip
		log.Warn().Int("clip", c.Clip).Msg("clip not specified, using default")
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
		log.Warn().Int("workers", c.Workers).Msg("workers not specified, using number of CPUs")
	}
}
