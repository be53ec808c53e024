package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	defaultCPURoot      = "/sys/devices/system/cpu"
	defaultLEDRoot      = "/sys/class/leds"
	defaultGraphicsRoot = "/sys/class/graphics"
)

// Governor names are single lowercase tokens; the kernel never puts anything
// else in scaling_available_governors.
var governorRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)

type Config struct {
	CPURoot         string `yaml:"cpu_root"`
	LEDRoot         string `yaml:"led_root"`
	GraphicsRoot    string `yaml:"graphics_root"`
	DefaultGovernor string `yaml:"default_governor,omitempty"`
	DisableLEDs     bool   `yaml:"disable_leds"`
	DisableHDMI     bool   `yaml:"disable_hdmi"`
}

func defaultConfig() *Config {
	return &Config{
		CPURoot:      defaultCPURoot,
		LEDRoot:      defaultLEDRoot,
		GraphicsRoot: defaultGraphicsRoot,
	}
}

func (c *Config) validate() error {
	var errs error
	if !filepath.IsAbs(c.CPURoot) {
		errs = errors.Join(errs, fmt.Errorf(".cpu_root: %q must be an absolute path", c.CPURoot))
	}
	if !filepath.IsAbs(c.LEDRoot) {
		errs = errors.Join(errs, fmt.Errorf(".led_root: %q must be an absolute path", c.LEDRoot))
	}
	if !filepath.IsAbs(c.GraphicsRoot) {
		errs = errors.Join(errs, fmt.Errorf(".graphics_root: %q must be an absolute path", c.GraphicsRoot))
	}
	if c.DefaultGovernor != "" && !governorRegex.MatchString(c.DefaultGovernor) {
		errs = errors.Join(errs, fmt.Errorf(".default_governor: %q must be a single governor token", c.DefaultGovernor))
	}
	return errs
}

func parseConfig(reader io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(reader)
	config := defaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}
