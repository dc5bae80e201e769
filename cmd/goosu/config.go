package main

import (
	_ "embed" // Support for go:embed resources
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

//go:embed resources/defaultConfig.ini
var defaultConfig []byte

type PathsConfig struct {
	Install string `ini:"Install"`
	Songs   string `ini:"Songs"`
}

type ScanConfig struct {
	Workers       int `ini:"Workers"`
	ThumbnailSize int `ini:"ThumbnailSize"`
}

type Config struct {
	Def   string
	Paths PathsConfig `ini:"Paths"`
	Scan  ScanConfig  `ini:"Scan"`
}

// loadConfig layers def over the embedded defaults. A missing def is not an
// error.
func loadConfig(def string) (*Config, error) {
	options := ini.LoadOptions{
		SkipUnrecognizableLines: true,
		AllowShadows:            false,
	}

	var iniFile *ini.File
	var err error
	if _, statErr := os.Stat(def); statErr != nil {
		iniFile, err = ini.LoadSources(options, defaultConfig)
	} else {
		iniFile, err = ini.LoadSources(options, defaultConfig, def)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var c Config
	if err := iniFile.MapTo(&c); err != nil {
		return nil, fmt.Errorf("failed to map config: %w", err)
	}
	c.Def = def
	c.normalize()
	return &c, nil
}

func (c *Config) normalize() {
	if c.Scan.Workers < 0 {
		c.Scan.Workers = 0
	}
	if c.Scan.ThumbnailSize < 1 {
		c.Scan.ThumbnailSize = 512
	}
}
