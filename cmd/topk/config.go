/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/apache/datasketches-topk-go/common"
	"github.com/apache/datasketches-topk-go/topk"
)

// SketchConfig holds the top-k sketch parameters.
type SketchConfig struct {
	K      int    `yaml:"k"`
	Depth  int    `yaml:"depth"`
	Width  int    `yaml:"width"`
	Seed   int64  `yaml:"seed"`
	Hasher string `yaml:"hasher"`
}

// ReportConfig controls the periodic and final reports.
type ReportConfig struct {
	Top   int `yaml:"top"`
	Every int `yaml:"every"`
}

// TokenizerConfig controls how input lines are split into items.
type TokenizerConfig struct {
	Lowercase bool `yaml:"lowercase"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}

// Config is the top-level configuration of the topk command.
type Config struct {
	Sketch    SketchConfig    `yaml:"sketch"`
	Report    ReportConfig    `yaml:"report"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

func defaultConfig() *Config {
	return &Config{
		Sketch: SketchConfig{
			K:      200,
			Depth:  20,
			Width:  500,
			Seed:   1,
			Hasher: "murmur3",
		},
		Report: ReportConfig{
			Top:   10,
			Every: 10000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Name: "topk",
		},
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks the parts of the configuration the sketch does not check itself.
func (c *Config) Validate() error {
	if _, err := c.hasher(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Report.Every < 0 {
		return fmt.Errorf("report interval must not be negative: %d", c.Report.Every)
	}
	return nil
}

func (c *Config) sketchConfig() topk.Config {
	return topk.Config{
		K:     c.Sketch.K,
		Depth: c.Sketch.Depth,
		Width: c.Sketch.Width,
		Seed:  c.Sketch.Seed,
	}
}

func (c *Config) hasher() (common.ItemSketchHasher[string], error) {
	switch c.Sketch.Hasher {
	case "", "murmur3":
		return common.ItemSketchStringHasher{}, nil
	case "xxhash":
		return common.ItemSketchStringXXHasher{Seed: uint64(c.Sketch.Seed)}, nil
	}
	return nil, fmt.Errorf("unknown hasher %q", c.Sketch.Hasher)
}
