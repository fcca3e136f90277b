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

// Command topk reports the approximately most frequent words of its input.
//
//	topk [flags] [files...]
//
// Without file arguments the words are read from standard input. The final
// ranking is written to standard output, progress reports go to the log on
// standard error.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type flagValues struct {
	configPath string
	k          int
	depth      int
	width      int
	seed       int64
	hasher     string
	top        int
	every      int
	lowercase  bool
	logLevel   string
	metrics    bool
}

func newRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer) *cobra.Command {
	fv := &flagValues{}
	defaults := defaultConfig()

	cmd := &cobra.Command{
		Use:           "topk [files...]",
		Short:         "Estimate the most frequent words of a text stream",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
			}
			logger := zerolog.New(stderr).Level(level).With().Timestamp().Logger()
			return run(cmd.Context(), cfg, args, stdin, stdout, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fv.configPath, "config", "", "YAML configuration file")
	flags.IntVar(&fv.k, "k", defaults.Sketch.K, "number of tracked items")
	flags.IntVar(&fv.depth, "depth", defaults.Sketch.Depth, "number of count-min hash rows")
	flags.IntVar(&fv.width, "width", defaults.Sketch.Width, "counters per row, rounded up to a power of 2")
	flags.Int64Var(&fv.seed, "seed", defaults.Sketch.Seed, "hash family seed")
	flags.StringVar(&fv.hasher, "hasher", defaults.Sketch.Hasher, "item hasher: murmur3 or xxhash")
	flags.IntVar(&fv.top, "top", defaults.Report.Top, "number of items to report")
	flags.IntVar(&fv.every, "every", defaults.Report.Every, "lines between progress reports, 0 disables them")
	flags.BoolVar(&fv.lowercase, "lowercase", defaults.Tokenizer.Lowercase, "fold words to lower case")
	flags.StringVar(&fv.logLevel, "log-level", defaults.Log.Level, "log level")
	flags.BoolVar(&fv.metrics, "metrics", defaults.Metrics.Enabled, "collect sketch metrics and log them on exit")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command, fv *flagValues) (*Config, error) {
	cfg := defaultConfig()
	if fv.configPath != "" {
		loaded, err := LoadConfig(fv.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.Sketch.K = fv.k
	}
	if flags.Changed("depth") {
		cfg.Sketch.Depth = fv.depth
	}
	if flags.Changed("width") {
		cfg.Sketch.Width = fv.width
	}
	if flags.Changed("seed") {
		cfg.Sketch.Seed = fv.seed
	}
	if flags.Changed("hasher") {
		cfg.Sketch.Hasher = fv.hasher
	}
	if flags.Changed("top") {
		cfg.Report.Top = fv.top
	}
	if flags.Changed("every") {
		cfg.Report.Every = fv.every
	}
	if flags.Changed("lowercase") {
		cfg.Tokenizer.Lowercase = fv.lowercase
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = fv.logLevel
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled = fv.metrics
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg *Config, files []string, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	r, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		if err := r.consume(ctx, "stdin", stdin); err != nil {
			return err
		}
	}
	for _, name := range files {
		if err := consumeFile(ctx, r, name); err != nil {
			return err
		}
	}

	logger.Info().Int("lines", r.lines).Uint64("weight", r.sketch.GetTotalWeight()).Msg("done")
	if err := r.logMetrics(); err != nil {
		return err
	}
	return r.writeTop(stdout)
}

func consumeFile(ctx context.Context, r *runner, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return r.consume(ctx, name, f)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "topk:", err)
		stop()
		os.Exit(1)
	}
}
