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
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/apache/datasketches-topk-go/metrics"
	"github.com/apache/datasketches-topk-go/topk"
)

// runner drives the sketch from line oriented text input.
type runner struct {
	cfg       *Config
	logger    zerolog.Logger
	sketch    *topk.Sketch[string]
	tokenizer tokenizer
	registry  *prometheus.Registry
	lines     int
}

func newRunner(cfg *Config, logger zerolog.Logger) (*runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hasher, err := cfg.hasher()
	if err != nil {
		return nil, err
	}

	r := &runner{
		cfg:       cfg,
		logger:    logger,
		tokenizer: tokenizer{lowercase: cfg.Tokenizer.Lowercase},
	}

	var opts []topk.Option
	if cfg.Metrics.Enabled {
		collector := metrics.NewPrometheusCollector(cfg.Metrics.Name, cfg.Sketch.K, cfg.Sketch.Depth, cfg.Sketch.Width)
		r.registry = prometheus.NewRegistry()
		if err := r.registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, topk.WithCollector(collector))
	}

	r.sketch, err = topk.NewSketch[string](cfg.sketchConfig(), hasher, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("k", r.sketch.GetK()).
		Int("depth", r.sketch.GetDepth()).
		Int("width", r.sketch.GetWidth()).
		Int64("seed", cfg.Sketch.Seed).
		Msg("sketch created")
	return r, nil
}

// consume feeds every token of in to the sketch, logging a report every
// cfg.Report.Every lines.
func (r *runner) consume(ctx context.Context, name string, in io.Reader) error {
	scanner := newLineScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, token := range r.tokenizer.tokens(scanner.Text()) {
			r.sketch.Update(token)
		}
		r.lines++
		if r.cfg.Report.Every > 0 && r.lines%r.cfg.Report.Every == 0 {
			r.logReport()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	r.logger.Debug().Str("input", name).Int("lines", r.lines).Msg("input consumed")
	return nil
}

func (r *runner) logReport() {
	r.logger.Info().
		Int("lines", r.lines).
		Uint64("weight", r.sketch.GetTotalWeight()).
		Int("tracked", r.sketch.GetNumTracked()).
		Msg("progress")
	for _, row := range r.sketch.GetTopItems(r.cfg.Report.Top) {
		r.logger.Info().
			Int("rank", row.GetRank()).
			Uint64("estimate", row.GetEstimate()).
			Str("item", row.GetItem()).
			Msg("top")
	}
}

// writeTop prints the final ranking, one "estimate item" pair per line.
func (r *runner) writeTop(out io.Writer) error {
	for _, row := range r.sketch.GetTopItems(r.cfg.Report.Top) {
		if _, err := fmt.Fprintf(out, "%d %s\n", row.GetEstimate(), row.GetItem()); err != nil {
			return err
		}
	}
	return nil
}

// logMetrics logs the collected counters when metrics are enabled.
func (r *runner) logMetrics() error {
	if r.registry == nil {
		return nil
	}
	r.sketch.GetSizeBytes()
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			r.logger.Info().Str("metric", mf.GetName()).Float64("value", value).Msg("metrics")
		}
	}
	return nil
}
