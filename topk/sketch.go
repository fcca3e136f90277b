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

// Package topk tracks the approximately most frequent items of a stream.
//
// A Sketch feeds every update through a count-min sketch and offers the
// resulting estimate to a bounded tracker of the k strongest items. Memory
// is fixed at construction: depth x width counters plus k tracked entries,
// independent of the stream length and of the number of distinct items.
//
// Sketches are not safe for concurrent use.
package topk

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/DmitriyVTitov/size"

	"github.com/apache/datasketches-topk-go/common"
	"github.com/apache/datasketches-topk-go/count"
	"github.com/apache/datasketches-topk-go/metrics"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("invalid top-k sketch configuration")

// Config holds the construction parameters of a Sketch.
type Config struct {
	// K is the maximum number of tracked items.
	K int
	// Depth is the number of hash rows of the count-min matrix.
	Depth int
	// Width is the requested number of counters per row, rounded up to a power of 2.
	Width int
	// Seed drives the generation of the hash family.
	Seed int64
}

// Interface is the common surface of Sketch, WindowSketch and GroupSketch.
type Interface[C comparable] interface {
	Update(item C)
	UpdateMany(item C, increment uint64)
	GetEstimate(item C) uint64
	GetRanking() map[C]int
	GetTopItems(n int) []*Row[C]
}

var _ Interface[string] = (*Sketch[string])(nil)

type Sketch[C comparable] struct {
	k         int
	hasher    common.ItemSketchHasher[C]
	cms       *count.CountMinSketch
	tracker   *tracker[C]
	collector metrics.Collector
}

type sketchOptions struct {
	cmsOptions []count.Option
	collector  metrics.Collector
}

// Option is a functional option for configuring a Sketch.
type Option func(*sketchOptions)

// WithHashFunctions fixes the multipliers of the count-min rows.
func WithHashFunctions(multipliers ...uint64) Option {
	return func(opts *sketchOptions) {
		opts.cmsOptions = append(opts.cmsOptions, count.WithHashFunctions(multipliers...))
	}
}

// WithRand draws the hash family from rng instead of Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(opts *sketchOptions) {
		opts.cmsOptions = append(opts.cmsOptions, count.WithRand(rng))
	}
}

// WithCollector reports sketch activity to c.
func WithCollector(c metrics.Collector) Option {
	return func(opts *sketchOptions) {
		opts.collector = c
	}
}

// NewSketch builds a sketch tracking the cfg.K strongest items. hasher maps
// items to the count-min index space.
func NewSketch[C comparable](cfg Config, hasher common.ItemSketchHasher[C], opts ...Option) (*Sketch[C], error) {
	if cfg.K <= 0 {
		return nil, fmt.Errorf("%w: k must be positive: %d", ErrInvalidConfig, cfg.K)
	}
	if hasher == nil {
		return nil, fmt.Errorf("%w: no hasher provided", ErrInvalidConfig)
	}

	options := &sketchOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.collector == nil {
		options.collector = &metrics.NoOpCollector{}
	}

	cms, err := count.NewCountMinSketch(cfg.Depth, cfg.Width, cfg.Seed, options.cmsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Sketch[C]{
		k:         cfg.K,
		hasher:    hasher,
		cms:       cms,
		tracker:   newTracker[C](cfg.K),
		collector: options.collector,
	}, nil
}

// Update this sketch with an item and a count of one.
func (s *Sketch[C]) Update(item C) {
	s.UpdateMany(item, 1)
}

// UpdateMany adds increment to the count of item. A zero increment is a no-op.
//
// The tracker is offered the count-min estimate read before this increment
// was applied, so an item is ranked by its count prior to the current event.
func (s *Sketch[C]) UpdateMany(item C, increment uint64) {
	if increment == 0 {
		return
	}

	preEstimate := s.cms.UpdateIndex(s.hasher.Hash(item), increment)
	s.collector.IncUpdate(increment)

	switch s.tracker.offer(item, preEstimate) {
	case admitted:
		s.collector.IncAdmission()
		s.collector.SetTracked(s.tracker.len())
	case evicted:
		s.collector.IncEviction()
	case reprioritized:
		s.collector.IncReprioritization()
	default:
		s.collector.IncRejection()
	}
}

// GetEstimate returns the count-min point estimate of item. It is never
// below the true count.
func (s *Sketch[C]) GetEstimate(item C) uint64 {
	return s.cms.EstimateIndex(s.hasher.Hash(item))
}

// GetUpperBound returns the estimate plus the a priori count-min error.
func (s *Sketch[C]) GetUpperBound(item C) uint64 {
	return s.cms.GetUpperBound(s.hasher.Hash(item))
}

// GetRanking maps every tracked item to its rank, 0 being the highest
// tracked estimate. Equal estimates rank in admission order.
func (s *Sketch[C]) GetRanking() map[C]int {
	return s.tracker.ranking()
}

// GetTopItems returns up to n tracked items in rank order. A non-positive n
// returns every tracked item.
func (s *Sketch[C]) GetTopItems(n int) []*Row[C] {
	entries := s.tracker.sorted()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	rows := make([]*Row[C], len(entries))
	for i, e := range entries {
		index := s.hasher.Hash(e.item)
		rows[i] = &Row[C]{
			item:    e.item,
			rank:    i,
			est:     s.cms.EstimateIndex(index),
			tracked: e.estimate,
			ub:      s.cms.GetUpperBound(index),
		}
	}
	return rows
}

// IsTracked returns true if item currently holds a place in the top k.
func (s *Sketch[C]) IsTracked(item C) bool {
	return s.tracker.contains(item)
}

func (s *Sketch[C]) GetNumTracked() int {
	return s.tracker.len()
}

func (s *Sketch[C]) GetK() int {
	return s.k
}

func (s *Sketch[C]) GetDepth() int {
	return s.cms.GetDepth()
}

// GetWidth returns the rounded number of counters per row.
func (s *Sketch[C]) GetWidth() int {
	return s.cms.GetWidth()
}

// GetTotalWeight returns the sum of all increments.
func (s *Sketch[C]) GetTotalWeight() uint64 {
	return s.cms.GetTotalWeight()
}

func (s *Sketch[C]) IsEmpty() bool {
	return s.cms.IsEmpty()
}

// GetSizeBytes measures the memory held by the count-min matrix and the
// tracker and reports it to the collector.
func (s *Sketch[C]) GetSizeBytes() int64 {
	bytes := int64(size.Of(s.cms)) + int64(size.Of(s.tracker))
	s.collector.SetSizeBytes(bytes)
	return bytes
}
