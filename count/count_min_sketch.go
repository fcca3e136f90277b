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

// Package count implements the count-min sketch: a fixed depth x width
// matrix of counters addressed by a multiply-shift hash family. Point
// queries never underestimate the true count of an item.
package count

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/apache/datasketches-topk-go/common"
	"github.com/apache/datasketches-topk-go/internal"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("invalid count-min sketch configuration")

type CountMinSketch struct {
	depth         int
	width         int  // rounded up to a power of 2
	lgWidth       uint // log2(width)
	seed          int64
	totalWeight   uint64
	hashFunctions []uint64
	counts        []uint64 // row-major, depth rows of width counters
}

type countMinOptions struct {
	hashFunctions []uint64
	rng           *rand.Rand
}

// Option configures optional parameters of NewCountMinSketch.
type Option func(*countMinOptions)

// WithHashFunctions replaces the generated hash family with explicit
// multipliers. There must be exactly depth of them, each odd and below 2^63.
func WithHashFunctions(multipliers ...uint64) Option {
	return func(opts *countMinOptions) {
		opts.hashFunctions = append([]uint64(nil), multipliers...)
	}
}

// WithRand draws the hash family from rng instead of a generator seeded
// with the sketch seed.
func WithRand(rng *rand.Rand) Option {
	return func(opts *countMinOptions) {
		opts.rng = rng
	}
}

// NewCountMinSketch builds a sketch with depth rows. requestedWidth is
// rounded up to the next power of 2.
func NewCountMinSketch(depth int, requestedWidth int, seed int64, opts ...Option) (*CountMinSketch, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: depth must be positive: %d", ErrInvalidConfig, depth)
	}
	if requestedWidth <= 0 {
		return nil, fmt.Errorf("%w: width must be positive: %d", ErrInvalidConfig, requestedWidth)
	}
	if requestedWidth > 1<<internal.MaxLgWidth {
		return nil, fmt.Errorf("%w: width exceeds 2^%d: %d", ErrInvalidConfig, internal.MaxLgWidth, requestedWidth)
	}

	width := internal.CeilPowerOf2(requestedWidth)
	if int64(width)*int64(depth) >= 1<<internal.MaxLgWidth {
		return nil, fmt.Errorf("%w: these parameters generate a sketch that exceeds 2^%d counters", ErrInvalidConfig, internal.MaxLgWidth)
	}
	lgWidth, err := internal.ExactLog2(width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	options := &countMinOptions{}
	for _, opt := range opts {
		opt(options)
	}

	hashFunctions := options.hashFunctions
	if hashFunctions != nil {
		if len(hashFunctions) != depth {
			return nil, fmt.Errorf("%w: got %d hash functions for depth %d", ErrInvalidConfig, len(hashFunctions), depth)
		}
		for i, hf := range hashFunctions {
			if !isValidMultiplier(hf) {
				return nil, fmt.Errorf("%w: hash function %d must be odd and below 2^63: %d", ErrInvalidConfig, i, hf)
			}
		}
	} else {
		rng := options.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(seed))
		}
		hashFunctions = GenerateHashFamily(depth, rng)
	}

	return &CountMinSketch{
		depth:         depth,
		width:         width,
		lgWidth:       uint(lgWidth),
		seed:          seed,
		hashFunctions: hashFunctions,
		counts:        make([]uint64, depth*width),
	}, nil
}

func (c *CountMinSketch) GetDepth() int {
	return c.depth
}

// GetWidth returns the rounded number of counters per row.
func (c *CountMinSketch) GetWidth() int {
	return c.width
}

func (c *CountMinSketch) GetLgWidth() int {
	return int(c.lgWidth)
}

func (c *CountMinSketch) GetSeed() int64 {
	return c.seed
}

// GetTotalWeight returns the sum of all increments applied so far.
func (c *CountMinSketch) GetTotalWeight() uint64 {
	return c.totalWeight
}

// GetHashFunctions returns a copy of the multipliers, one per row.
func (c *CountMinSketch) GetHashFunctions() []uint64 {
	return append([]uint64(nil), c.hashFunctions...)
}

// GetRelativeError returns e / width, the per-query error as a fraction of
// the total weight.
func (c *CountMinSketch) GetRelativeError() float64 {
	return math.Exp(1.0) / float64(c.width)
}

// IsEmpty returns true if no weight has been added.
func (c *CountMinSketch) IsEmpty() bool {
	return c.totalWeight == 0
}

func (c *CountMinSketch) cell(row int, index uint64) int {
	return row*c.width + int(MultiplyShift(c.hashFunctions[row], index, c.lgWidth))
}

// UpdateIndex adds increment to the counter of index in every row. It
// returns the minimum counter value read before the increment was applied.
func (c *CountMinSketch) UpdateIndex(index uint64, increment uint64) uint64 {
	estimate := uint64(math.MaxUint64)
	for row := range c.hashFunctions {
		j := c.cell(row, index)
		x := c.counts[j]
		estimate = Min(estimate, x)
		c.counts[j] = saturatingAdd(x, increment)
	}
	c.totalWeight = saturatingAdd(c.totalWeight, increment)
	return estimate
}

// EstimateIndex returns the minimum counter of index across rows. It is
// never below the true cumulative count of index.
func (c *CountMinSketch) EstimateIndex(index uint64) uint64 {
	estimate := uint64(math.MaxUint64)
	for row := range c.hashFunctions {
		estimate = Min(estimate, c.counts[c.cell(row, index)])
	}
	return estimate
}

// GetUpperBound returns the estimate plus the a priori error bound
// relativeError * totalWeight.
func (c *CountMinSketch) GetUpperBound(index uint64) uint64 {
	slack := uint64(c.GetRelativeError() * float64(c.totalWeight))
	return saturatingAdd(c.EstimateIndex(index), slack)
}

func (c *CountMinSketch) UpdateString(item string, increment uint64) uint64 {
	return c.UpdateIndex(common.ItemSketchStringHasher{}.Hash(item), increment)
}

func (c *CountMinSketch) GetEstimateString(item string) uint64 {
	return c.EstimateIndex(common.ItemSketchStringHasher{}.Hash(item))
}
