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

package topk

import (
	"fmt"
	"math/rand"

	"github.com/apache/datasketches-topk-go/common"
)

var _ Interface[string] = (*WindowSketch[string])(nil)

// WindowSketch keeps length sketches that all receive every update but were
// started at different times. Rotate retires the oldest one and starts a
// fresh one, so reads from the oldest cover the last length rotation periods.
type WindowSketch[C comparable] struct {
	cfg      Config
	hasher   common.ItemSketchHasher[C]
	opts     []Option
	rng      *rand.Rand // seeds of rotated-in sketches
	sketches []*Sketch[C]
}

// NewWindowSketch builds a window of length sketches sharing cfg. Each
// sketch gets its own hash family seeded from cfg.Seed. opts are applied to
// every member, including a shared collector.
func NewWindowSketch[C comparable](length int, cfg Config, hasher common.ItemSketchHasher[C], opts ...Option) (*WindowSketch[C], error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: window length must be positive: %d", ErrInvalidConfig, length)
	}

	w := &WindowSketch[C]{
		cfg:      cfg,
		hasher:   hasher,
		opts:     opts,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		sketches: make([]*Sketch[C], 0, length),
	}
	for i := 0; i < length; i++ {
		sk, err := w.newSketch()
		if err != nil {
			return nil, err
		}
		w.sketches = append(w.sketches, sk)
	}
	return w, nil
}

func (w *WindowSketch[C]) newSketch() (*Sketch[C], error) {
	cfg := w.cfg
	cfg.Seed = w.rng.Int63()
	return NewSketch[C](cfg, w.hasher, w.opts...)
}

// Rotate drops the oldest sketch and appends an empty one.
func (w *WindowSketch[C]) Rotate() error {
	sk, err := w.newSketch()
	if err != nil {
		return err
	}
	copy(w.sketches, w.sketches[1:])
	w.sketches[len(w.sketches)-1] = sk
	return nil
}

func (w *WindowSketch[C]) Update(item C) {
	w.UpdateMany(item, 1)
}

func (w *WindowSketch[C]) UpdateMany(item C, increment uint64) {
	for _, sk := range w.sketches {
		sk.UpdateMany(item, increment)
	}
}

// GetEstimate reads from the oldest sketch.
func (w *WindowSketch[C]) GetEstimate(item C) uint64 {
	return w.sketches[0].GetEstimate(item)
}

// GetRanking reads from the oldest sketch.
func (w *WindowSketch[C]) GetRanking() map[C]int {
	return w.sketches[0].GetRanking()
}

// GetTopItems reads from the oldest sketch.
func (w *WindowSketch[C]) GetTopItems(n int) []*Row[C] {
	return w.sketches[0].GetTopItems(n)
}

func (w *WindowSketch[C]) GetLength() int {
	return len(w.sketches)
}

// GetSketch returns the i-th sketch, 0 being the oldest.
func (w *WindowSketch[C]) GetSketch(i int) *Sketch[C] {
	return w.sketches[i]
}
