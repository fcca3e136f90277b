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

package common

import (
	"math"
	"math/bits"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringHashersAreDeterministic(t *testing.T) {
	hashers := map[string]ItemSketchHasher[string]{
		"murmur3":    ItemSketchStringHasher{},
		"xxhash":     ItemSketchStringXXHasher{},
		"xxhashSeed": ItemSketchStringXXHasher{Seed: 42},
	}
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, h.Hash("apple"), h.Hash("apple"))
			assert.NotEqual(t, h.Hash("apple"), h.Hash("apples"))
			assert.Equal(t, h.Hash(""), h.Hash(""))
		})
	}
}

func TestXXHasherSeedChangesOutput(t *testing.T) {
	a := ItemSketchStringXXHasher{Seed: 1}
	b := ItemSketchStringXXHasher{Seed: 2}
	assert.NotEqual(t, a.Hash("apple"), b.Hash("apple"))
}

func TestLongHasher(t *testing.T) {
	h := ItemSketchLongHasher{}
	seen := make(map[uint64]struct{})
	for i := int64(0); i < 1000; i++ {
		seen[h.Hash(i)] = struct{}{}
	}
	assert.Len(t, seen, 1000)
	assert.Equal(t, h.Hash(-7), h.Hash(-7))
}

func TestDoubleHasherZero(t *testing.T) {
	h := ItemSketchDoubleHasher{}
	assert.Equal(t, h.Hash(0.0), h.Hash(math.Copysign(0, -1)))
	assert.NotEqual(t, h.Hash(1.5), h.Hash(2.5))
}

// Sequential keys should still flip roughly half of the output bits.
func TestStringHasherAvalanche(t *testing.T) {
	h := ItemSketchStringHasher{}
	total := 0
	n := 1000
	for i := 0; i < n; i++ {
		total += bits.OnesCount64(h.Hash(strconv.Itoa(i)) ^ h.Hash(strconv.Itoa(i+1)))
	}
	avg := float64(total) / float64(n)
	assert.InDelta(t, 32.0, avg, 2.0)
}

func TestHasherFunc(t *testing.T) {
	var h ItemSketchHasher[string] = HasherFunc[string](func(item string) uint64 {
		return uint64(len(item))
	})
	assert.Equal(t, uint64(5), h.Hash("hello"))
}
