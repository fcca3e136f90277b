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
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerAdmitsUntilFull(t *testing.T) {
	tr := newTracker[string](3)
	assert.Equal(t, admitted, tr.offer("a", 4))
	// smaller than the minimum but there is room left
	assert.Equal(t, admitted, tr.offer("b", 0))
	assert.Equal(t, admitted, tr.offer("c", 2))
	assert.Equal(t, 3, tr.len())
	assert.Equal(t, "b", tr.min().item)
	require.NoError(t, tr.check())

	assert.Equal(t, rejected, tr.offer("d", 0))
	assert.False(t, tr.contains("d"))
}

func TestTrackerEvictsMinimum(t *testing.T) {
	tr := newTracker[string](3)
	tr.offer("a", 10)
	tr.offer("b", 20)
	tr.offer("c", 30)

	assert.Equal(t, evicted, tr.offer("d", 11))
	assert.False(t, tr.contains("a"))
	assert.True(t, tr.contains("d"))
	assert.Equal(t, uint64(11), tr.min().estimate)
	require.NoError(t, tr.check())
	assert.Equal(t, map[string]int{"c": 0, "b": 1, "d": 2}, tr.ranking())
}

func TestTrackerEqualEstimateRejectedWhenFull(t *testing.T) {
	tr := newTracker[string](2)
	tr.offer("a", 5)
	tr.offer("b", 7)

	assert.Equal(t, rejected, tr.offer("c", 5))
	assert.Equal(t, rejected, tr.offer("c", 4))
	assert.Equal(t, evicted, tr.offer("c", 6))
	assert.Equal(t, map[string]int{"b": 0, "c": 1}, tr.ranking())
}

func TestTrackerReprioritizesInPlace(t *testing.T) {
	tr := newTracker[string](3)
	tr.offer("a", 10)
	tr.offer("b", 20)
	tr.offer("c", 30)

	// the root grows past everything else
	assert.Equal(t, reprioritized, tr.offer("a", 40))
	require.NoError(t, tr.check())
	assert.Equal(t, "b", tr.min().item)
	assert.Equal(t, map[string]int{"a": 0, "c": 1, "b": 2}, tr.ranking())

	// an interior entry shrinks below its sibling
	assert.Equal(t, reprioritized, tr.offer("c", 25))
	require.NoError(t, tr.check())
	assert.Equal(t, map[string]int{"a": 0, "c": 1, "b": 2}, tr.ranking())
	assert.Equal(t, reprioritized, tr.offer("a", 21))
	require.NoError(t, tr.check())
	assert.Equal(t, map[string]int{"c": 0, "a": 1, "b": 2}, tr.ranking())
	assert.Equal(t, 3, tr.len())
}

func TestTrackerTieBreakByAdmissionOrder(t *testing.T) {
	tr := newTracker[string](3)
	tr.offer("x", 5)
	tr.offer("y", 5)
	tr.offer("z", 5)
	assert.Equal(t, map[string]int{"x": 0, "y": 1, "z": 2}, tr.ranking())

	// the lowest ranked of the tied entries is the one evicted
	assert.Equal(t, "z", tr.min().item)
	assert.Equal(t, evicted, tr.offer("w", 6))
	assert.Equal(t, map[string]int{"w": 0, "x": 1, "y": 2}, tr.ranking())
	require.NoError(t, tr.check())
}

func TestTrackerSingleSlot(t *testing.T) {
	tr := newTracker[int](1)
	assert.Equal(t, admitted, tr.offer(1, 0))
	assert.Equal(t, rejected, tr.offer(2, 0))
	assert.Equal(t, evicted, tr.offer(2, 1))
	assert.Equal(t, reprioritized, tr.offer(2, 3))
	assert.Equal(t, map[int]int{2: 0}, tr.ranking())
	require.NoError(t, tr.check())
}

func TestTrackerInvariantsUnderRandomOffers(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	tr := newTracker[string](8)

	for i := 0; i < 5000; i++ {
		item := strconv.Itoa(rng.Intn(50))
		estimate := uint64(rng.Intn(200))

		var root heapEntry[string]
		full := tr.len() == tr.k
		if tr.len() > 0 {
			root = tr.min()
		}

		switch tr.offer(item, estimate) {
		case evicted:
			assert.True(t, full)
			assert.False(t, tr.contains(root.item))
			assert.Greater(t, estimate, root.estimate)
		case rejected:
			assert.True(t, full)
			assert.LessOrEqual(t, estimate, root.estimate)
		}
		require.NoError(t, tr.check())

		for _, e := range tr.entries {
			assert.LessOrEqual(t, tr.min().estimate, e.estimate)
		}
	}
}

func TestTrackerRankingIsBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := newTracker[int](16)
	for i := 0; i < 1000; i++ {
		tr.offer(rng.Intn(100), uint64(rng.Intn(30)))
	}

	ranks := tr.ranking()
	assert.Len(t, ranks, tr.len())
	seen := make([]bool, tr.len())
	for _, r := range ranks {
		require.False(t, seen[r])
		seen[r] = true
	}

	sorted := tr.sorted()
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].estimate, sorted[i].estimate)
		assert.Equal(t, i, ranks[sorted[i].item])
	}
}
