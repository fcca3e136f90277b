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
	"slices"
)

type outcome int

const (
	rejected outcome = iota
	admitted
	evicted
	reprioritized
)

type heapEntry[C comparable] struct {
	estimate uint64
	item     C
	seq      uint64 // admission order, breaks ties between equal estimates
}

// tracker keeps the k items with the highest estimates in an array-backed
// binary min-heap. index maps every tracked item to its position in entries
// and is kept in step with every swap.
type tracker[C comparable] struct {
	k       int
	nextSeq uint64
	entries []heapEntry[C]
	index   map[C]int
}

func newTracker[C comparable](k int) *tracker[C] {
	return &tracker[C]{
		k:       k,
		entries: make([]heapEntry[C], 0, k),
		index:   make(map[C]int, k),
	}
}

func (t *tracker[C]) len() int {
	return len(t.entries)
}

func (t *tracker[C]) contains(item C) bool {
	_, ok := t.index[item]
	return ok
}

// min returns the root entry. The tracker must not be empty.
func (t *tracker[C]) min() heapEntry[C] {
	return t.entries[0]
}

// offer considers item with the given estimate for a place in the top k.
// A full tracker only accepts estimates strictly above its minimum.
func (t *tracker[C]) offer(item C, estimate uint64) outcome {
	if len(t.entries) >= t.k && t.entries[0].estimate >= estimate {
		return rejected
	}

	if pos, ok := t.index[item]; ok {
		t.entries[pos].estimate = estimate
		t.fix(pos)
		return reprioritized
	}

	entry := heapEntry[C]{estimate: estimate, item: item, seq: t.nextSeq}
	t.nextSeq++

	if len(t.entries) < t.k {
		t.entries = append(t.entries, entry)
		pos := len(t.entries) - 1
		t.index[item] = pos
		t.up(pos)
		return admitted
	}

	// full: the root is replaced in place
	delete(t.index, t.entries[0].item)
	t.entries[0] = entry
	t.index[item] = 0
	t.down(0, len(t.entries))
	return evicted
}

// less reports whether entry i ranks below entry j: lower estimate first,
// and among equal estimates the later admission.
func (t *tracker[C]) less(i, j int) bool {
	a, b := &t.entries[i], &t.entries[j]
	if a.estimate != b.estimate {
		return a.estimate < b.estimate
	}
	return a.seq > b.seq
}

func (t *tracker[C]) swap(i, j int) {
	t.entries[i], t.entries[j] = t.entries[j], t.entries[i]
	t.index[t.entries[i].item] = i
	t.index[t.entries[j].item] = j
}

func (t *tracker[C]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !t.less(j, i) {
			break
		}
		t.swap(i, j)
		j = i
	}
}

func (t *tracker[C]) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && t.less(j2, j1) {
			j = j2
		}
		if !t.less(j, i) {
			break
		}
		t.swap(i, j)
		i = j
	}
	return i > i0
}

// fix restores heap order after the estimate at pos changed in either direction.
func (t *tracker[C]) fix(pos int) {
	if !t.down(pos, len(t.entries)) {
		t.up(pos)
	}
}

// sorted returns the tracked entries from highest to lowest rank.
func (t *tracker[C]) sorted() []heapEntry[C] {
	out := slices.Clone(t.entries)
	slices.SortFunc(out, func(a, b heapEntry[C]) int {
		switch {
		case a.estimate > b.estimate:
			return -1
		case a.estimate < b.estimate:
			return 1
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}

// ranking maps every tracked item to its 0-based rank, 0 being the highest estimate.
func (t *tracker[C]) ranking() map[C]int {
	ranks := make(map[C]int, len(t.entries))
	for i, e := range t.sorted() {
		ranks[e.item] = i
	}
	return ranks
}

// check verifies the heap and index invariants.
func (t *tracker[C]) check() error {
	if len(t.entries) > t.k {
		return fmt.Errorf("tracker holds %d entries, capacity is %d", len(t.entries), t.k)
	}
	if len(t.index) != len(t.entries) {
		return fmt.Errorf("index holds %d items, heap holds %d", len(t.index), len(t.entries))
	}
	for i, e := range t.entries {
		pos, ok := t.index[e.item]
		if !ok {
			return fmt.Errorf("item %v at position %d is not indexed", e.item, i)
		}
		if pos != i {
			return fmt.Errorf("item %v is at position %d but indexed at %d", e.item, i, pos)
		}
		if i > 0 && t.less(i, (i-1)/2) {
			return fmt.Errorf("heap order violated at position %d", i)
		}
	}
	return nil
}
