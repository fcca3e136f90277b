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
	"maps"
	"slices"
)

var _ Interface[string] = (*GroupSketch[string])(nil)

// GroupSketch fans every update out to a set of named sketches and answers
// reads from the default one. Groups can be nested.
type GroupSketch[C comparable] struct {
	defaultName string
	names       []string
	sketches    map[string]Interface[C]
}

func NewGroupSketch[C comparable](defaultName string, sketches map[string]Interface[C]) (*GroupSketch[C], error) {
	if len(sketches) == 0 {
		return nil, fmt.Errorf("%w: group has no sketches", ErrInvalidConfig)
	}
	for name, sk := range sketches {
		if sk == nil {
			return nil, fmt.Errorf("%w: sketch %q is nil", ErrInvalidConfig, name)
		}
	}
	if _, ok := sketches[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default sketch %q is not in the group", ErrInvalidConfig, defaultName)
	}

	return &GroupSketch[C]{
		defaultName: defaultName,
		names:       slices.Sorted(maps.Keys(sketches)),
		sketches:    maps.Clone(sketches),
	}, nil
}

func (g *GroupSketch[C]) Update(item C) {
	g.UpdateMany(item, 1)
}

// UpdateMany updates every member in name order.
func (g *GroupSketch[C]) UpdateMany(item C, increment uint64) {
	for _, name := range g.names {
		g.sketches[name].UpdateMany(item, increment)
	}
}

func (g *GroupSketch[C]) GetEstimate(item C) uint64 {
	return g.sketches[g.defaultName].GetEstimate(item)
}

func (g *GroupSketch[C]) GetRanking() map[C]int {
	return g.sketches[g.defaultName].GetRanking()
}

func (g *GroupSketch[C]) GetTopItems(n int) []*Row[C] {
	return g.sketches[g.defaultName].GetTopItems(n)
}

func (g *GroupSketch[C]) GetDefaultName() string {
	return g.defaultName
}

// GetNames returns the member names in sorted order.
func (g *GroupSketch[C]) GetNames() []string {
	return slices.Clone(g.names)
}

func (g *GroupSketch[C]) Get(name string) (Interface[C], bool) {
	sk, ok := g.sketches[name]
	return sk, ok
}
