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

// Package common holds the item hashing contracts shared by the sketches.
//
// A hasher maps an arbitrary item to a uniformly distributed unsigned 64-bit
// index. Count-min indices never come from Go's built-in map hashing, so the
// same item stream produces the same sketch state in every process.
package common

// defaultSerdeHashSeed is the seed used by the default item hashers.
const defaultSerdeHashSeed = uint64(9001)

// ItemSketchHasher maps an item to a uniformly distributed 64-bit value.
// Implementations must be deterministic and should have good avalanche
// behavior: flipping one input bit flips each output bit with probability 1/2.
type ItemSketchHasher[C comparable] interface {
	Hash(item C) uint64
}

// HasherFunc adapts an ordinary function to ItemSketchHasher.
type HasherFunc[C comparable] func(item C) uint64

func (f HasherFunc[C]) Hash(item C) uint64 {
	return f(item)
}
