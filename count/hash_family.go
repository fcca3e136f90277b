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

package count

import (
	"math/rand"

	"github.com/apache/datasketches-topk-go/internal"
)

// maxMultiplier is 2^(W-1); multipliers are odd values strictly below it.
const maxMultiplier = uint64(1) << (internal.WordBits - 1)

// GenerateHashFamily draws depth independent multipliers for the
// multiply-shift family. Each is odd and uniform over the odd values in
// [0, 2^63).
func GenerateHashFamily(depth int, rng *rand.Rand) []uint64 {
	hashFunctions := make([]uint64, depth)
	for i := range hashFunctions {
		hashFunctions[i] = uint64(rng.Int63()>>1)<<1 | 1
	}
	return hashFunctions
}

// MultiplyShift maps index to a bucket in [0, 2^lgWidth). The product wraps
// at 64 bits and the top lgWidth bits are kept.
func MultiplyShift(multiplier uint64, index uint64, lgWidth uint) uint64 {
	return (multiplier * index) >> (internal.WordBits - lgWidth)
}

func isValidMultiplier(multiplier uint64) bool {
	return multiplier&1 == 1 && multiplier < maxMultiplier
}
