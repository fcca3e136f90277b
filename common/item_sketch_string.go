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
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// ItemSketchStringHasher hashes strings with 128-bit murmur3, keeping the low 64 bits.
type ItemSketchStringHasher struct{}

func (f ItemSketchStringHasher) Hash(item string) uint64 {
	datum := unsafe.Slice(unsafe.StringData(item), len(item))
	return murmur3.SeedSum64(defaultSerdeHashSeed, datum[:])
}

// ItemSketchStringXXHasher hashes strings with xxh64. A zero Seed uses the
// unseeded fast path.
type ItemSketchStringXXHasher struct {
	Seed uint64
}

func (f ItemSketchStringXXHasher) Hash(item string) uint64 {
	if f.Seed == 0 {
		return xxhash.Sum64String(item)
	}
	h := xxhash.NewWithSeed(f.Seed)
	_, _ = h.WriteString(item)
	return h.Sum64()
}
