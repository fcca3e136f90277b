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
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// SuggestWidth returns the requested width giving the relative error
// e / width for a single point query.
func SuggestWidth(relativeError float64) (int, error) {
	if relativeError <= 0 {
		return 0, errors.New("relative error must be greater than 0.0")
	}
	return int(math.Ceil(math.Exp(1.0) / relativeError)), nil
}

// SuggestDepth returns the number of hash rows needed so an estimate stays
// within the relative error with the given confidence.
func SuggestDepth(confidence float64) (int, error) {
	if confidence < 0 || confidence >= 1.0 {
		return 0, errors.New("confidence must be in [0, 1.0)")
	}
	return max(int(math.Ceil(math.Log(1.0/(1.0-confidence)))), 1), nil
}

// saturatingAdd adds b to a, clamping at math.MaxUint64 so counters never wrap.
func saturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint64
}
