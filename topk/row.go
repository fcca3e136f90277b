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
)

// Row is one reported entry of a top-k result.
type Row[C comparable] struct {
	item    C
	rank    int
	est     uint64
	tracked uint64
	ub      uint64
}

func (r *Row[C]) String() string {
	return fmt.Sprintf("  %6d%20d%20d%20d %v", r.rank, r.est, r.tracked, r.ub, r.item)
}

func (r *Row[C]) GetItem() C {
	return r.item
}

// GetRank returns the 0-based rank, 0 being the strongest item.
func (r *Row[C]) GetRank() int {
	return r.rank
}

// GetEstimate returns the point query estimate at the time the row was built.
func (r *Row[C]) GetEstimate() uint64 {
	return r.est
}

// GetTrackedEstimate returns the estimate the tracker ranks the item by.
func (r *Row[C]) GetTrackedEstimate() uint64 {
	return r.tracked
}

func (r *Row[C]) GetUpperBound() uint64 {
	return r.ub
}
