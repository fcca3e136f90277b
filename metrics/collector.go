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

// Package metrics exposes the activity of top-k sketches to monitoring systems.
package metrics

// Collector receives sketch events. Sketches call it synchronously from
// their update path, so implementations must be cheap.
type Collector interface {
	IncUpdate(weight uint64)
	IncAdmission()
	IncEviction()
	IncReprioritization()
	IncRejection()
	SetTracked(n int)
	SetSizeBytes(bytes int64)
}

// NewCollector returns a Prometheus collector when enabled, otherwise a no-op one.
func NewCollector(enabled bool, name string, k int, depth int, width int) Collector {
	if !enabled {
		return &NoOpCollector{}
	}
	return NewPrometheusCollector(name, k, depth, width)
}
