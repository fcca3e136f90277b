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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, c prometheus.Collector) map[string]float64 {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		if m.GetCounter() != nil {
			values[mf.GetName()] = m.GetCounter().GetValue()
		} else {
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}
	return values
}

func TestNewCollector(t *testing.T) {
	is := assert.New(t)

	_, ok := NewCollector(false, "words", 10, 4, 512).(*NoOpCollector)
	is.True(ok)

	c, ok := NewCollector(true, "words", 10, 4, 512).(*PrometheusCollector)
	is.True(ok)
	is.Equal("words", c.name)
	is.Equal("words", c.labels["name"])
}

func TestPrometheusCollectorCounts(t *testing.T) {
	is := assert.New(t)

	c := NewPrometheusCollector("words", 10, 4, 512)
	c.IncUpdate(1)
	c.IncUpdate(5)
	c.IncAdmission()
	c.IncAdmission()
	c.IncEviction()
	c.IncReprioritization()
	c.IncRejection()
	c.IncRejection()
	c.IncRejection()
	c.SetTracked(2)
	c.SetSizeBytes(4096)

	values := gather(t, c)
	is.Equal(2.0, values["topk_update_total"])
	is.Equal(6.0, values["topk_update_weight_total"])
	is.Equal(2.0, values["topk_admission_total"])
	is.Equal(1.0, values["topk_eviction_total"])
	is.Equal(1.0, values["topk_reprioritization_total"])
	is.Equal(3.0, values["topk_rejection_total"])
	is.Equal(2.0, values["topk_tracked"])
	is.Equal(4096.0, values["topk_size_bytes"])
	is.Equal(10.0, values["topk_settings_k"])
	is.Equal(4.0, values["topk_settings_depth"])
	is.Equal(512.0, values["topk_settings_width"])
	is.Len(values, 11)
}

func TestNoOpCollector(t *testing.T) {
	c := &NoOpCollector{}
	assert.NotPanics(t, func() {
		c.IncUpdate(3)
		c.IncAdmission()
		c.IncEviction()
		c.IncReprioritization()
		c.IncRejection()
		c.SetTracked(1)
		c.SetSizeBytes(1)
	})
}
