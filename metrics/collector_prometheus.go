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
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ Collector            = (*PrometheusCollector)(nil)
	_ prometheus.Collector = (*PrometheusCollector)(nil)
)

// PrometheusCollector implements Collector with lock-free counters that are
// exported when Prometheus scrapes the registry.
type PrometheusCollector struct {
	name   string
	labels prometheus.Labels

	updateCount           atomic.Uint64
	updateWeight          atomic.Uint64
	admissionCount        atomic.Uint64
	evictionCount         atomic.Uint64
	reprioritizationCount atomic.Uint64
	rejectionCount        atomic.Uint64

	tracked   atomic.Int64
	sizeBytes atomic.Int64

	settingsK     prometheus.Gauge
	settingsDepth prometheus.Gauge
	settingsWidth prometheus.Gauge

	updateDesc           *prometheus.Desc
	updateWeightDesc     *prometheus.Desc
	admissionDesc        *prometheus.Desc
	evictionDesc         *prometheus.Desc
	reprioritizationDesc *prometheus.Desc
	rejectionDesc        *prometheus.Desc
	trackedDesc          *prometheus.Desc
	sizeDesc             *prometheus.Desc
}

// NewPrometheusCollector creates a collector labelled with the sketch name.
func NewPrometheusCollector(name string, k int, depth int, width int) *PrometheusCollector {
	labels := prometheus.Labels{
		"name": name,
	}

	collector := &PrometheusCollector{
		name:   name,
		labels: labels,
	}

	collector.updateDesc = prometheus.NewDesc(
		"topk_update_total",
		"Total number of update events applied to the sketch",
		nil, labels,
	)
	collector.updateWeightDesc = prometheus.NewDesc(
		"topk_update_weight_total",
		"Sum of all increments applied to the sketch",
		nil, labels,
	)
	collector.admissionDesc = prometheus.NewDesc(
		"topk_admission_total",
		"Total number of items admitted into a tracker with free capacity",
		nil, labels,
	)
	collector.evictionDesc = prometheus.NewDesc(
		"topk_eviction_total",
		"Total number of tracked items replaced by a stronger candidate",
		nil, labels,
	)
	collector.reprioritizationDesc = prometheus.NewDesc(
		"topk_reprioritization_total",
		"Total number of in-place estimate updates of tracked items",
		nil, labels,
	)
	collector.rejectionDesc = prometheus.NewDesc(
		"topk_rejection_total",
		"Total number of candidates not competitive with the tracked minimum",
		nil, labels,
	)
	collector.trackedDesc = prometheus.NewDesc(
		"topk_tracked",
		"Current number of tracked items",
		nil, labels,
	)
	collector.sizeDesc = prometheus.NewDesc(
		"topk_size_bytes",
		"Last measured memory footprint of the sketch in bytes",
		nil, labels,
	)

	collector.settingsK = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "topk_settings_k",
		Help:        "Maximum number of tracked items",
		ConstLabels: labels,
	})
	collector.settingsK.Set(float64(k))

	collector.settingsDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "topk_settings_depth",
		Help:        "Number of hash rows of the count-min matrix",
		ConstLabels: labels,
	})
	collector.settingsDepth.Set(float64(depth))

	collector.settingsWidth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "topk_settings_width",
		Help:        "Number of counters per row of the count-min matrix",
		ConstLabels: labels,
	})
	collector.settingsWidth.Set(float64(width))

	return collector
}

func (p *PrometheusCollector) IncUpdate(weight uint64) {
	p.updateCount.Add(1)
	p.updateWeight.Add(weight)
}

func (p *PrometheusCollector) IncAdmission() {
	p.admissionCount.Add(1)
}

func (p *PrometheusCollector) IncEviction() {
	p.evictionCount.Add(1)
}

func (p *PrometheusCollector) IncReprioritization() {
	p.reprioritizationCount.Add(1)
}

func (p *PrometheusCollector) IncRejection() {
	p.rejectionCount.Add(1)
}

func (p *PrometheusCollector) SetTracked(n int) {
	p.tracked.Store(int64(n))
}

func (p *PrometheusCollector) SetSizeBytes(bytes int64) {
	p.sizeBytes.Store(bytes)
}

// Describe implements prometheus.Collector interface.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.updateDesc
	ch <- p.updateWeightDesc
	ch <- p.admissionDesc
	ch <- p.evictionDesc
	ch <- p.reprioritizationDesc
	ch <- p.rejectionDesc
	ch <- p.trackedDesc
	ch <- p.sizeDesc
	ch <- p.settingsK.Desc()
	ch <- p.settingsDepth.Desc()
	ch <- p.settingsWidth.Desc()
}

// Collect implements prometheus.Collector interface.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	counters := []struct {
		desc  *prometheus.Desc
		value uint64
	}{
		{p.updateDesc, p.updateCount.Load()},
		{p.updateWeightDesc, p.updateWeight.Load()},
		{p.admissionDesc, p.admissionCount.Load()},
		{p.evictionDesc, p.evictionCount.Load()},
		{p.reprioritizationDesc, p.reprioritizationCount.Load()},
		{p.rejectionDesc, p.rejectionCount.Load()},
	}
	for _, c := range counters {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(c.value))
	}

	ch <- prometheus.MustNewConstMetric(p.trackedDesc, prometheus.GaugeValue, float64(p.tracked.Load()))
	ch <- prometheus.MustNewConstMetric(p.sizeDesc, prometheus.GaugeValue, float64(p.sizeBytes.Load()))

	p.settingsK.Collect(ch)
	p.settingsDepth.Collect(ch)
	p.settingsWidth.Collect(ch)
}
