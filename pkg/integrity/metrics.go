// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrity

import (
	m "github.com/benvalle33/magenta/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	// all metrics fields must be exported
	// to be able to return them by Metrics()
	// using reflection
	SealedCount      prometheus.Counter
	SealedBytes      prometheus.Counter
	CheckedCount     prometheus.Counter
	CheckFailedCount prometheus.Counter
}

func newMetrics() metrics {
	subsystem := "integrity"

	return metrics{
		SealedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "sealed_count",
			Help:      "Number of files sealed with a sidecar.",
		}),
		SealedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "sealed_bytes",
			Help:      "Total payload bytes hashed while sealing.",
		}),
		CheckedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "checked_count",
			Help:      "Number of range checks that passed.",
		}),
		CheckFailedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "check_failed_count",
			Help:      "Number of range checks that failed.",
		}),
	}
}

// Metrics implements metrics.Collector.
func (s *Service) Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(s.metrics)
}
