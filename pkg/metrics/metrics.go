// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics holds the prometheus conventions shared by every
// service in magenta.
package metrics

import (
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is prefixed before every metric. If it is changed, it must
// be done before any metrics collector is registered.
const Namespace = "magenta"

// Collector is implemented by services that expose prometheus
// collectors.
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields returns every exported field of i that
// is a prometheus.Collector. Services keep their collectors in a plain
// struct and implement Collector with this helper.
func PrometheusCollectorsFromFields(i any) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for n := 0; n < v.NumField(); n++ {
		if !v.Field(n).CanInterface() {
			continue
		}
		if u, ok := v.Field(n).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}
