// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "collections_operations_total",
	Help: "Number of engine operations served, by method and status code",
}, []string{"method", "code"})

var operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "collections_operation_duration_seconds",
	Help:    "Time spent serving engine operations",
	Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
}, []string{"method"})

var engineLength = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "collections_engine_length",
	Help: "Number of elements held by each served engine",
}, []string{"service"})

// UnaryServerInterceptor returns a new unary server interceptor that counts
// and times every call.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		operationDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		operationsTotal.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}
