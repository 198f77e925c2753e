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

// Package main implements the collections server.  It serves a B-tree, a
// red-black tree and an XOR linked list over gRPC and exposes the operation
// metrics over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/9rum/collections/engine"
)

func main() {
	port := flag.Int("p", 50051, "The server port")
	metricsPort := flag.Int("metrics", 9090, "The metrics port, 0 to disable")
	degree := flag.Int("degree", 3, "The minimum degree of the B-tree")
	flag.Parse()
	defer glog.Flush()

	if *degree < 2 {
		glog.Fatalf("invalid minimum degree: %d", *degree)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, *port, *metricsPort, *degree); err != nil {
		glog.Fatalf("failed to serve: %v", err)
	}
}

func serve(ctx context.Context, port, metricsPort, degree int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	server := newServer(degree)
	glog.Infof("server listening at %v", lis.Addr())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		glog.Info("shutting down")
		server.GracefulStop()
		return nil
	})

	if metricsPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metrics := &http.Server{
			Addr:    fmt.Sprintf(":%d", metricsPort),
			Handler: mux,
		}
		g.Go(func() error {
			glog.Infof("metrics listening at %s", metrics.Addr)
			if err := metrics.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return metrics.Shutdown(context.Background())
		})
	}

	return g.Wait()
}

func newServer(degree int) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			engine.UnaryServerInterceptor(),
			grpc_recovery.UnaryServerInterceptor(),
		),
	)

	engine.Register(server, degree)

	return server
}
