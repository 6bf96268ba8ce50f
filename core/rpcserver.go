/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04

Copyright (C) 2015-2018 Lightning Labs and The Lightning Network Developers

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package core

import (
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/SSSOC-CAN/treadmill/counters"
	"github.com/SSSOC-CAN/treadmill/errors"
	"github.com/SSSOC-CAN/treadmill/health"
	"github.com/SSSOC-CAN/treadmill/intercept"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	e "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

var (
	instanceMutex sync.Mutex
	instance      atomic.Value // *ServiceHandler, written once under instanceMutex
	rpcLog        atomic.Value // *zerolog.Logger
)

// UseLogger sets the logger the RPCS subsystem reports to, including misuse of the global handler
func UseLogger(logger *zerolog.Logger) {
	rpcLog.Store(&NewSubLogger(logger, "RPCS").SubLogger)
}

// globalLogger returns the RPCS logger, falling back to stderr when UseLogger was never called
func globalLogger() *zerolog.Logger {
	if logger, ok := rpcLog.Load().(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("subsystem", "RPCS").Logger()
	return &logger
}

// ServerHandle represents the running gRPC server of the global ServiceHandler
type ServerHandle struct {
	stopped  int32 // atomic
	server   *grpc.Server
	listener net.Listener
	health   *health.HealthService
	done     chan struct{}
	serveErr error
	logger   *zerolog.Logger
}

// StartServer creates the process wide ServiceHandler for scheduler and serves it over gRPC on port. Calling it
// a second time in the same process is fatal. A listener error is returned and leaves the process uninitialized.
// When aggregator is not nil it backs GetCounters and receives the RPC metrics
func StartServer(port int64, scheduler Scheduler, logger *zerolog.Logger, aggregator *counters.Aggregator, serverOpts ...grpc.ServerOption) (*ServerHandle, error) {
	rpcLogger := &NewSubLogger(logger, "RPCS").SubLogger
	rpcLog.Store(rpcLogger)
	instanceMutex.Lock()
	defer instanceMutex.Unlock()
	if instance.Load() != nil {
		rpcLogger.Fatal().Msg("Global Treadmill instance was already set")
	}
	if port < 0 || port > 65535 {
		return nil, errors.ErrInvalidPort
	}
	listener, err := net.Listen("tcp", ":"+strconv.FormatInt(port, 10))
	if err != nil {
		rpcLogger.Error().Msgf("Couldn't open tcp listener on port %v: %v", port, err)
		return nil, e.Wrapf(err, "could not listen on port %v", port)
	}
	grpcInterceptor := intercept.NewGrpcInterceptor(rpcLogger)
	var counterSource CounterSource
	if aggregator != nil {
		if err := aggregator.Register(grpcInterceptor.Collectors()...); err != nil {
			_ = listener.Close()
			return nil, err
		}
		counterSource = aggregator
	}
	handler := NewServiceHandler(scheduler, counterSource, &NewSubLogger(logger, "TRDM").SubLogger)
	grpcServer := grpc.NewServer(append(grpcInterceptor.CreateGrpcOptions(), serverOpts...)...)
	treadmillrpc.RegisterTreadmillServer(grpcServer, handler)
	healthService := health.NewHealthService(&NewSubLogger(logger, "HLTH").SubLogger, treadmillrpc.ServiceName)
	if err := healthService.RegisterWithGrpcServer(grpcServer); err != nil {
		_ = listener.Close()
		return nil, err
	}
	if err := healthService.Watch(handler.StatusRegister()); err != nil {
		_ = listener.Close()
		return nil, err
	}
	instance.Store(handler)
	handle := &ServerHandle{
		server:   grpcServer,
		listener: listener,
		health:   healthService,
		done:     make(chan struct{}),
		logger:   rpcLogger,
	}
	rpcLogger.Info().Msgf("Treadmill RPC server running on %v", listener.Addr())
	go func() {
		defer close(handle.done)
		handle.serveErr = grpcServer.Serve(listener)
	}()
	return handle, nil
}

// GlobalHandler returns the process wide ServiceHandler. Calling it before StartServer is fatal
func GlobalHandler() *ServiceHandler {
	handler, _ := instance.Load().(*ServiceHandler)
	if handler == nil {
		globalLogger().Fatal().Msg("No global Treadmill instance set")
	}
	return handler
}

// Addr returns the address the server listens on
func (h *ServerHandle) Addr() net.Addr {
	return h.listener.Addr()
}

// HealthService returns the health service registered on the server
func (h *ServerHandle) HealthService() *health.HealthService {
	return h.health
}

// Done is closed once the serving goroutine has returned
func (h *ServerHandle) Done() <-chan struct{} {
	return h.done
}

// Stop marks the service not serving, stops the gRPC server once in-flight calls finish and waits for the
// serving goroutine to return
func (h *ServerHandle) Stop() error {
	if ok := atomic.CompareAndSwapInt32(&h.stopped, 0, 1); !ok {
		return errors.ErrServiceAlreadyStopped
	}
	h.logger.Info().Msg("Stopping Treadmill RPC server...")
	h.health.Shutdown()
	h.server.GracefulStop()
	<-h.done
	if h.serveErr != nil {
		return e.Wrap(h.serveErr, "gRPC server exited with error")
	}
	h.logger.Info().Msg("Treadmill RPC server stopped.")
	return nil
}
