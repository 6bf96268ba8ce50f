/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package intercept

import (
	"context"
	"path"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GrpcInterceptor struct is a data structure with attributes relevant to creating the gRPC interceptor
type GrpcInterceptor struct {
	log     *zerolog.Logger
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewGrpcInterceptor instantiates a new GrpcInterceptor struct
func NewGrpcInterceptor(log *zerolog.Logger) *GrpcInterceptor {
	return &GrpcInterceptor{
		log: log,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treadmill",
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Number of RPC calls by method and status code.",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "treadmill",
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "Duration of RPC calls by method.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"method"}),
	}
}

// Collectors returns the prometheus collectors fed by the interceptors
func (i *GrpcInterceptor) Collectors() []prometheus.Collector {
	return []prometheus.Collector{i.calls, i.latency}
}

// CreateGrpcOptions creates a array of gRPC interceptors
func (i *GrpcInterceptor) CreateGrpcOptions() []grpc.ServerOption {
	recoveryOpt := grpc_recovery.WithRecoveryHandler(i.recoverPanic)
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logUnaryServerInterceptor(i.log),
		i.metricsUnaryServerInterceptor(),
		grpc_recovery.UnaryServerInterceptor(recoveryOpt),
	}
	strmInterceptors := []grpc.StreamServerInterceptor{
		logStreamServerInterceptor(i.log),
		i.metricsStreamServerInterceptor(),
		grpc_recovery.StreamServerInterceptor(recoveryOpt),
	}
	chainedUnary := grpc_middleware.WithUnaryServerChain(
		unaryInterceptors...,
	)
	chainedStream := grpc_middleware.WithStreamServerChain(
		strmInterceptors...,
	)
	return []grpc.ServerOption{chainedUnary, chainedStream}
}

// recoverPanic turns a panic in a handler into an Internal error instead of crashing the daemon
func (i *GrpcInterceptor) recoverPanic(p interface{}) error {
	i.log.Error().Msgf("recovered from panic in RPC handler: %v", p)
	return status.Errorf(codes.Internal, "internal error: %v", p)
}

func (i *GrpcInterceptor) observe(fullMethod string, start time.Time, err error) {
	method := path.Base(fullMethod)
	i.calls.WithLabelValues(method, status.Code(err).String()).Inc()
	i.latency.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// metricsUnaryServerInterceptor counts unary calls and records their duration
func (i *GrpcInterceptor) metricsUnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		i.observe(info.FullMethod, start, err)
		return resp, err
	}
}

// metricsStreamServerInterceptor counts streaming calls and records their duration
func (i *GrpcInterceptor) metricsStreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		i.observe(info.FullMethod, start, err)
		return err
	}
}

// logUnaryServerInterceptor is a simple UnaryServerInterceptor that will
// automatically log any errors that occur when serving a client's unary
// request.
func logUnaryServerInterceptor(log *zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			log.Error().Msgf("[%v]: %v", info.FullMethod, err)
		} else {
			log.Trace().Msgf("[%v]: ok", info.FullMethod)
		}
		return resp, err
	}
}

// logStreamServerInterceptor is a simple StreamServerInterceptor that
// will log any errors that occur while processing a client or server streaming
// RPC.
func logStreamServerInterceptor(log *zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err != nil {
			log.Error().Msgf("[%v]: %v", info.FullMethod, err)
		}
		return err
	}
}
