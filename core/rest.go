/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SSSOC-CAN/treadmill/api"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/SSSOC-CAN/treadmill/utils"
	proxy "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var restMarshaler = &proxy.JSONBuiltin{}

// restHandler adapts a call on the Treadmill client into a REST proxy handler
type restHandler func(ctx context.Context, client treadmillrpc.TreadmillClient, r *http.Request, pathParams map[string]string) (interface{}, error)

// restRoute binds a method and path pattern to a handler
type restRoute struct {
	method  string
	pattern string
	handle  restHandler
}

// parseInt32Param reads a path parameter as an int32
func parseInt32Param(pathParams map[string]string, name string) (int32, error) {
	v, err := strconv.ParseInt(pathParams[name], 10, 32)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s %q", name, pathParams[name])
	}
	return int32(v), nil
}

var treadmillRestRoutes = []restRoute{
	{http.MethodGet, "/v1/status", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.GetStatus(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodGet, "/v1/status/details", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.GetStatusDetails(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodGet, "/v1/alivesince", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.AliveSince(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodGet, "/v1/counters", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.GetCounters(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodPost, "/v1/pause", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.Pause(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodPost, "/v1/resume", func(ctx context.Context, c treadmillrpc.TreadmillClient, r *http.Request, _ map[string]string) (interface{}, error) {
		if phase, ok := r.URL.Query()["phase"]; ok && len(phase) > 0 {
			return c.Resume2(ctx, &treadmillrpc.ResumeRequest{PhaseName: &phase[0]})
		}
		return c.Resume(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodPost, "/v1/rps/{rps}", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, pathParams map[string]string) (interface{}, error) {
		rps, err := parseInt32Param(pathParams, "rps")
		if err != nil {
			return nil, err
		}
		return c.SetRps(ctx, &treadmillrpc.SetRpsRequest{Rps: rps})
	}},
	{http.MethodPost, "/v1/maxoutstanding/{max}", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, pathParams map[string]string) (interface{}, error) {
		max, err := parseInt32Param(pathParams, "max")
		if err != nil {
			return nil, err
		}
		return c.SetMaxOutstanding(ctx, &treadmillrpc.SetMaxOutstandingRequest{MaxOutstanding: max})
	}},
	{http.MethodGet, "/v1/rate", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, _ map[string]string) (interface{}, error) {
		return c.GetRate(ctx, &treadmillrpc.Empty{})
	}},
	{http.MethodGet, "/v1/configuration/{key}", func(ctx context.Context, c treadmillrpc.TreadmillClient, _ *http.Request, pathParams map[string]string) (interface{}, error) {
		return c.GetConfiguration(ctx, &treadmillrpc.GetConfigurationRequest{Key: pathParams["key"]})
	}},
	{http.MethodPost, "/v1/configuration/{key}", func(ctx context.Context, c treadmillrpc.TreadmillClient, r *http.Request, pathParams map[string]string) (interface{}, error) {
		value, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "could not read request body: %v", err)
		}
		return c.SetConfiguration(ctx, &treadmillrpc.SetConfigurationRequest{Key: pathParams["key"], Value: string(value)})
	}},
}

// RegisterWithRestProxy registers the Treadmill routes with the REST proxy
func (h *ServiceHandler) RegisterWithRestProxy(ctx context.Context, mux *proxy.ServeMux, restDialOpts []grpc.DialOption, restProxyDest string) error {
	conn, err := grpc.DialContext(ctx, restProxyDest, restDialOpts...)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	client := treadmillrpc.NewTreadmillClient(conn)
	for _, route := range treadmillRestRoutes {
		handle := route.handle
		err := mux.HandlePath(route.method, route.pattern, func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			resp, err := handle(r.Context(), client, r, pathParams)
			if err != nil {
				proxy.HTTPError(r.Context(), mux, restMarshaler, w, r, err)
				return
			}
			buf, err := restMarshaler.Marshal(resp)
			if err != nil {
				proxy.HTTPError(r.Context(), mux, restMarshaler, w, r, status.Error(codes.Internal, err.Error()))
				return
			}
			w.Header().Set("Content-Type", restMarshaler.ContentType(resp))
			_, _ = w.Write(buf)
		})
		if err != nil {
			return err
		}
	}
	h.logger.Debug().Msgf("Registered %v routes with the REST proxy", len(treadmillRestRoutes))
	return nil
}

// restProxyDestination turns the address the gRPC server listens on into one the proxy can dial
func restProxyDestination(grpcAddr string) (string, error) {
	_, port, err := net.SplitHostPort(grpcAddr)
	if err != nil {
		return "", err
	}
	dest, err := utils.NormalizeAddresses([]string{grpcAddr}, port, net.ResolveTCPAddr)
	if err != nil {
		return "", err
	}
	restProxyDest := dest[0].String()
	switch {
	case strings.HasPrefix(restProxyDest, "0.0.0.0:"):
		restProxyDest = strings.Replace(restProxyDest, "0.0.0.0", "127.0.0.1", 1)
	case strings.HasPrefix(restProxyDest, "[::]:"):
		// unspecified listeners are dual stack
		restProxyDest = strings.Replace(restProxyDest, "[::]", "127.0.0.1", 1)
	}
	return restProxyDest, nil
}

// StartRestProxy serves the routes of services on restPort, forwarding them to the gRPC server at grpcAddr. When
// registry is not nil its metrics are served on /metrics. It returns the address of the proxy and a function which
// stops it
func StartRestProxy(grpcAddr string, restPort int64, services []api.RestProxyService, restDialOpts []grpc.DialOption, registry *prometheus.Registry, logger *zerolog.Logger) (net.Addr, func(), error) {
	restProxyDest, err := restProxyDestination(grpcAddr)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	mux := proxy.NewServeMux(proxy.WithMarshalerOption(proxy.MIMEWildcard, restMarshaler))
	for _, s := range services {
		if err := s.RegisterWithRestProxy(ctx, mux, restDialOpts, restProxyDest); err != nil {
			cancel()
			return nil, nil, err
		}
	}
	httpMux := http.NewServeMux()
	if registry != nil {
		httpMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	httpMux.Handle("/", mux)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", restPort))
	if err != nil {
		cancel()
		logger.Error().Msgf("REST proxy unable to listen on port %v: %v", restPort, err)
		return nil, nil, err
	}
	srv := &http.Server{Handler: httpMux}
	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info().Msgf("REST proxy started and listening at %s", lis.Addr())
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			logger.Error().Msg(err.Error())
		}
	}()
	shutdown := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Msgf("Error shutting down REST proxy: %v", err)
		}
		<-done
		cancel()
		logger.Info().Msg("REST proxy stopped.")
	}
	return lis.Addr(), shutdown, nil
}
