package api

import (
	"context"

	proxy "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
)

// RestProxyService is a gRPC service which exposes its methods as HTTP/JSON routes on the REST proxy. The routes
// call back into the service through a client connection dialed to restProxyDest
type RestProxyService interface {
	RegisterWithRestProxy(ctx context.Context, mux *proxy.ServeMux, restDialOpts []grpc.DialOption, restProxyDest string) error
}
