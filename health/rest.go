package health

import (
	"context"
	"net/http"

	proxy "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

var healthMarshaler = &proxy.JSONPb{
	MarshalOptions: protojson.MarshalOptions{
		UseProtoNames:   true,
		EmitUnpopulated: true,
	},
}

// RegisterWithRestProxy adds GET /v1/health to the REST proxy. The optional service query parameter selects the
// checked service, the overall service is checked otherwise
func (h *HealthService) RegisterWithRestProxy(ctx context.Context, mux *proxy.ServeMux, restDialOpts []grpc.DialOption, restProxyDest string) error {
	conn, err := grpc.DialContext(ctx, restProxyDest, restDialOpts...)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()
	client := healthpb.NewHealthClient(conn)
	return mux.HandlePath(http.MethodGet, "/v1/health", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resp, err := client.Check(r.Context(), &healthpb.HealthCheckRequest{Service: r.URL.Query().Get("service")})
		if err != nil {
			proxy.HTTPError(r.Context(), mux, healthMarshaler, w, r, err)
			return
		}
		buf, err := healthMarshaler.Marshal(resp)
		if err != nil {
			proxy.HTTPError(r.Context(), mux, healthMarshaler, w, r, err)
			return
		}
		w.Header().Set("Content-Type", healthMarshaler.ContentType(resp))
		_, _ = w.Write(buf)
	})
}
