package health

import (
	"sync"

	"github.com/SSSOC-CAN/treadmill/state"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	bg "github.com/SSSOCPaulCote/blunderguard"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ErrAlreadyWatching = bg.Error("health service already watching a status source")
	ErrNilGrpcServer   = bg.Error("cannot register health service with a nil gRPC server")
)

// StatusSource is anything whose status changes can be subscribed to
type StatusSource interface {
	Subscribe(state.StatusListener) func()
}

// HealthService serves the standard gRPC health checking protocol from a service status
type HealthService struct {
	sync.Mutex
	server   *grpchealth.Server
	services []string
	logger   *zerolog.Logger
	unsub    func()
}

// NewHealthService instantiates a new HealthService reporting for the overall server and the named services
func NewHealthService(logger *zerolog.Logger, services ...string) *HealthService {
	return &HealthService{
		server:   grpchealth.NewServer(),
		services: append([]string{""}, services...),
		logger:   logger,
	}
}

// RegisterWithGrpcServer registers the health service with the gRPC server
func (h *HealthService) RegisterWithGrpcServer(grpcServer *grpc.Server) error {
	if grpcServer == nil {
		return ErrNilGrpcServer
	}
	healthpb.RegisterHealthServer(grpcServer, h.server)
	return nil
}

// ServingStatus maps a service status onto the health protocol. Only ALIVE and WARNING are serving
func ServingStatus(s treadmillrpc.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch s {
	case treadmillrpc.Status_ALIVE, treadmillrpc.Status_WARNING:
		return healthpb.HealthCheckResponse_SERVING
	default:
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
}

// Watch mirrors every status change of src into the health server
func (h *HealthService) Watch(src StatusSource) error {
	h.Lock()
	defer h.Unlock()
	if h.unsub != nil {
		return ErrAlreadyWatching
	}
	h.unsub = src.Subscribe(func(s treadmillrpc.Status) {
		servingStatus := ServingStatus(s)
		h.logger.Debug().Msgf("Service status %v, health %v", s, servingStatus)
		for _, name := range h.services {
			h.server.SetServingStatus(name, servingStatus)
		}
	})
	return nil
}

// Shutdown sets every service to NOT_SERVING and ignores later status changes
func (h *HealthService) Shutdown() {
	h.Lock()
	defer h.Unlock()
	if h.unsub != nil {
		h.unsub()
		h.unsub = nil
	}
	h.server.Shutdown()
}
