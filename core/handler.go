/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"context"

	"github.com/SSSOC-CAN/treadmill/state"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/rs/zerolog"
)

// Pausable is a scheduler which can be paused and resumed
type Pausable interface {
	Pause()
	Resume() bool
	IsRunning() bool
}

// RateControllable is a scheduler whose rate and outstanding request cap can be changed
type RateControllable interface {
	SetRps(int32)
	GetRps() int32
	SetMaxOutstandingRequests(int32)
	GetMaxOutstandingRequests() int32
}

// PhaseSettable is a scheduler which tracks the current load phase
type PhaseSettable interface {
	SetPhase(string)
}

// Scheduler is everything the ServiceHandler needs from the load scheduler. Implementations must be safe for
// concurrent use, the handler does no locking around scheduler calls
type Scheduler interface {
	Pausable
	RateControllable
	PhaseSettable
}

// CounterSource provides the counters returned by GetCounters
type CounterSource interface {
	GetCounters() map[string]int64
}

// ServiceHandler implements the Treadmill control surface on top of a scheduler
type ServiceHandler struct {
	treadmillrpc.UnimplementedTreadmillServer
	status    *state.StatusRegister
	config    *state.ConfigStore
	scheduler Scheduler
	counters  CounterSource
	logger    *zerolog.Logger
}

// Compile time check to ensure ServiceHandler implements treadmillrpc.TreadmillServer
var _ treadmillrpc.TreadmillServer = (*ServiceHandler)(nil)

// NewServiceHandler creates a ServiceHandler in the STARTING state. counters may be nil
func NewServiceHandler(scheduler Scheduler, counters CounterSource, logger *zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{
		status:    state.NewStatusRegister(),
		config:    state.NewConfigStore(logger),
		scheduler: scheduler,
		counters:  counters,
		logger:    logger,
	}
}

// StatusRegister returns the status register of the handler
func (h *ServiceHandler) StatusRegister() *state.StatusRegister {
	return h.status
}

// SetStatus changes the service status
func (h *ServiceHandler) SetStatus(status treadmillrpc.Status) {
	h.logger.Info().Msgf("TreadmillHandler::setStatus to %v", status)
	h.status.SetStatus(status)
}

// GetStatus returns the current service status
func (h *ServiceHandler) GetStatus(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.StatusResponse, error) {
	return &treadmillrpc.StatusResponse{Status: h.status.GetStatus()}, nil
}

// GetStatusDetails returns the name of the current service status
func (h *ServiceHandler) GetStatusDetails(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.StatusDetailsResponse, error) {
	return &treadmillrpc.StatusDetailsResponse{Details: h.status.GetStatusDetails()}, nil
}

// AliveSince returns the unix time at which the handler was created
func (h *ServiceHandler) AliveSince(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.AliveSinceResponse, error) {
	return &treadmillrpc.AliveSinceResponse{AliveSince: h.status.AliveSince()}, nil
}

// GetCounters returns the counters of the counter source
func (h *ServiceHandler) GetCounters(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.CountersResponse, error) {
	counters := map[string]int64{}
	if h.counters != nil {
		counters = h.counters.GetCounters()
	}
	return &treadmillrpc.CountersResponse{Counters: counters}, nil
}

// Pause pauses the scheduler and then clears the configuration. Always succeeds
func (h *ServiceHandler) Pause(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.BoolResponse, error) {
	h.logger.Info().Msg("TreadmillHandler::pause")
	h.scheduler.Pause()
	h.config.Clear()
	h.logger.Info().Msg("TreadmillHandler::pause configuration cleared")
	return &treadmillrpc.BoolResponse{Success: true}, nil
}

// Resume resumes the scheduler and returns its running state
func (h *ServiceHandler) Resume(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.BoolResponse, error) {
	h.logger.Info().Msg("TreadmillHandler::resume")
	return &treadmillrpc.BoolResponse{Success: h.scheduler.Resume()}, nil
}

// Resume2 sets the scheduler phase and then resumes it. A missing request or phase uses UNKNOWN_PHASE
func (h *ServiceHandler) Resume2(_ context.Context, req *treadmillrpc.ResumeRequest) (*treadmillrpc.ResumeResponse, error) {
	phaseName := req.GetPhaseName()
	h.logger.Info().Msgf("TreadmillHandler::resume2 with phase %s", phaseName)
	h.scheduler.SetPhase(phaseName)
	running := h.scheduler.Resume()
	if running {
		h.logger.Info().Msg("Scheduler is currently Running")
	} else {
		h.logger.Info().Msg("Scheduler is currently Not Running")
	}
	return &treadmillrpc.ResumeResponse{Success: running}, nil
}

// SetRps forwards the target requests per second to the scheduler
func (h *ServiceHandler) SetRps(_ context.Context, req *treadmillrpc.SetRpsRequest) (*treadmillrpc.Empty, error) {
	var rps int32
	if req != nil {
		rps = req.Rps
	}
	h.logger.Info().Msgf("TreadmillHandler::setRps to %d", rps)
	h.scheduler.SetRps(rps)
	return &treadmillrpc.Empty{}, nil
}

// SetMaxOutstanding forwards the outstanding request cap to the scheduler
func (h *ServiceHandler) SetMaxOutstanding(_ context.Context, req *treadmillrpc.SetMaxOutstandingRequest) (*treadmillrpc.Empty, error) {
	var max int32
	if req != nil {
		max = req.MaxOutstanding
	}
	h.logger.Info().Msgf("TreadmillHandler::setMaxOutstanding to %d", max)
	h.scheduler.SetMaxOutstandingRequests(max)
	return &treadmillrpc.Empty{}, nil
}

// GetRate returns the scheduler running state, rate and outstanding request cap
func (h *ServiceHandler) GetRate(_ context.Context, _ *treadmillrpc.Empty) (*treadmillrpc.RateResponse, error) {
	return &treadmillrpc.RateResponse{
		SchedulerRunning: h.scheduler.IsRunning(),
		Rps:              h.scheduler.GetRps(),
		MaxOutstanding:   h.scheduler.GetMaxOutstandingRequests(),
	}, nil
}

// GetConfiguration returns the configuration value for the key. Missing keys and empty values both come back as
// an empty string
func (h *ServiceHandler) GetConfiguration(_ context.Context, req *treadmillrpc.GetConfigurationRequest) (*treadmillrpc.GetConfigurationResponse, error) {
	var key string
	if req != nil {
		key = req.Key
	}
	h.logger.Info().Msgf("TreadmillHandler::getConfiguration: %s", key)
	if value, ok := h.config.Get(key); ok {
		h.logger.Info().Msgf("returning %s = %s", key, value)
		return &treadmillrpc.GetConfigurationResponse{Value: value}, nil
	}
	return &treadmillrpc.GetConfigurationResponse{}, nil
}

// SetConfiguration stores a configuration value, overwriting any previous value
func (h *ServiceHandler) SetConfiguration(_ context.Context, req *treadmillrpc.SetConfigurationRequest) (*treadmillrpc.Empty, error) {
	if req == nil {
		return &treadmillrpc.Empty{}, nil
	}
	h.logger.Info().Msgf("TreadmillHandler::setConfiguration: %s = %s", req.Key, req.Value)
	h.config.Set(req.Key, req.Value)
	return &treadmillrpc.Empty{}, nil
}

// GetConfigurationValue returns the configuration value for key as an unsigned integer, or defaultValue if it is
// missing or does not parse
func (h *ServiceHandler) GetConfigurationValue(key string, defaultValue uint32) uint32 {
	return h.config.GetUint32(key, defaultValue)
}

// GetConfigurationString returns the configuration value for key or defaultValue if it is missing
func (h *ServiceHandler) GetConfigurationString(key, defaultValue string) string {
	return h.config.GetString(key, defaultValue)
}
