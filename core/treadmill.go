/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"github.com/SSSOC-CAN/treadmill/api"
	"github.com/SSSOC-CAN/treadmill/auth"
	"github.com/SSSOC-CAN/treadmill/cert"
	"github.com/SSSOC-CAN/treadmill/counters"
	"github.com/SSSOC-CAN/treadmill/intercept"
	"github.com/SSSOC-CAN/treadmill/scheduler"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// Main is the true entry point for Treadmill. It's called in a nested manner for proper defer execution
func Main(interceptor *intercept.Interceptor, cfg *Config, logger *zerolog.Logger) error {
	UseLogger(logger)
	aggregator := counters.NewAggregator(logger)

	// Scheduler starts paused until someone resumes it
	sched := scheduler.NewScheduler(&NewSubLogger(logger, "SCHD").SubLogger, cfg.InitialRps, cfg.InitialMaxOutstanding)
	if cfg.InitialPhase != "" {
		sched.SetPhase(cfg.InitialPhase)
	}
	if err := aggregator.Register(sched.Collectors()...); err != nil {
		logger.Error().Msgf("Could not register scheduler metrics: %v", err)
		return err
	}

	// Get TLS config
	logger.Info().Msg("Loading TLS configuration...")
	if cfg.TLSCertPath != "" {
		generated, err := cert.EnsureCertPair("treadmill autogenerated cert", cfg.TLSCertPath, cfg.TLSKeyPath, cfg.ExtraIPAddr)
		if err != nil {
			logger.Error().Msgf("Could not load TLS certificate: %v", err)
			return err
		}
		if generated {
			logger.Info().Msgf("Generated TLS certificate %s", cfg.TLSCertPath)
		}
	}
	serverOpts, err := auth.ServerOptions(cfg.TLSCertPath, cfg.TLSKeyPath)
	if err != nil {
		logger.Error().Msgf("Could not load TLS configuration: %v", err)
		return err
	}
	restTransport, err := auth.TransportDialOption(cfg.TLSCertPath)
	if err != nil {
		logger.Error().Msgf("Could not load TLS configuration: %v", err)
		return err
	}
	if len(serverOpts) == 0 {
		logger.Warn().Msg("TLS disabled, serving plaintext gRPC")
	}

	// Starting gRPC server
	handle, err := StartServer(cfg.GrpcPort, sched, logger, aggregator, serverOpts...)
	if err != nil {
		logger.Error().Msgf("Could not start RPC server: %v", err)
		return err
	}
	handler := GlobalHandler()
	defer func() {
		handler.SetStatus(treadmillrpc.Status_STOPPING)
		sched.Pause()
		if err := handle.Stop(); err != nil {
			logger.Error().Msgf("Could not stop RPC server: %v", err)
		}
		handler.SetStatus(treadmillrpc.Status_STOPPED)
		logger.Info().Msg("Treadmill stopped.")
	}()

	// Starting REST proxy
	_, stopProxy, err := StartRestProxy(
		handle.Addr().String(),
		cfg.RestPort,
		[]api.RestProxyService{
			handler,
			handle.HealthService(),
		},
		[]grpc.DialOption{restTransport},
		aggregator.Registry(),
		&NewSubLogger(logger, "REST").SubLogger,
	)
	if err != nil {
		return err
	}
	defer stopProxy()

	handler.SetStatus(treadmillrpc.Status_ALIVE)
	logger.Info().Msg("Treadmill started successfully and ready to use")
	<-interceptor.ShutdownChannel()
	return nil
}
