// Package intercept defines objects and related functions to monitor requests to shutdown the application
// and to wrap gRPC calls with logging, metrics and panic recovery
package intercept

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	bg "github.com/SSSOCPaulCote/blunderguard"
	"github.com/rs/zerolog"
)

const (
	ErrInterceptorAlreadyStarted = bg.Error("interceptor already initialized")
)

var (
	started int32
)

// Interceptor is the object controlling application shutdown requests
type Interceptor struct {
	interruptChannel       chan os.Signal
	shutdownChannel        chan struct{}
	shutdownRequestChannel chan struct{}
	quit                   chan struct{}
	Logger                 *zerolog.Logger
}

// mainInterruptHandler listens for SIGINT (Ctrl+C) signals on the interruptChannel and shutdown requests on the
// shutdownRequestChannel.
func (interceptor *Interceptor) mainInterruptHandler() {
	defer atomic.StoreInt32(&started, 0)
	var isShutdown bool
	shutdown := func() {
		if isShutdown {
			interceptor.Logger.Info().Msg("Already shutting down...")
			return
		}
		isShutdown = true
		interceptor.Logger.Info().Msg("Shutting down...")
		close(interceptor.quit)
	}
	for {
		select {
		case sig := <-interceptor.interruptChannel:
			interceptor.Logger.Info().Msgf("Received %v", sig)
			shutdown()
		case <-interceptor.shutdownRequestChannel:
			interceptor.Logger.Info().Msg("Received shutdown request.")
			shutdown()
		case <-interceptor.quit:
			interceptor.Logger.Info().Msg("Gracefully shutting down.")
			close(interceptor.shutdownChannel)
			signal.Stop(interceptor.interruptChannel)
			return
		}
	}
}

// RequestShutdown initiates a graceful shutdown from the application.
func (interceptor *Interceptor) RequestShutdown() {
	select {
	case interceptor.shutdownRequestChannel <- struct{}{}:
	case <-interceptor.quit:
	}
}

// ShutdownChannel returns the channel that will be closed once the main
// interrupt handler has exited.
func (interceptor *Interceptor) ShutdownChannel() <-chan struct{} {
	return interceptor.shutdownChannel
}

// InitInterceptor initializes the shutdown and interrupt interceptor. Only one interceptor may run at a time
func InitInterceptor(logger *zerolog.Logger) (*Interceptor, error) {
	if !atomic.CompareAndSwapInt32(&started, 0, 1) {
		return nil, ErrInterceptorAlreadyStarted
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	interceptor := &Interceptor{
		interruptChannel:       make(chan os.Signal, 1),
		shutdownChannel:        make(chan struct{}),
		shutdownRequestChannel: make(chan struct{}),
		quit:                   make(chan struct{}),
		Logger:                 logger,
	}
	signalsToCatch := []os.Signal{
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
	signal.Notify(interceptor.interruptChannel, signalsToCatch...)
	go interceptor.mainInterruptHandler()
	return interceptor, nil
}
