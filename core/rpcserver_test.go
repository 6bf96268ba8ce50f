/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"context"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SSSOC-CAN/treadmill/auth"
	"github.com/SSSOC-CAN/treadmill/counters"
	"github.com/SSSOC-CAN/treadmill/errors"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/rs/zerolog"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const fatalTestEnv = "TREADMILL_FATAL_TEST"

// runFatalSubprocess re-runs the named test in a child process with fatalTestEnv set and returns its output. The
// child is expected to exit with status 1
func runFatalSubprocess(t *testing.T, testName string) string {
	cmd := exec.Command(os.Args[0], "-test.run=^"+testName+"$")
	cmd.Env = append(os.Environ(), fatalTestEnv+"=1")
	out, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Expected child process to exit with an error, got %v: %s", err, out)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Unexpected exit code %v: %s", exitErr.ExitCode(), out)
	}
	return string(out)
}

// TestStartServer tests that the global handler is created once, served over gRPC and can be stopped
func TestStartServer(t *testing.T) {
	if os.Getenv(fatalTestEnv) != "" {
		t.Skip("running as child process")
	}
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	sched := &fakeScheduler{resumeResult: true}
	aggregator := counters.NewAggregator(&logger)
	t.Run("invalid port", func(t *testing.T) {
		_, err := StartServer(70000, sched, &logger, aggregator)
		if err != errors.ErrInvalidPort {
			t.Errorf("Unexpected error when starting server: %v", err)
		}
	})
	t.Run("port in use", func(t *testing.T) {
		lis, err := net.Listen("tcp", ":0")
		if err != nil {
			t.Fatalf("Could not open listener: %v", err)
		}
		defer lis.Close()
		port := int64(lis.Addr().(*net.TCPAddr).Port)
		if _, err := StartServer(port, sched, &logger, nil); err == nil {
			t.Error("Expected error when port is in use")
		}
	})
	handle, err := StartServer(0, sched, &logger, aggregator)
	if err != nil {
		t.Fatalf("Could not start server: %v", err)
	}
	handler := GlobalHandler()
	if handler == nil {
		t.Fatal("Global handler not set")
	}
	port := strconv.Itoa(handle.Addr().(*net.TCPAddr).Port)
	conn, err := auth.GetClientConn("127.0.0.1", port, "")
	if err != nil {
		t.Fatalf("Could not connect to server: %v", err)
	}
	defer conn.Close()
	client := treadmillrpc.NewTreadmillClient(conn)
	healthClient := healthpb.NewHealthClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t.Run("status over gRPC", func(t *testing.T) {
		resp, err := client.GetStatus(ctx, &treadmillrpc.Empty{})
		if err != nil {
			t.Fatalf("Could not get status: %v", err)
		}
		if resp.Status != treadmillrpc.Status_STARTING {
			t.Errorf("Unexpected status: %v", resp.Status)
		}
		check, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: treadmillrpc.ServiceName})
		if err != nil {
			t.Fatalf("Could not check health: %v", err)
		}
		if check.Status != healthpb.HealthCheckResponse_NOT_SERVING {
			t.Errorf("Unexpected health while starting: %v", check.Status)
		}
	})
	t.Run("global handler is the served handler", func(t *testing.T) {
		GlobalHandler().SetStatus(treadmillrpc.Status_ALIVE)
		resp, err := client.GetStatusDetails(ctx, &treadmillrpc.Empty{})
		if err != nil {
			t.Fatalf("Could not get status details: %v", err)
		}
		if resp.Details != "ALIVE" {
			t.Errorf("Unexpected status details: %v", resp.Details)
		}
		check, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{})
		if err != nil {
			t.Fatalf("Could not check health: %v", err)
		}
		if check.Status != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("Unexpected health while alive: %v", check.Status)
		}
	})
	t.Run("control over gRPC", func(t *testing.T) {
		if _, err := client.SetConfiguration(ctx, &treadmillrpc.SetConfigurationRequest{Key: "k", Value: "v"}); err != nil {
			t.Fatalf("Could not set configuration: %v", err)
		}
		phase := "ramp"
		resp, err := client.Resume2(ctx, &treadmillrpc.ResumeRequest{PhaseName: &phase})
		if err != nil {
			t.Fatalf("Could not resume: %v", err)
		}
		if !resp.Success {
			t.Error("Expected scheduler to be running")
		}
		if !equalCalls(sched.Calls(), []string{"setPhase ramp", "resume"}) {
			t.Errorf("Unexpected scheduler calls: %v", sched.Calls())
		}
		if v := GlobalHandler().GetConfigurationString("k", ""); v != "v" {
			t.Errorf("Unexpected configuration value: %q", v)
		}
	})
	t.Run("counters", func(t *testing.T) {
		resp, err := client.GetCounters(ctx, &treadmillrpc.Empty{})
		if err != nil {
			t.Fatalf("Could not get counters: %v", err)
		}
		if resp.Counters["treadmill_rpc_calls_total.OK.GetStatus"] != 1 {
			t.Errorf("Unexpected counters: %v", resp.Counters)
		}
	})
	t.Run("stop", func(t *testing.T) {
		if err := handle.Stop(); err != nil {
			t.Fatalf("Could not stop server: %v", err)
		}
		select {
		case <-handle.Done():
		default:
			t.Error("Serving goroutine still running after stop")
		}
		if err := handle.Stop(); err != errors.ErrServiceAlreadyStopped {
			t.Errorf("Unexpected error when stopping server twice: %v", err)
		}
	})
}

// TestStartServerTwiceIsFatal tests that a second StartServer call terminates the process
func TestStartServerTwiceIsFatal(t *testing.T) {
	if os.Getenv(fatalTestEnv) != "" {
		logger := zerolog.New(os.Stderr)
		sched := &fakeScheduler{}
		if _, err := StartServer(0, sched, &logger, nil); err != nil {
			t.Fatalf("Could not start server: %v", err)
		}
		_, _ = StartServer(0, sched, &logger, nil)
		return
	}
	out := runFatalSubprocess(t, "TestStartServerTwiceIsFatal")
	if !strings.Contains(out, "Global Treadmill instance was already set") {
		t.Errorf("Unexpected child output: %s", out)
	}
}

// TestGlobalHandlerBeforeStartIsFatal tests that reading the global handler before StartServer terminates the process
func TestGlobalHandlerBeforeStartIsFatal(t *testing.T) {
	if os.Getenv(fatalTestEnv) != "" {
		_ = GlobalHandler()
		return
	}
	out := runFatalSubprocess(t, "TestGlobalHandlerBeforeStartIsFatal")
	if !strings.Contains(out, "No global Treadmill instance set") {
		t.Errorf("Unexpected child output: %s", out)
	}
}

// TestGlobalHandlerFatalUsesSubsystemLogger tests that the fatal message of GlobalHandler goes to the configured RPCS logger
func TestGlobalHandlerFatalUsesSubsystemLogger(t *testing.T) {
	if os.Getenv(fatalTestEnv) != "" {
		logger := zerolog.New(os.Stdout).With().Str("daemon", "treadmilld").Logger()
		UseLogger(&logger)
		_ = GlobalHandler()
		return
	}
	out := runFatalSubprocess(t, "TestGlobalHandlerFatalUsesSubsystemLogger")
	for _, want := range []string{`"subsystem":"RPCS"`, `"daemon":"treadmilld"`, "No global Treadmill instance set"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in child output: %s", want, out)
		}
	}
}
