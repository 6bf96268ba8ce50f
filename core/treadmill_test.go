/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/SSSOC-CAN/treadmill/intercept"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/rs/zerolog"
)

// TestMainLifecycle runs the daemon in a child process, since it owns the global handler, and checks that it goes
// ALIVE and ends STOPPED after a shutdown request
func TestMainLifecycle(t *testing.T) {
	if os.Getenv(fatalTestEnv) == "" {
		cmd := exec.Command(os.Args[0], "-test.run=^TestMainLifecycle$", "-test.v")
		cmd.Env = append(os.Environ(), fatalTestEnv+"=1")
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("Daemon child process failed: %v: %s", err, out)
		}
		if !strings.Contains(string(out), "Treadmill stopped.") {
			t.Errorf("Unexpected child output: %s", out)
		}
		return
	}
	dir, err := ioutil.TempDir("", "treadmill-main-")
	if err != nil {
		t.Fatalf("Could not create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)
	cfg := Config{
		LogFileDir:            dir,
		MaxLogFileSize:        10,
		LogLevel:              "INFO",
		InitialRps:            10,
		InitialMaxOutstanding: 2,
		InitialPhase:          "warmup",
	}
	logger := zerolog.New(os.Stdout)
	interceptor, err := intercept.InitInterceptor(&logger)
	if err != nil {
		t.Fatalf("Could not initialize interceptor: %v", err)
	}
	mainErr := make(chan error, 1)
	go func() {
		mainErr <- Main(interceptor, &cfg, &logger)
	}()
	deadline := time.Now().Add(10 * time.Second)
	for {
		if handler, ok := instance.Load().(*ServiceHandler); ok && handler.StatusRegister().GetStatus() == treadmillrpc.Status_ALIVE {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Daemon did not become alive in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
	interceptor.RequestShutdown()
	select {
	case err := <-mainErr:
		if err != nil {
			t.Fatalf("Main returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Main did not return after shutdown")
	}
	if status := GlobalHandler().StatusRegister().GetStatus(); status != treadmillrpc.Status_STOPPED {
		t.Errorf("Unexpected final status: %v", status)
	}
}
