package main

import (
	"fmt"
	"os"

	"github.com/SSSOC-CAN/treadmill/core"
	"github.com/SSSOC-CAN/treadmill/intercept"
)

// main is the entry point for the treadmill daemon.
func main() {
	config, err := core.InitConfig(false)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := core.InitLogger(&config)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	shutdownInterceptor, err := intercept.InitInterceptor(&log)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err = core.Main(shutdownInterceptor, &config, &log); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
