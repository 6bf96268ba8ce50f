/*
Copyright (C) 2015-2018 Lightning Labs and The Lightning Network Developers

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SSSOC-CAN/treadmill/auth"
	"github.com/SSSOC-CAN/treadmill/intercept"
	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/SSSOC-CAN/treadmill/utils"
	"github.com/urfave/cli"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var (
	defaultRPCAddr         = "localhost"
	defaultRPCPort         = "7777"
	defaultTLSCertFilename = "tls.cert"
	defaultTreadmillDir    = utils.AppDataDir("treadmill", false)
	defaultTLSCertPath     = filepath.Join(defaultTreadmillDir, defaultTLSCertFilename)
	contextKey             = "ctx"
)

type Args struct {
	RPCAddr     string
	RPCPort     string
	TLSCertPath string
}

// fatal exits the process and prints out error information
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[treadmillcli] %v\n", err)
	os.Exit(1)
}

// extractArgs extracts the arguments inputted to the treadmillcli command
func extractArgs(ctx *cli.Context) *Args {
	args := &Args{
		RPCAddr:     ctx.GlobalString("rpc_addr"),
		RPCPort:     ctx.GlobalString("rpc_port"),
		TLSCertPath: ctx.GlobalString("tlscertpath"),
	}
	// plaintext unless a certificate was asked for or the default one exists
	if !ctx.GlobalIsSet("tlscertpath") && !utils.FileExists(args.TLSCertPath) {
		args.TLSCertPath = ""
	}
	return args
}

// getConn returns the gRPC client connection to the daemon as well as a cleanup function
func getConn(ctx *cli.Context) (*grpc.ClientConn, func(), error) {
	args := extractArgs(ctx)
	conn, err := auth.GetClientConn(args.RPCAddr, args.RPCPort, args.TLSCertPath)
	if err != nil {
		return nil, nil, err
	}
	cleanUp := func() {
		conn.Close()
	}
	return conn, cleanUp, nil
}

// getTreadmillClient returns the TreadmillClient instance from the treadmillrpc package as well as a cleanup function
func getTreadmillClient(ctx *cli.Context) (treadmillrpc.TreadmillClient, func(), error) {
	conn, cleanUp, err := getConn(ctx)
	if err != nil {
		return nil, nil, err
	}
	return treadmillrpc.NewTreadmillClient(conn), cleanUp, nil
}

// getHealthClient returns the standard gRPC health client as well as a cleanup function
func getHealthClient(ctx *cli.Context) (healthpb.HealthClient, func(), error) {
	conn, cleanUp, err := getConn(ctx)
	if err != nil {
		return nil, nil, err
	}
	return healthpb.NewHealthClient(conn), cleanUp, nil
}

// getContext returns the context commands run their RPCs in
func getContext(ctx *cli.Context) context.Context {
	if ctxc, ok := ctx.App.Metadata[contextKey].(context.Context); ok {
		return ctxc
	}
	return context.Background()
}

// newApp builds the treadmillcli application. RPCs are cancelled when ctxc is
func newApp(ctxc context.Context) *cli.App {
	app := cli.NewApp()
	app.Name = "treadmillcli"
	app.Usage = "Control panel for the Treadmill load generation daemon (treadmilld)"
	app.Version = utils.AppVersion
	app.Metadata = map[string]interface{}{contextKey: ctxc}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rpc_addr",
			Value: defaultRPCAddr,
			Usage: "The host address of the Treadmill daemon (exclude the port)",
		},
		cli.StringFlag{
			Name:  "rpc_port",
			Value: defaultRPCPort,
			Usage: "The host port of the Treadmill daemon",
		},
		cli.StringFlag{
			Name:      "tlscertpath",
			Value:     defaultTLSCertPath,
			Usage:     "The path to treadmilld's TLS certificate. Plaintext is used when the default certificate does not exist",
			TakesFile: true,
		},
	}
	app.Commands = []cli.Command{
		statusCommand,
		statusDetailsCommand,
		aliveSinceCommand,
		countersCommand,
		healthCommand,
		pauseCommand,
		resumeCommand,
		setRpsCommand,
		setMaxOutstandingCommand,
		rateCommand,
		getConfigCommand,
		setConfigCommand,
	}
	return app
}

// main is the entrypoint for treadmillcli
func main() {
	shutdownInterceptor, err := intercept.InitInterceptor(nil)
	if err != nil {
		fatal(err)
	}
	ctxc, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdownInterceptor.ShutdownChannel()
		cancel()
	}()
	if err := newApp(ctxc).Run(os.Args); err != nil {
		fatal(err)
	}
}
