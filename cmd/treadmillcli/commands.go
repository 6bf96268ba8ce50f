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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
	"github.com/urfave/cli"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// printRespJSON will convert a treadmillrpc response into indented JSON and print it
func printRespJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		return fmt.Errorf("Unable to decode response: %v", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

// printProtoJSON will convert a proto response as a string and print it
func printProtoJSON(ctx *cli.Context, resp proto.Message) {
	jsonMarshaler := &protojson.MarshalOptions{
		Multiline:       true,
		UseProtoNames:   true,
		EmitUnpopulated: true,
		Indent:          "    ",
	}
	fmt.Fprintln(ctx.App.Writer, jsonMarshaler.Format(resp))
}

// parseInt32Arg parses the positional argument at index i
func parseInt32Arg(ctx *cli.Context, i int, name string) (int32, error) {
	if ctx.NArg() <= i {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	v, err := strconv.ParseInt(ctx.Args().Get(i), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", name, ctx.Args().Get(i), err)
	}
	return int32(v), nil
}

var statusCommand = cli.Command{
	Name:   "status",
	Usage:  "Returns the status of the daemon",
	Action: getStatus,
}

// getStatus is the proxy command between treadmillcli and gRPC equivalent.
func getStatus(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.GetStatus(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var statusDetailsCommand = cli.Command{
	Name:   "status-details",
	Usage:  "Returns a human readable description of the daemon status",
	Action: statusDetails,
}

func statusDetails(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.GetStatusDetails(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var aliveSinceCommand = cli.Command{
	Name:   "alive-since",
	Usage:  "Returns the unix time at which the daemon started",
	Action: aliveSince,
}

func aliveSince(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.AliveSince(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var countersCommand = cli.Command{
	Name:   "counters",
	Usage:  "Returns the daemon counters",
	Action: getCounters,
}

func getCounters(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.GetCounters(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var healthCommand = cli.Command{
	Name:      "health",
	Usage:     "Checks the daemon with the standard gRPC health protocol",
	ArgsUsage: "[service]",
	Description: `
	Checks the health of the given service, or of the whole daemon when no service is given.`,
	Action: checkHealth,
}

func checkHealth(ctx *cli.Context) error {
	client, cleanUp, err := getHealthClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.Check(getContext(ctx), &healthpb.HealthCheckRequest{Service: ctx.Args().First()})
	if err != nil {
		return err
	}
	printProtoJSON(ctx, resp)
	return nil
}

var pauseCommand = cli.Command{
	Name:  "pause",
	Usage: "Pauses the scheduler",
	Description: `
	Pauses the scheduler and clears the configuration set with set-config.`,
	Action: pause,
}

func pause(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.Pause(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var resumeCommand = cli.Command{
	Name:  "resume",
	Usage: "Resumes the scheduler",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "phase",
			Usage: "Name of the load phase to resume into",
		},
	},
	Action: resume,
}

func resume(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	if ctx.IsSet("phase") {
		phase := ctx.String("phase")
		resp, err := client.Resume2(getContext(ctx), &treadmillrpc.ResumeRequest{PhaseName: &phase})
		if err != nil {
			return err
		}
		return printRespJSON(ctx, resp)
	}
	resp, err := client.Resume(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var setRpsCommand = cli.Command{
	Name:      "set-rps",
	Usage:     "Sets the requests per second of the scheduler",
	ArgsUsage: "rps",
	Action:    setRps,
}

func setRps(ctx *cli.Context) error {
	rps, err := parseInt32Arg(ctx, 0, "rps")
	if err != nil {
		return err
	}
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.SetRps(getContext(ctx), &treadmillrpc.SetRpsRequest{Rps: rps})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var setMaxOutstandingCommand = cli.Command{
	Name:      "set-max-outstanding",
	Usage:     "Sets the maximum number of outstanding requests of the scheduler",
	ArgsUsage: "max",
	Action:    setMaxOutstanding,
}

func setMaxOutstanding(ctx *cli.Context) error {
	max, err := parseInt32Arg(ctx, 0, "max")
	if err != nil {
		return err
	}
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.SetMaxOutstanding(getContext(ctx), &treadmillrpc.SetMaxOutstandingRequest{MaxOutstanding: max})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var rateCommand = cli.Command{
	Name:   "rate",
	Usage:  "Returns whether the scheduler is running, its requests per second and its outstanding request cap",
	Action: rate,
}

func rate(ctx *cli.Context) error {
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.GetRate(getContext(ctx), &treadmillrpc.Empty{})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var getConfigCommand = cli.Command{
	Name:      "get-config",
	Usage:     "Returns a configuration value",
	ArgsUsage: "key",
	Description: `
	Returns the value stored under key. A key which was never set returns an empty value.`,
	Action: getConfig,
}

func getConfig(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing key argument")
	}
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.GetConfiguration(getContext(ctx), &treadmillrpc.GetConfigurationRequest{Key: ctx.Args().First()})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

var setConfigCommand = cli.Command{
	Name:      "set-config",
	Usage:     "Sets a configuration value",
	ArgsUsage: "key value",
	Action:    setConfig,
}

func setConfig(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return fmt.Errorf("expected key and value arguments")
	}
	client, cleanUp, err := getTreadmillClient(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()
	resp, err := client.SetConfiguration(getContext(ctx), &treadmillrpc.SetConfigurationRequest{
		Key:   ctx.Args().Get(0),
		Value: ctx.Args().Get(1),
	})
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}
