// Package treadmillrpc defines the wire types and gRPC service of the Treadmill control surface.
package treadmillrpc

import (
	"encoding/json"
	"strconv"
)

// UnknownPhase is the phase name used when a resume request carries no phase
const UnknownPhase = "UNKNOWN_PHASE"

// Status is the service status as reported by GetStatus
type Status int32

const (
	Status_DEAD     Status = 0
	Status_STARTING Status = 1
	Status_ALIVE    Status = 2
	Status_STOPPING Status = 3
	Status_STOPPED  Status = 4
	Status_WARNING  Status = 5
)

var (
	Status_name = map[int32]string{
		0: "DEAD",
		1: "STARTING",
		2: "ALIVE",
		3: "STOPPING",
		4: "STOPPED",
		5: "WARNING",
	}
	Status_value = map[string]int32{
		"DEAD":     0,
		"STARTING": 1,
		"ALIVE":    2,
		"STOPPING": 3,
		"STOPPED":  4,
		"WARNING":  5,
	}
)

// String returns the name of the status or its number if it has no name
func (x Status) String() string {
	if name, ok := Status_name[int32(x)]; ok {
		return name
	}
	return strconv.FormatInt(int64(x), 10)
}

// MarshalJSON encodes the status by name
func (x Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON accepts either the status name or its number
func (x *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		if v, ok := Status_value[name]; ok {
			*x = Status(v)
			return nil
		}
		n, err := strconv.ParseInt(name, 10, 32)
		if err != nil {
			return err
		}
		*x = Status(n)
		return nil
	}
	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*x = Status(n)
	return nil
}

type Empty struct{}

type StatusResponse struct {
	Status Status `json:"status"`
}

type StatusDetailsResponse struct {
	Details string `json:"details"`
}

type AliveSinceResponse struct {
	AliveSince int64 `json:"alive_since"`
}

type CountersResponse struct {
	Counters map[string]int64 `json:"counters"`
}

// BoolResponse is returned by Pause and Resume
type BoolResponse struct {
	Success bool `json:"success"`
}

// ResumeRequest carries an optional phase name. A nil PhaseName means no phase was given.
type ResumeRequest struct {
	PhaseName *string `json:"phase_name,omitempty"`
}

// GetPhaseName returns the requested phase or UnknownPhase when the request or its phase is absent
func (x *ResumeRequest) GetPhaseName() string {
	if x != nil && x.PhaseName != nil {
		return *x.PhaseName
	}
	return UnknownPhase
}

type ResumeResponse struct {
	Success bool `json:"success"`
}

type SetRpsRequest struct {
	Rps int32 `json:"rps"`
}

type SetMaxOutstandingRequest struct {
	MaxOutstanding int32 `json:"max_outstanding"`
}

type RateResponse struct {
	SchedulerRunning bool  `json:"scheduler_running"`
	Rps              int32 `json:"rps"`
	MaxOutstanding   int32 `json:"max_outstanding"`
}

type GetConfigurationRequest struct {
	Key string `json:"key"`
}

type GetConfigurationResponse struct {
	Value string `json:"value"`
}

type SetConfigurationRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
