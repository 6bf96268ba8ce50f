package treadmillrpc

import (
	"encoding/json"
	"testing"
)

// TestStatusNames tests that every status has a stable name and that unknown values render as numbers
func TestStatusNames(t *testing.T) {
	cases := map[Status]string{
		Status_DEAD:     "DEAD",
		Status_STARTING: "STARTING",
		Status_ALIVE:    "ALIVE",
		Status_STOPPING: "STOPPING",
		Status_STOPPED:  "STOPPED",
		Status_WARNING:  "WARNING",
		Status(42):      "42",
	}
	for s, name := range cases {
		if s.String() != name {
			t.Errorf("Expected %s, got %s", name, s.String())
		}
	}
}

// TestStatusJSON tests that statuses are encoded by name and decoded from names or numbers
func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(&StatusResponse{Status: Status_ALIVE})
	if err != nil {
		t.Fatalf("Could not marshal status: %v", err)
	}
	if string(b) != `{"status":"ALIVE"}` {
		t.Errorf("Unexpected encoding: %s", b)
	}
	var resp StatusResponse
	if err := json.Unmarshal([]byte(`{"status":"WARNING"}`), &resp); err != nil {
		t.Fatalf("Could not unmarshal status by name: %v", err)
	}
	if resp.Status != Status_WARNING {
		t.Errorf("Expected WARNING, got %v", resp.Status)
	}
	if err := json.Unmarshal([]byte(`{"status":3}`), &resp); err != nil {
		t.Fatalf("Could not unmarshal status by number: %v", err)
	}
	if resp.Status != Status_STOPPING {
		t.Errorf("Expected STOPPING, got %v", resp.Status)
	}
	if err := json.Unmarshal([]byte(`{"status":"BOGUS"}`), &resp); err == nil {
		t.Error("Expected error when unmarshalling unknown status name")
	}
}

// TestResumeRequestPhaseName tests the phase name fallback for absent requests and phases
func TestResumeRequestPhaseName(t *testing.T) {
	var nilReq *ResumeRequest
	if nilReq.GetPhaseName() != UnknownPhase {
		t.Errorf("Expected %s for nil request, got %s", UnknownPhase, nilReq.GetPhaseName())
	}
	if (&ResumeRequest{}).GetPhaseName() != UnknownPhase {
		t.Errorf("Expected %s for request without phase", UnknownPhase)
	}
	empty := ""
	if (&ResumeRequest{PhaseName: &empty}).GetPhaseName() != "" {
		t.Error("Expected an explicit empty phase name to be kept")
	}
	var req ResumeRequest
	if err := (jsonCodec{}).Unmarshal([]byte(`{"phase_name":"warmup"}`), &req); err != nil {
		t.Fatalf("Could not unmarshal resume request: %v", err)
	}
	if req.GetPhaseName() != "warmup" {
		t.Errorf("Expected warmup, got %s", req.GetPhaseName())
	}
}

// TestCodecEmptyPayload tests that an empty payload decodes to the zero message
func TestCodecEmptyPayload(t *testing.T) {
	var req ResumeRequest
	if err := (jsonCodec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("Unexpected error decoding empty payload: %v", err)
	}
	if req.PhaseName != nil {
		t.Error("Expected no phase name")
	}
	if (jsonCodec{}).Name() != CodecName {
		t.Errorf("Unexpected codec name %s", (jsonCodec{}).Name())
	}
}
