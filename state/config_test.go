package state

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/SSSOC-CAN/treadmill/utils"
	"github.com/rs/zerolog"
)

// TestConfigStore tests the get/set contract of the ConfigStore
func TestConfigStore(t *testing.T) {
	logger := zerolog.Nop()
	store := NewConfigStore(&logger)
	t.Run("absent key", func(t *testing.T) {
		if _, ok := store.Get("missing"); ok {
			t.Error("Expected missing key to be absent")
		}
	})
	t.Run("empty value is present", func(t *testing.T) {
		store.Set("empty", "")
		v, ok := store.Get("empty")
		if !ok {
			t.Fatal("Expected empty value to be present")
		}
		if v != "" {
			t.Errorf("Expected empty value, got %s", v)
		}
	})
	t.Run("overwrite", func(t *testing.T) {
		store.Set("phase", "warmup")
		store.Set("phase", "steady")
		if v, _ := store.Get("phase"); v != "steady" {
			t.Errorf("Expected steady, got %s", v)
		}
	})
	t.Run("string default", func(t *testing.T) {
		if store.GetString("phase", "none") != "steady" {
			t.Error("Expected stored value")
		}
		if store.GetString("missing", "none") != "none" {
			t.Error("Expected default value")
		}
	})
	t.Run("clear", func(t *testing.T) {
		store.Clear()
		if store.Len() != 0 {
			t.Errorf("Expected empty store, got %d entries", store.Len())
		}
		if _, ok := store.Get("phase"); ok {
			t.Error("Expected phase to be cleared")
		}
	})
}

// TestConfigStoreGetUint32 tests numeric parsing, defaults and warning logs
func TestConfigStoreGetUint32(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	store := NewConfigStore(&logger)
	store.Set("valid", "42")
	store.Set("invalid", "abc")
	store.Set("negative", "-1")
	store.Set("overflow", "4294967296")
	store.Set("max", "4294967295")
	if v := store.GetUint32("missing", 7); v != 7 {
		t.Errorf("Expected default 7 for missing key, got %d", v)
	}
	if buf.Len() != 0 {
		t.Errorf("Did not expect a log for a missing key: %s", buf.String())
	}
	if v := store.GetUint32("valid", 7); v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if v := store.GetUint32("max", 7); v != 4294967295 {
		t.Errorf("Expected 4294967295, got %d", v)
	}
	for _, key := range []string{"invalid", "negative", "overflow"} {
		buf.Reset()
		if v := store.GetUint32(key, 7); v != 7 {
			t.Errorf("Expected default 7 for %s, got %d", key, v)
		}
		if !strings.Contains(buf.String(), "failed to convert value") {
			t.Errorf("Expected a warning for %s, got %q", key, buf.String())
		}
		if !strings.Contains(buf.String(), `"level":"warn"`) {
			t.Errorf("Expected warn level for %s, got %q", key, buf.String())
		}
	}
}

// TestConfigStoreConcurrentDistinctKeys sets distinct keys from concurrent goroutines in a random order and
// checks every value can be read back unchanged
func TestConfigStoreConcurrentDistinctKeys(t *testing.T) {
	logger := zerolog.Nop()
	for round := 0; round < 10; round++ {
		store := NewConfigStore(&logger)
		n := 50 + rand.Intn(200)
		expected := make(map[string]string, n)
		for i := 0; i < n; i++ {
			expected[fmt.Sprintf("key-%d-%s", i, utils.RandSeq(4))] = utils.RandSeq(1 + rand.Intn(16))
		}
		var wg sync.WaitGroup
		for k, v := range expected {
			wg.Add(1)
			go func(k, v string) {
				defer wg.Done()
				store.Set(k, v)
				_, _ = store.Get(utils.RandSeq(3))
			}(k, v)
		}
		wg.Wait()
		for k, v := range expected {
			wg.Add(1)
			go func(k, v string) {
				defer wg.Done()
				got, ok := store.Get(k)
				if !ok || got != v {
					t.Errorf("Round %d: expected %s=%s, got %s (present: %v)", round, k, v, got, ok)
				}
			}(k, v)
		}
		wg.Wait()
		if store.Len() != len(expected) {
			t.Errorf("Round %d: expected %d entries, got %d", round, len(expected), store.Len())
		}
	}
}
