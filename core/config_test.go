/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"io/ioutil"
	"os"
	"path"
	"reflect"
	"testing"
)

// writeConfigFile writes contents as the config file of a new temporary directory
func writeConfigFile(t *testing.T, contents string) string {
	dir, err := ioutil.TempDir("", "treadmill-config-")
	if err != nil {
		t.Fatalf("Could not create temporary directory: %v", err)
	}
	if contents != "" {
		if err := ioutil.WriteFile(path.Join(dir, config_file_name), []byte(contents), 0600); err != nil {
			t.Fatalf("Could not write config file: %v", err)
		}
	}
	return dir
}

// TestLoadConfig tests that the config file is read and blank fields are given defaults
func TestLoadConfig(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		dir := writeConfigFile(t, "")
		defer os.RemoveAll(dir)
		cfg, err := loadConfig(dir, true)
		if err != nil {
			t.Fatalf("Could not load config: %v", err)
		}
		if !reflect.DeepEqual(cfg, default_config()) {
			t.Errorf("Expected default config, got %+v", cfg)
		}
	})
	t.Run("partial config file", func(t *testing.T) {
		dir := writeConfigFile(t, "GrpcPort: 9999\nInitialRps: 250\nInitialMaxOutstanding: 10\nInitialPhase: warmup\nLogFileDir: \"\"\n")
		defer os.RemoveAll(dir)
		cfg, err := loadConfig(dir, true)
		if err != nil {
			t.Fatalf("Could not load config: %v", err)
		}
		if cfg.GrpcPort != 9999 || cfg.RestPort != default_rest_port {
			t.Errorf("Unexpected ports: %v %v", cfg.GrpcPort, cfg.RestPort)
		}
		if cfg.InitialRps != 250 || cfg.InitialMaxOutstanding != 10 || cfg.InitialPhase != "warmup" {
			t.Errorf("Unexpected scheduler settings: %+v", cfg)
		}
		if cfg.LogFileDir != default_log_dir() || !cfg.DefaultLogDir {
			t.Errorf("Unexpected log dir: %v %v", cfg.LogFileDir, cfg.DefaultLogDir)
		}
		if cfg.LogLevel != default_log_level || cfg.MaxLogFileSize != default_log_file_size {
			t.Errorf("Unexpected log settings: %v %v", cfg.LogLevel, cfg.MaxLogFileSize)
		}
	})
	t.Run("invalid yaml", func(t *testing.T) {
		dir := writeConfigFile(t, "GrpcPort: [not a port\n")
		defer os.RemoveAll(dir)
		cfg, err := loadConfig(dir, true)
		if err != nil {
			t.Fatalf("Could not load config: %v", err)
		}
		if !reflect.DeepEqual(cfg, default_config()) {
			t.Errorf("Expected default config, got %+v", cfg)
		}
	})
	t.Run("tls pair", func(t *testing.T) {
		dir := writeConfigFile(t, "TLSCertPath: /tmp/tls.cert\n")
		defer os.RemoveAll(dir)
		if _, err := loadConfig(dir, true); err == nil {
			t.Error("Expected error for certificate without key")
		}
	})
}
