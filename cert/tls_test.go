package cert

import (
	"io/ioutil"
	"net"
	"os"
	"path"
	"testing"
	"time"

	"github.com/SSSOC-CAN/treadmill/utils"
)

var (
	defaultTestOrgString = "test org"
)

// TestGenCertPair tests whether we can successfully generate a TLS certificate/key pair
func TestGenCertPair(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "tlsstuff-")
	if err != nil {
		t.Fatalf("Error creating temporary directory: %v", err)
	}
	defer os.RemoveAll(tempDir)
	tempTLSCertPath := path.Join(tempDir, "tls.cert")
	tempTLSKeyPath := path.Join(tempDir, "tls.key")
	err = GenCertPair(defaultTestOrgString, tempTLSCertPath, tempTLSKeyPath, defaultTLSCertDuration, []string{"10.0.0.5", "not an ip"})
	if err != nil {
		t.Fatalf("Could not generate certificate/key pair: %v", err)
	}
	if !utils.FileExists(tempTLSCertPath) || !utils.FileExists(tempTLSKeyPath) {
		t.Fatalf("TLS certificate/key pair files not found.")
	}
	_, x509Cert, err := LoadCertificate(tempTLSCertPath, tempTLSKeyPath)
	if err != nil {
		t.Fatalf("Could not load certificate/key pair: %v", err)
	}
	if len(x509Cert.IPAddresses) != 3 || !x509Cert.IPAddresses[2].Equal(net.ParseIP("10.0.0.5")) {
		t.Errorf("Unexpected certificate IP addresses: %v", x509Cert.IPAddresses)
	}
	if err := x509Cert.VerifyHostname("127.0.0.1"); err != nil {
		t.Errorf("Certificate not valid for loopback: %v", err)
	}
}

// TestEnsureCertPair tests that a pair is generated once and reused afterwards
func TestEnsureCertPair(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "tlsstuff-")
	if err != nil {
		t.Fatalf("Error creating temporary directory: %v", err)
	}
	defer os.RemoveAll(tempDir)
	tempTLSCertPath := path.Join(tempDir, "tls.cert")
	tempTLSKeyPath := path.Join(tempDir, "tls.key")
	t.Run("generate", func(t *testing.T) {
		generated, err := EnsureCertPair(defaultTestOrgString, tempTLSCertPath, tempTLSKeyPath, nil)
		if err != nil {
			t.Fatalf("Could not ensure certificate/key pair: %v", err)
		}
		if !generated {
			t.Error("Expected a new pair to be generated")
		}
	})
	t.Run("reuse", func(t *testing.T) {
		generated, err := EnsureCertPair(defaultTestOrgString, tempTLSCertPath, tempTLSKeyPath, nil)
		if err != nil {
			t.Fatalf("Could not ensure certificate/key pair: %v", err)
		}
		if generated {
			t.Error("Expected the existing pair to be reused")
		}
	})
	t.Run("expired", func(t *testing.T) {
		expiredCert := path.Join(tempDir, "expired.cert")
		expiredKey := path.Join(tempDir, "expired.key")
		if err := GenCertPair(defaultTestOrgString, expiredCert, expiredKey, -time.Hour, nil); err != nil {
			t.Fatalf("Could not generate certificate/key pair: %v", err)
		}
		if _, err := EnsureCertPair(defaultTestOrgString, expiredCert, expiredKey, nil); err == nil {
			t.Error("Expected error for expired certificate")
		}
	})
	t.Run("missing key", func(t *testing.T) {
		if _, err := EnsureCertPair(defaultTestOrgString, tempTLSCertPath, path.Join(tempDir, "missing.key"), nil); err == nil {
			t.Error("Expected error for missing key")
		}
	})
}
