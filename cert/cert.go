package cert

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io/ioutil"
	"math/big"
	"net"
	"os"
	"time"

	"github.com/SSSOC-CAN/treadmill/utils"
	e "github.com/pkg/errors"
)

var (
	defaultTLSCertDuration = 14 * 30 * 24 * time.Hour
	// serialNumberLimit is the maximum serial number of a generated certificate
	serialNumberLimit = new(big.Int).Lsh(big.NewInt(1), 128)
)

// ipAddresses returns the loopback addresses plus any extra ones which parse
func ipAddresses(extraIPs []string) []net.IP {
	ips := []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")}
	for _, ip := range extraIPs {
		if parsed := net.ParseIP(ip); parsed != nil {
			ips = append(ips, parsed)
		}
	}
	return ips
}

// GenCertPair generates a self-signed certificate/key pair valid for localhost, the loopback addresses and extraIPs
// and writes it to certFile and keyFile
func GenCertPair(org, certFile, keyFile string, certValidity time.Duration, extraIPs []string) error {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	dnsNames := []string{host}
	if host != "localhost" {
		dnsNames = append(dnsNames, "localhost")
	}
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return e.Wrap(err, "could not generate private key")
	}
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return e.Wrap(err, "could not generate serial number")
	}
	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{org},
			CommonName:   host,
		},
		NotBefore:             now.Add(-time.Hour * 24),
		NotAfter:              now.Add(certValidity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IsCA:                  true,
		BasicConstraintsValid: true,
		DNSNames:              dnsNames,
		IPAddresses:           ipAddresses(extraIPs),
	}
	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return e.Wrap(err, "could not create certificate")
	}
	certBuf := &bytes.Buffer{}
	if err := pem.Encode(certBuf, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes}); err != nil {
		return e.Wrap(err, "could not encode certificate")
	}
	keyBytes, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return e.Wrap(err, "could not encode private key")
	}
	keyBuf := &bytes.Buffer{}
	if err := pem.Encode(keyBuf, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes}); err != nil {
		return e.Wrap(err, "could not encode private key")
	}
	if err := ioutil.WriteFile(certFile, certBuf.Bytes(), 0644); err != nil {
		return err
	}
	if err := ioutil.WriteFile(keyFile, keyBuf.Bytes(), 0600); err != nil {
		_ = os.Remove(certFile)
		return err
	}
	return nil
}

// LoadCertificate loads the certificate/key pair and parses the certificate
func LoadCertificate(certPath, keyPath string) (tls.Certificate, *x509.Certificate, error) {
	certData, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, nil, err
	}
	x509Cert, err := x509.ParseCertificate(certData.Certificate[0])
	if err != nil {
		return tls.Certificate{}, nil, err
	}
	return certData, x509Cert, nil
}

// EnsureCertPair generates a certificate/key pair when neither file exists and checks that an existing pair
// loads and has not expired. It reports whether a new pair was generated
func EnsureCertPair(org, certPath, keyPath string, extraIPs []string) (bool, error) {
	if !utils.FileExists(certPath) && !utils.FileExists(keyPath) {
		if err := GenCertPair(org, certPath, keyPath, defaultTLSCertDuration, extraIPs); err != nil {
			return false, err
		}
		return true, nil
	}
	_, x509Cert, err := LoadCertificate(certPath, keyPath)
	if err != nil {
		return false, err
	}
	if time.Now().After(x509Cert.NotAfter) {
		return false, e.Errorf("TLS certificate %s expired on %v", certPath, x509Cert.NotAfter)
	}
	return false, nil
}
