// Package certs generates self-signed TLS material for local domains.
package certs

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"time"
)

// ErrFileAlreadyExists is returned by Write when a target exists.
var ErrFileAlreadyExists = errors.New("another file with the same name already exists")

// serialNumber is the serial of every generated certificate.
const serialNumber = 1000

const (
	keyMode         fs.FileMode = 0o600
	certificateMode fs.FileMode = 0o644
)

// Options configures generation.
type Options struct {
	// KeySize is the RSA key size in bits.
	KeySize int

	// ValidityDays is how long the certificate is valid, counted from now.
	ValidityDays int

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns a 4096-bit key valid for 365 days.
func DefaultOptions() Options {
	return Options{KeySize: 4096, ValidityDays: 365}
}

// Material is a generated key and certificate.
type Material struct {
	Key         *rsa.PrivateKey
	Certificate *x509.Certificate

	keyPEM         []byte
	certificatePEM []byte
}

// Generate creates an RSA key and a self-signed certificate for hostname.
// The certificate names hostname as subject, issuer and DNS SAN, and is a
// CA that cannot sign intermediates.
func Generate(hostname string, opts Options) (*Material, error) {
	if hostname == "" {
		return nil, errors.New("hostname is required")
	}
	if opts.KeySize <= 0 {
		opts.KeySize = DefaultOptions().KeySize
	}
	if opts.ValidityDays <= 0 {
		opts.ValidityDays = DefaultOptions().ValidityDays
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	key, err := rsa.GenerateKey(rand.Reader, opts.KeySize)
	if err != nil {
		return nil, fmt.Errorf("generating %d-bit key: %w", opts.KeySize, err)
	}

	notBefore := now().UTC()
	name := pkix.Name{CommonName: hostname}
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(serialNumber),
		Subject:               name,
		Issuer:                name,
		NotBefore:             notBefore,
		NotAfter:              notBefore.AddDate(0, 0, opts.ValidityDays),
		DNSNames:              []string{hostname},
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("creating certificate: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsing certificate: %w", err)
	}

	return &Material{
		Key:         key,
		Certificate: cert,
		keyPEM: pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		}),
		certificatePEM: pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: der,
		}),
	}, nil
}

// KeyPEM returns the PEM encoded PKCS#1 key.
func (m *Material) KeyPEM() []byte {
	return m.keyPEM
}

// CertificatePEM returns the PEM encoded certificate.
func (m *Material) CertificatePEM() []byte {
	return m.certificatePEM
}

// Write creates keyPath (mode 0600) and certPath (mode 0644). Neither may
// exist beforehand.
func (m *Material) Write(keyPath, certPath string) error {
	for _, p := range []string{keyPath, certPath} {
		if _, err := os.Lstat(p); err == nil {
			return fmt.Errorf("%w: %s", ErrFileAlreadyExists, p)
		}
	}

	if err := writeOnce(keyPath, m.keyPEM, keyMode); err != nil {
		return err
	}
	return writeOnce(certPath, m.certificatePEM, certificateMode)
}

func writeOnce(path string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileAlreadyExists, path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	return f.Close()
}
