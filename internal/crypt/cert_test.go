package crypt

import (
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTLSConfig(t *testing.T) {
	ast := assert.New(t)

	gc := GenerateCertificate{
		Organization: "MCS",
		Host:         "127.0.0.1, localhost",
		ValidFor:     24 * time.Hour,
		EcdsaCurve:   "P256",
	}
	cfg, err := gc.GenerateTLSConfig()
	require.Nil(t, err)
	require.Len(t, cfg.Certificates, 1)

	cert, err := x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
	ast.Nil(err)
	ast.Equal([]string{"localhost"}, cert.DNSNames)
	ast.Len(cert.IPAddresses, 1)
	ast.Equal("MCS", cert.Subject.Organization[0])

	gc.EcdsaCurve = "P999"
	_, err = gc.GenerateTLSConfig()
	ast.NotNil(err)
}
