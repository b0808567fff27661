package tlsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig(t *testing.T) {
	certs, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, t.TempDir())
	require.NoError(t, err)

	cfg, err := ServerConfig(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)

	creds, err := ServerCredentials(certs.CertFile, certs.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)
}

func TestServerConfig_Errors(t *testing.T) {
	_, err := ServerConfig("", "key.pem")
	require.Error(t, err)

	_, err = ServerConfig("missing.pem", "missing-key.pem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load server key pair")
}

func TestClientCredentials(t *testing.T) {
	dir := t.TempDir()
	certs, err := GenerateDevCertificates([]string{"localhost"}, dir)
	require.NoError(t, err)

	creds, err := ClientCredentials(certs.CAFile, "localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", creds.Info().ServerName)

	_, err = ClientCredentials(filepath.Join(dir, "absent.pem"), "")
	require.Error(t, err)

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))
	_, err = ClientCredentials(garbage, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no certificates")
}
