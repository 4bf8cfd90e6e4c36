package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainListener_Listen(t *testing.T) {
	t.Parallel()

	l := NewPlainListener()

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NotEmpty(t, listener.Addr().String())
}

func TestTLSListener_Listen_MissingCert(t *testing.T) {
	t.Parallel()

	l := NewTLSListener("testdata/missing-cert.pem", "testdata/missing-key.pem")

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	require.Error(t, err)
	assert.Nil(t, listener)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}
