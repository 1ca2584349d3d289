package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner() *Signer {
	return &Signer{Secret: []byte("k"), Issuer: "wine-cellar", TTL: time.Hour}
}

func TestSigner_RoundTrip(t *testing.T) {
	s := newSigner()

	tok, err := s.Sign("sid-1", 42)
	require.NoError(t, err)

	c, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", c.SessionID)
	assert.EqualValues(t, 42, c.UserID)
	assert.Equal(t, "wine-cellar", c.Issuer)
}

func TestSigner_RejectsForeignSecret(t *testing.T) {
	tok, err := (&Signer{Secret: []byte("other"), Issuer: "wine-cellar", TTL: time.Hour}).Sign("sid", 1)
	require.NoError(t, err)

	_, err = newSigner().Parse(tok)
	assert.Error(t, err)
}

func TestSigner_RejectsExpired(t *testing.T) {
	s := newSigner()
	s.TTL = -time.Minute
	tok, err := s.Sign("sid", 1)
	require.NoError(t, err)

	_, err = newSigner().Parse(tok)
	assert.Error(t, err)
}

func TestSigner_RejectsGarbageAndEmptySession(t *testing.T) {
	s := newSigner()
	_, err := s.Parse("not.a.token")
	assert.Error(t, err)

	tok, err := s.Sign("", 1)
	require.NoError(t, err)
	_, err = s.Parse(tok)
	assert.Error(t, err)
}
