package oidc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// TestGenerateKey will generate a test ECDSA P-256 private key suitable for
// signing test tokens with TestSignToken.
func TestGenerateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	require := require.New(t)
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(err)
	return priv
}

// TestSignToken will bundle the provided claims into a test signed Token.
func TestSignToken(t *testing.T, priv *ecdsa.PrivateKey, claims map[string]interface{}) Token {
	t.Helper()
	require := require.New(t)

	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.ES256, Key: priv},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(err)

	raw, err := jwt.Signed(sig).
		Claims(claims).
		CompactSerialize()
	require.NoError(err)

	return Token(raw)
}

// TestToken returns a test token for a principal expiring at expireIn from
// now, with additionalClaims merged into the payload.
func TestToken(t *testing.T, priv *ecdsa.PrivateKey, expireIn time.Duration, additionalClaims map[string]interface{}) Token {
	t.Helper()
	claims := map[string]interface{}{
		"iss":   "https://idp.example.com/",
		"sub":   "alice@example.com",
		"name":  "Alice Example",
		"email": "alice@example.com",
		"exp":   time.Now().Add(expireIn).Unix(),
	}
	for k, v := range additionalClaims {
		claims[k] = v
	}
	return TestSignToken(t, priv, claims)
}
