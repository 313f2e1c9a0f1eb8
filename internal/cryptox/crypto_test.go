package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("salty")
	k1 := DeriveKey([]byte("pass"), salt)
	k2 := DeriveKey([]byte("pass"), salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)

	k3 := DeriveKey([]byte("other"), salt)
	require.NotEqual(t, k1, k3)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))

	ct, nonce, err := Seal([]byte("session-token-value"), key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)

	pt, err := Open(ct, nonce, key)
	require.NoError(t, err)
	require.Equal(t, []byte("session-token-value"), pt)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))
	ct, nonce, err := Seal([]byte("v"), key)
	require.NoError(t, err)

	wrong := DeriveKey([]byte("nope"), []byte("salt"))
	_, err = Open(ct, nonce, wrong)
	require.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))
	ct, nonce, err := Seal([]byte("v"), key)
	require.NoError(t, err)

	ct[0] ^= 0xff
	_, err = Open(ct, nonce, key)
	require.Error(t, err)
}
