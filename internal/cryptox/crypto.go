// Package cryptox implements the sealing primitives used by the optional
// encrypted credential store: argon2id key derivation and AES-GCM
// authenticated encryption of small values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/edgebet/edgebet-cli/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	keySize   = 32
	nonceSize = 12

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey derives a 256-bit sealing key from a passphrase and salt using
// argon2id. The same (passphrase, salt) pair always yields the same key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
}

// Seal encrypts value with AES-GCM under key. A fresh random nonce is
// generated per call; ciphertext and nonce are returned separately.
func Seal(value, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(nonceSize)
	ciphertext = aesgcm.Seal(nil, nonce, value, nil)
	return ciphertext, nonce, nil
}

// Open decrypts a Seal result. Fails if the key is wrong or the ciphertext
// was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
