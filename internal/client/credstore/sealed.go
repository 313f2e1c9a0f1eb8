package credstore

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/edgebet/edgebet-cli/internal/common"
	"github.com/edgebet/edgebet-cli/internal/cryptox"
)

// saltKey is the reserved row holding the key-derivation salt. It is the
// only value kept in the clear.
const saltKey = "_seal_salt"

// SealedStore wraps another Store and encrypts every value at rest with a
// key derived from a local passphrase. Enabled by the -passphrase flag;
// plain deployments use the inner store directly.
type SealedStore struct {
	inner Store
	salt  []byte
	key   []byte
}

// NewSealedStore derives the sealing key from passphrase and the salt
// persisted in inner, creating the salt on first use.
func NewSealedStore(ctx context.Context, inner Store, passphrase []byte) (*SealedStore, error) {
	encoded, err := inner.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}

	var salt []byte
	if encoded == "" {
		salt = common.GenerateRandByteArray(16)
		if err := inner.Set(ctx, saltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return nil, err
		}
	} else {
		salt, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("corrupt seal salt: %w", err)
		}
	}

	return &SealedStore{inner: inner, salt: salt, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil || sealed == "" {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 12 {
		return "", fmt.Errorf("corrupt sealed value [%s]", key)
	}
	value, err := cryptox.Open(raw[12:], raw[:12], s.key)
	if err != nil {
		return "", fmt.Errorf("failed to unseal [%s]: %w", key, err)
	}
	return string(value), nil
}

func (s *SealedStore) Set(ctx context.Context, key string, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) SetMany(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for k, v := range values {
		sv, err := s.seal(v)
		if err != nil {
			return err
		}
		sealed[k] = sv
	}
	return s.inner.SetMany(ctx, sealed)
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Clear wipes everything, then re-persists the salt so values written later
// in this process can still be unsealed after a reopen with the same
// passphrase.
func (s *SealedStore) Clear(ctx context.Context) error {
	if err := s.inner.Clear(ctx); err != nil {
		return err
	}
	return s.inner.Set(ctx, saltKey, base64.StdEncoding.EncodeToString(s.salt))
}

func (s *SealedStore) seal(value string) (string, error) {
	ct, nonce, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}
