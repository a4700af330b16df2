package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// EncryptedAdapter seals values at rest with secretbox before handing them to
// the wrapped adapter. The key is derived from an app-supplied secret, so a
// copied database file is useless without it.
type EncryptedAdapter struct {
	inner Adapter
	key   [32]byte
}

func NewEncryptedAdapter(inner Adapter, secret string) (*EncryptedAdapter, error) {
	if secret == "" {
		return nil, errors.New("empty storage secret")
	}
	return &EncryptedAdapter{inner: inner, key: sha256.Sum256([]byte(secret))}, nil
}

func (e *EncryptedAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := e.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", false, fmt.Errorf("decode value for %q: %w", key, err)
	}
	if len(raw) < 24 {
		return "", false, fmt.Errorf("sealed value for %q too short", key)
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, opened := secretbox.Open(nil, raw[24:], &nonce, &e.key)
	if !opened {
		return "", false, fmt.Errorf("open sealed value for %q", key)
	}
	return string(plain), true, nil
}

func (e *EncryptedAdapter) Set(ctx context.Context, key, value string) error {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(value), &nonce, &e.key)
	return e.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (e *EncryptedAdapter) Remove(ctx context.Context, key string) error {
	return e.inner.Remove(ctx, key)
}
