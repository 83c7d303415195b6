// Package tokenstore wraps a storage.Store so that credential keys are
// sealed with AES-256-GCM before they are written.
package tokenstore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/lexiclient/internal/crypto"
	"github.com/mrlokans/lexiclient/internal/storage"
)

const (
	// EnvEncryptionKey is the environment variable for the encryption key
	EnvEncryptionKey = "TOKEN_ENCRYPTION_KEY"

	// DefaultKeyFileName is the default name for the key file
	DefaultKeyFileName = ".lexiclient-token-key"
)

// TokenStore encrypts values of the configured keys and passes every other
// key through untouched.
type TokenStore struct {
	inner     storage.Store
	encryptor *crypto.Encryptor
	sealed    map[string]struct{}
}

var _ storage.Store = (*TokenStore)(nil)

// Config holds configuration for the token store
type Config struct {
	// EncryptionKey is a base64-encoded 32-byte key or, failing that, a
	// passphrase the key is derived from.
	// If empty, will try to load from environment or key file
	EncryptionKey string

	// KeyFilePath is the path to the encryption key file
	// If empty, defaults to ~/.lexiclient-token-key
	KeyFilePath string

	// Keys lists the storage keys whose values are encrypted.
	Keys []string
}

// New wraps inner with encryption for cfg.Keys.
func New(inner storage.Store, cfg Config) (*TokenStore, error) {
	key, err := resolveEncryptionKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve encryption key: %w", err)
	}

	encryptor, err := crypto.NewEncryptorFromBase64(key)
	if err != nil {
		// Not a raw key; treat it as a passphrase.
		encryptor, err = crypto.NewEncryptorFromPassphrase(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create encryptor: %w", err)
		}
	}

	return Wrap(inner, encryptor, cfg.Keys...), nil
}

// Wrap builds a TokenStore around an existing encryptor.
func Wrap(inner storage.Store, encryptor *crypto.Encryptor, keys ...string) *TokenStore {
	sealed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		sealed[k] = struct{}{}
	}
	return &TokenStore{inner: inner, encryptor: encryptor, sealed: sealed}
}

// resolveEncryptionKey determines the encryption key from various sources
func resolveEncryptionKey(cfg Config) (string, error) {
	// Priority 1: Explicitly provided key
	if cfg.EncryptionKey != "" {
		return cfg.EncryptionKey, nil
	}

	// Priority 2: Environment variable
	if envKey := os.Getenv(EnvEncryptionKey); envKey != "" {
		return envKey, nil
	}

	// Priority 3: Key file
	keyFilePath := GetKeyFilePath(cfg.KeyFilePath)

	if data, err := os.ReadFile(keyFilePath); err == nil {
		return string(data), nil
	}

	newKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate encryption key: %w", err)
	}

	if err := os.WriteFile(keyFilePath, []byte(newKey), 0600); err != nil {
		return "", fmt.Errorf("failed to save encryption key to %s: %w", keyFilePath, err)
	}

	log.Printf("Generated new token encryption key and saved to %s", keyFilePath)
	return newKey, nil
}

func (s *TokenStore) isSealed(key string) bool {
	_, ok := s.sealed[key]
	return ok
}

// Get returns the decrypted value. A value that no longer decrypts (key
// rotated, file tampered) is reported as storage.ErrNotFound.
func (s *TokenStore) Get(key string) (string, error) {
	value, err := s.inner.Get(key)
	if err != nil || !s.isSealed(key) {
		return value, err
	}

	plain, err := s.encryptor.Decrypt(value)
	if err != nil {
		log.Printf("[STATE] Discarding undecryptable value for %s: %v", key, err)
		return "", storage.ErrNotFound
	}
	return plain, nil
}

func (s *TokenStore) Set(key, value string) error {
	if !s.isSealed(key) {
		return s.inner.Set(key, value)
	}

	sealed, err := s.encryptor.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return s.inner.Set(key, sealed)
}

func (s *TokenStore) Remove(key string) error {
	return s.inner.Remove(key)
}

// GetKeyFilePath returns the path to the key file being used
func GetKeyFilePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultKeyFileName
	}
	return filepath.Join(homeDir, DefaultKeyFileName)
}
