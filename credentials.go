package cmap

import (
	"errors"

	"github.com/simonscmap/cmap-go/internal/keystore"
)

// CredentialProvider supplies the API key for outgoing requests. The key is
// requested per call, so a provider may pick up keys stored after the client
// was built.
type CredentialProvider interface {
	// APIKey returns the key to authenticate the next request with, or
	// ErrMissingAPIKey when none is configured.
	APIKey() (string, error)
	// StoreAPIKey persists a new key, replacing any previous one.
	StoreAPIKey(key string) error
}

// StaticCredentials yields the same key for every request. Storing through
// it is not supported.
func StaticCredentials(key string) CredentialProvider {
	return staticCreds(key)
}

type staticCreds string

func (s staticCreds) APIKey() (string, error) {
	if s == "" {
		return "", ErrMissingAPIKey
	}
	return string(s), nil
}

func (s staticCreds) StoreAPIKey(string) error {
	return errors.New("cmap: static credentials cannot store a key")
}

// FileCredentials resolves the key from the CMAP_API_KEY environment
// variable first, then from the dotenv credentials file at path. An empty
// path means the default $HOME/.cmap/credentials.
func FileCredentials(path string) CredentialProvider {
	return &fileCreds{store: keystore.Open(path)}
}

type fileCreds struct {
	store *keystore.Store
}

func (p *fileCreds) APIKey() (string, error) {
	key, err := p.store.Load()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

func (p *fileCreds) StoreAPIKey(key string) error {
	return p.store.Save(key)
}

// SaveAPIKey stores key in the default credentials file and in the current
// process environment, overwriting any previous key. Clients built with
// default credentials see the new key on their next request.
func SaveAPIKey(key string) error {
	return keystore.Open("").Save(key)
}
