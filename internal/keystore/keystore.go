// Package keystore persists the API key in a dotenv credentials file and
// resolves it with the process environment taking precedence.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// EnvKey is the environment variable and dotenv key holding the API key.
const EnvKey = "CMAP_API_KEY"

// Store reads and writes one credentials file. The zero Path means no file
// is available and only the environment is consulted.
type Store struct {
	Path string

	mu sync.Mutex
}

// Open returns a store on the given path, or on the default
// $HOME/.cmap/credentials when path is empty.
func Open(path string) *Store {
	if path == "" {
		path = defaultPath()
	}
	return &Store{Path: path}
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cmap", "credentials")
}

// Load resolves the API key: process environment first, then the credentials
// file. A missing file is not an error; the key is simply absent.
func (s *Store) Load() (string, error) {
	if v := os.Getenv(EnvKey); v != "" {
		return v, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Path == "" {
		return "", nil
	}
	env, err := godotenv.Read(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read credentials file: %w", err)
	}
	return env[EnvKey], nil
}

// Save writes the key to the credentials file, replacing any previous one,
// and updates the current process environment so the change takes effect
// without a restart.
func (s *Store) Save(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Path == "" {
		return errors.New("keystore: no credentials path available")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := godotenv.Write(map[string]string{EnvKey: key}, s.Path); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := os.Chmod(s.Path, 0o600); err != nil {
		return fmt.Errorf("restrict credentials file: %w", err)
	}
	return os.Setenv(EnvKey, key)
}
