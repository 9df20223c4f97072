// Package filestore persists the CLI bearer token in a YAML credentials file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

const (
	// DefaultDir is the directory created under the user config dir.
	DefaultDir = "circuit1021"
	// DefaultFile is the credentials file name.
	DefaultFile = "credentials.yaml"

	fileMode = 0o600
	dirMode  = 0o700
)

var _ ports.TokenStore = (*TokenFile)(nil)

// credentials is the on-disk document; the token lives under the "token" key.
type credentials struct {
	Token  string `yaml:"token"`
	APIURL string `yaml:"api_url,omitempty"`
}

// TokenFile is a TokenStore backed by a YAML file.
type TokenFile struct {
	path   string
	apiURL string
	mu     sync.Mutex
}

// DefaultPath returns <user config dir>/circuit1021/credentials.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, DefaultDir, DefaultFile), nil
}

// NewTokenFile returns a store for path. apiURL is recorded next to the token
// so a token issued by one backend is not replayed against another.
func NewTokenFile(path, apiURL string) *TokenFile {
	return &TokenFile{path: path, apiURL: apiURL}
}

// Path returns the file location.
func (f *TokenFile) Path() string { return f.path }

// Load returns the stored token or ports.ErrNoToken.
func (f *TokenFile) Load(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	creds, err := f.read()
	if err != nil {
		return "", err
	}
	if creds.APIURL != "" && f.apiURL != "" && creds.APIURL != f.apiURL {
		return "", ports.ErrNoToken
	}
	if strings.TrimSpace(creds.Token) == "" {
		return "", ports.ErrNoToken
	}
	return creds.Token, nil
}

// Save writes token, replacing any previous one.
func (f *TokenFile) Save(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(credentials{Token: token, APIURL: f.apiURL})
}

// Clear removes the credentials file. A missing file is not an error.
func (f *TokenFile) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

func (f *TokenFile) read() (credentials, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return credentials{}, ports.ErrNoToken
	}
	if err != nil {
		return credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	var creds credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return credentials{}, fmt.Errorf("parse credentials %s: %w", f.path, err)
	}
	return creds, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (f *TokenFile) write(creds credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := yaml.Marshal(&creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credentials-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp credentials: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		return errors.Join(cause, tmp.Close(), os.Remove(tmpName))
	}
	if err := tmp.Chmod(fileMode); err != nil {
		return cleanup(fmt.Errorf("chmod credentials: %w", err))
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write credentials: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
