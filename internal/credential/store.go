// Package credential keeps the API key used by the optional AI collaborator.
// The key has an explicit lifecycle driven by the caller: Set, optional
// persistence to a session file, Clear.
package credential

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	SourceRuntime = "runtime"
	SourceSession = "session"
	SourceEnv     = "env"
	SourceNone    = "none"
)

// envPlaceholder is the sample value shipped in .env templates.
const envPlaceholder = "API_KEY_AQUI"

// minEnvKeyLen rejects obviously truncated environment keys.
const minEnvKeyLen = 10

var envVars = []string{"GEMINI_API_KEY", "API_KEY"}

type Store struct {
	mu          sync.Mutex
	runtime     string
	fromSession bool
	sessionFile string
	lookupEnv   func(string) (string, bool)
	log         *logrus.Entry
}

// NewStore returns a store persisting to sessionFile. An empty sessionFile
// disables persistence.
func NewStore(sessionFile string, log *logrus.Entry) *Store {
	return &Store{
		sessionFile: sessionFile,
		lookupEnv:   os.LookupEnv,
		log:         log,
	}
}

// Set installs key for the rest of the process and persists it when a
// session file is configured. A failed write is logged and the key still
// applies.
func (s *Store) Set(key string) {
	key = strings.TrimSpace(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runtime = key
	s.fromSession = false

	if s.sessionFile == "" || key == "" {
		return
	}
	if err := os.WriteFile(s.sessionFile, []byte(key), 0o600); err != nil {
		s.log.WithError(err).Warn("session key persistence failed")
	}
}

// Clear drops the runtime key and removes the session file.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runtime = ""
	s.fromSession = false

	if s.sessionFile == "" {
		return
	}
	if err := os.Remove(s.sessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.WithError(err).Warn("session key removal failed")
	}
}

// APIKey resolves the key: runtime first, then the session file, then the
// environment. It returns "" when nothing usable is configured.
func (s *Store) APIKey() string {
	key, _ := s.resolve()
	return key
}

// Source reports where APIKey would come from.
func (s *Store) Source() string {
	_, src := s.resolve()
	return src
}

func (s *Store) resolve() (string, string) {
	if key, src := s.stored(); key != "" {
		return key, src
	}
	for _, name := range envVars {
		if v, ok := s.lookupEnv(name); ok && validEnvKey(v) {
			return v, SourceEnv
		}
	}
	return "", SourceNone
}

// stored returns the runtime key, loading it from the session file first if
// needed. The file is only touched under mu, so it always agrees with the
// runtime value.
func (s *Store) stored() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runtime == "" {
		s.runtime = s.readSession()
		s.fromSession = s.runtime != ""
	}
	if s.runtime == "" {
		return "", SourceNone
	}
	if s.fromSession {
		return s.runtime, SourceSession
	}
	return s.runtime, SourceRuntime
}

func (s *Store) readSession() string {
	if s.sessionFile == "" {
		return ""
	}
	data, err := os.ReadFile(s.sessionFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func validEnvKey(v string) bool {
	return len(v) > minEnvKeyLen && !strings.Contains(v, envPlaceholder)
}
