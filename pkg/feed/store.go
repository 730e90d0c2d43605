package feed

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	keyLastRead = "lastNotificationReadTime"
	keyTheme    = "theme"
)

// Themes accepted by SetTheme.
var Themes = []string{"light", "dark", "system"}

var ErrUnknownTheme = errors.New("feed: unknown theme")

// LastReadStore keeps per-device client state in a small JSON file.
// Nothing in it is sent to the server.
type LastReadStore struct {
	mu   sync.Mutex
	path string
}

func NewLastReadStore(path string) *LastReadStore {
	return &LastReadStore{path: path}
}

func (s *LastReadStore) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	kv := map[string]string{}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, err
	}
	return kv, nil
}

func (s *LastReadStore) save(kv map[string]string) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *LastReadStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return err
	}
	kv[key] = value
	return s.save(kv)
}

func (s *LastReadStore) get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return "", err
	}
	return kv[key], nil
}

// LastRead returns the stored instant, ok=false when nothing was marked yet
// or the stored value is unreadable.
func (s *LastReadStore) LastRead() (time.Time, bool, error) {
	raw, err := s.get(keyLastRead)
	if err != nil || raw == "" {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func (s *LastReadStore) SetLastRead(t time.Time) error {
	return s.set(keyLastRead, t.UTC().Format(time.RFC3339Nano))
}

// Theme returns the stored preference, "system" when unset.
func (s *LastReadStore) Theme() (string, error) {
	v, err := s.get(keyTheme)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "system", nil
	}
	return v, nil
}

func (s *LastReadStore) SetTheme(theme string) error {
	for _, t := range Themes {
		if t == theme {
			return s.set(keyTheme, theme)
		}
	}
	return ErrUnknownTheme
}
