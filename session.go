package battery

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	sessionObject   = "session"
	sessionProperty = "navigation"
)

// sessionState is the persisted navigation state.
type sessionState struct {
	LastPage string `yaml:"lastPage"`
}

// SessionStore remembers the last visited page across runs. A nil gdata
// manager keeps the state in memory only.
type SessionStore struct {
	manager *gdata.Manager
	state   sessionState
}

// OpenSessionStore opens platform storage for app and loads any saved state.
func OpenSessionStore(app string) (*SessionStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	return NewSessionStore(m)
}

// NewSessionStore wraps m and loads the saved state. A load failure leaves
// the store empty and is returned alongside the usable store.
func NewSessionStore(m *gdata.Manager) (*SessionStore, error) {
	s := &SessionStore{manager: m}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *SessionStore) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(sessionObject, sessionProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(sessionObject, sessionProperty)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	var st sessionState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	s.state = st
	return nil
}

// LastPage returns the remembered page identity.
func (s *SessionStore) LastPage() (string, bool) {
	return s.state.LastPage, s.state.LastPage != ""
}

// Remember records page and persists it.
func (s *SessionStore) Remember(page string) error {
	s.state.LastPage = page
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.manager.SaveObjectProp(sessionObject, sessionProperty, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
