// File: internal/session/store.go
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Account is one cached identity on this device: enough display metadata to
// render an account switcher plus the session token issued for it.
type Account struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Token   string `json:"token"`
}

// state is the persisted blob: the active-token pointer and the account list.
// The pointer is separate from the list; switching accounts repoints it
// without discarding other entries.
type state struct {
	ActiveToken string    `json:"token,omitempty"`
	Accounts    []Account `json:"accounts"`
}

// Store is the device-local multi-account cache. All operations are
// synchronous; the mutex gives them the same atomicity the browser event
// loop gives localStorage updates.
type Store struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
	st state
}

// Open loads the account cache at path, creating parent directories as
// needed. A missing or unparsable blob degrades to an empty cache rather
// than failing.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("session store path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session store directory: %w", err)
	}

	s := &Store{path: path, logger: logger}
	raw, err := os.ReadFile(path)
	if err == nil {
		if jerr := json.Unmarshal(raw, &s.st); jerr != nil {
			logger.Warn("Account cache unparsable, starting empty", zap.Error(jerr))
			s.st = state{}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}
	return s, nil
}

// UpsertAccount updates an entry matched by id (falling back to a
// case-insensitive email match) or appends a new one, and always repoints
// the active token to this account's token.
func (s *Store) UpsertAccount(acc Account) error {
	if acc.Token == "" {
		return fmt.Errorf("account token cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(acc.ID, acc.Email)
	if idx >= 0 {
		s.st.Accounts[idx].Token = acc.Token
		s.st.Accounts[idx].Name = acc.Name
		s.st.Accounts[idx].Picture = acc.Picture
	} else {
		s.st.Accounts = append(s.st.Accounts, acc)
	}
	s.st.ActiveToken = acc.Token
	return s.persistLocked()
}

// RemoveAccount drops the entry with the given id. Removing the account that
// owns the active token also clears the pointer (logs the caller out).
func (s *Store) RemoveAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.st.Accounts[:0]
	for _, a := range s.st.Accounts {
		if a.ID == id {
			if a.Token == s.st.ActiveToken {
				s.st.ActiveToken = ""
			}
			continue
		}
		kept = append(kept, a)
	}
	s.st.Accounts = kept
	return s.persistLocked()
}

// SwitchActive repoints the active token to the entry with the given id and
// reports whether it was found. State is untouched when it is not.
func (s *Store) SwitchActive(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.st.Accounts {
		if a.ID == id {
			s.st.ActiveToken = a.Token
			return true, s.persistLocked()
		}
	}
	return false, nil
}

// ActiveAccount resolves the active token back to its owning entry. The
// second return is false when the pointer is unset or stale.
func (s *Store) ActiveAccount() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.ActiveToken == "" {
		return Account{}, false
	}
	for _, a := range s.st.Accounts {
		if a.Token == s.st.ActiveToken {
			return a, true
		}
	}
	return Account{}, false
}

// ActiveToken returns the raw active token, or "" when none is set.
func (s *Store) ActiveToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ActiveToken
}

// Accounts returns a copy of the cached account list.
func (s *Store) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Account, len(s.st.Accounts))
	copy(out, s.st.Accounts)
	return out
}

func (s *Store) findLocked(id, email string) int {
	for i, a := range s.st.Accounts {
		if id != "" && a.ID == id {
			return i
		}
		if email != "" && strings.EqualFold(a.Email, email) {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.st)
	if err != nil {
		return fmt.Errorf("failed to encode account cache: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write account cache: %w", err)
	}
	return nil
}
