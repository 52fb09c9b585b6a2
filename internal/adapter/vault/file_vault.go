// Package vault persists the session credential pair between runs. It is
// the client-side counterpart of the browser's local storage: two entries,
// the opaque token and the user profile, written together and removed
// together.
package vault

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cousoworks/tech-store/internal/entity"
)

const (
	tokenFile = "auth_token"
	userFile  = "auth_usuario.json"
)

// ErrNoSession means the vault holds no usable pair. A half-written pair is
// reported the same way after both entries have been cleared.
var ErrNoSession = errors.New("no stored session")

type FileVault struct {
	dir string
}

func NewFileVault(dir string) *FileVault {
	return &FileVault{dir: dir}
}

// storedUser mirrors the profile fields worth keeping between runs.
type storedUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"nombre"`
	Surname string `json:"apellidos,omitempty"`
	Role    string `json:"rol"`
	Active  bool   `json:"activo"`
}

// Save writes the pair. The token lands last so a crash mid-save leaves a
// partial pair, which Load treats as absent.
func (v *FileVault) Save(s entity.Session) error {
	if err := os.MkdirAll(v.dir, 0o700); err != nil {
		return err
	}
	u := storedUser{
		ID:      s.User.ID,
		Email:   s.User.Email,
		Name:    s.User.Name,
		Surname: s.User.Surname,
		Role:    string(s.User.Role),
		Active:  s.User.Active,
	}
	buf, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(v.dir, userFile), buf, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(v.dir, tokenFile), []byte(s.Token), 0o600)
}

// Load returns the stored session. A pair with either entry missing or
// unreadable is cleared and reported as ErrNoSession.
func (v *FileVault) Load() (entity.Session, error) {
	tok, tokErr := os.ReadFile(filepath.Join(v.dir, tokenFile))
	raw, userErr := os.ReadFile(filepath.Join(v.dir, userFile))

	if tokErr != nil || userErr != nil || len(tok) == 0 {
		if !bothMissing(tokErr, userErr) {
			_ = v.Clear()
		}
		return entity.Session{}, ErrNoSession
	}

	var u storedUser
	if err := json.Unmarshal(raw, &u); err != nil {
		_ = v.Clear()
		return entity.Session{}, ErrNoSession
	}

	return entity.Session{
		User: entity.User{
			ID:      u.ID,
			Email:   u.Email,
			Name:    u.Name,
			Surname: u.Surname,
			Role:    entity.Role(u.Role),
			Active:  u.Active,
		},
		Token:     string(tok),
		TokenType: "bearer",
	}, nil
}

// Clear removes both entries. Never fails: a missing file is already clear.
func (v *FileVault) Clear() error {
	_ = os.Remove(filepath.Join(v.dir, tokenFile))
	_ = os.Remove(filepath.Join(v.dir, userFile))
	return nil
}

func bothMissing(a, b error) bool {
	return errors.Is(a, fs.ErrNotExist) && errors.Is(b, fs.ErrNotExist)
}
