package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cousoworks/tech-store/internal/entity"
)

func testSession() entity.Session {
	return entity.Session{
		User: entity.User{
			ID:      3,
			Email:   "ana@example.com",
			Name:    "Ana",
			Surname: "García",
			Role:    entity.RoleCustomer,
			Active:  true,
		},
		Token:     "tok-xyz",
		TokenType: "bearer",
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	v := NewFileVault(t.TempDir())
	require.NoError(t, v.Save(testSession()))

	got, err := v.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", got.Token)
	assert.Equal(t, "bearer", got.TokenType)
	assert.Equal(t, "ana@example.com", got.User.Email)
	assert.Equal(t, entity.RoleCustomer, got.User.Role)
	assert.True(t, got.User.Active)
}

func TestLoadEmptyVault(t *testing.T) {
	v := NewFileVault(t.TempDir())

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadVaultDirMissing(t *testing.T) {
	v := NewFileVault(filepath.Join(t.TempDir(), "never-created"))

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPartialPairIsClearedAndAbsent(t *testing.T) {
	dir := t.TempDir()
	v := NewFileVault(dir)
	require.NoError(t, v.Save(testSession()))
	require.NoError(t, os.Remove(filepath.Join(dir, tokenFile)))

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// The orphaned profile must be gone too.
	_, statErr := os.Stat(filepath.Join(dir, userFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCorruptProfileIsCleared(t *testing.T) {
	dir := t.TempDir()
	v := NewFileVault(dir)
	require.NoError(t, v.Save(testSession()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0o600))

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	_, statErr := os.Stat(filepath.Join(dir, tokenFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmptyTokenTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	v := NewFileVault(dir)
	require.NoError(t, v.Save(testSession()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tokenFile), nil, 0o600))

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveOverwritesPreviousSession(t *testing.T) {
	v := NewFileVault(t.TempDir())
	require.NoError(t, v.Save(testSession()))

	next := testSession()
	next.Token = "tok-next"
	next.User.Email = "luis@example.com"
	require.NoError(t, v.Save(next))

	got, err := v.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-next", got.Token)
	assert.Equal(t, "luis@example.com", got.User.Email)
}

func TestClearIsIdempotent(t *testing.T) {
	v := NewFileVault(t.TempDir())
	require.NoError(t, v.Clear())
	require.NoError(t, v.Save(testSession()))
	require.NoError(t, v.Clear())
	require.NoError(t, v.Clear())

	_, err := v.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
