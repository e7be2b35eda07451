package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/ruminaider/psiconf/internal/commands"
	"github.com/ruminaider/psiconf/internal/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfile(t *testing.T) {
	r := setupRoots(t)

	name, err := commands.ResolveProfile(r, "", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", name)

	_, err = commands.ResolveProfile(r, "", "")
	assert.ErrorIs(t, err, profiles.ErrNotFound)

	require.NoError(t, r.New("work"))
	require.NoError(t, r.WriteActive("work"))
	name, err = commands.ResolveProfile(r, "", "default")
	require.NoError(t, err)
	assert.Equal(t, "work", name)

	name, err = commands.ResolveProfile(r, "explicit", "default")
	require.NoError(t, err)
	assert.Equal(t, "explicit", name)
}

func TestProfileCreateMakesRoots(t *testing.T) {
	base := t.TempDir()
	r := profiles.Roots{
		Config: filepath.Join(base, "c"),
		Data:   filepath.Join(base, "d"),
		Cache:  filepath.Join(base, "k"),
	}
	require.NoError(t, commands.ProfileCreate(r, "fresh"))
	assert.DirExists(t, filepath.Join(r.Config, "fresh"))
}

func TestProfileRenameFollowsActive(t *testing.T) {
	r := setupRoots(t)
	require.NoError(t, r.New("old"))
	require.NoError(t, r.New("other"))
	require.NoError(t, r.WriteActive("old"))

	require.NoError(t, commands.ProfileRename(r, "old", "renamed"))
	active, err := r.ReadActive()
	require.NoError(t, err)
	assert.Equal(t, "renamed", active)

	require.NoError(t, commands.ProfileRename(r, "other", "another"))
	active, err = r.ReadActive()
	require.NoError(t, err)
	assert.Equal(t, "renamed", active)
}

func TestProfileDelete(t *testing.T) {
	r := setupRoots(t)
	require.NoError(t, r.New("gone"))
	require.NoError(t, r.WriteActive("gone"))

	require.NoError(t, commands.ProfileDelete(r, "gone"))
	assert.NoDirExists(t, filepath.Join(r.Config, "gone"))
	active, err := r.ReadActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, commands.ProfileDelete(r, "gone"), profiles.ErrNotFound)
}

func TestProfileDeleteMatchesCase(t *testing.T) {
	r := setupRoots(t)
	require.NoError(t, commands.ProfileCreate(r, "alice"))
	require.NoError(t, r.WriteActive("alice"))

	require.NoError(t, commands.ProfileDelete(r, "ALICE"))
	for _, dir := range r.Dirs("alice") {
		assert.NoDirExists(t, dir)
	}
	active, err := r.ReadActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestProfileRenameMatchesCase(t *testing.T) {
	r := setupRoots(t)
	require.NoError(t, commands.ProfileCreate(r, "alice"))
	require.NoError(t, r.WriteActive("alice"))

	require.NoError(t, commands.ProfileRename(r, "ALICE", "bob"))
	names, err := r.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names)

	active, err := r.ReadActive()
	require.NoError(t, err)
	assert.Equal(t, "bob", active)
}

func TestProfileRenameErrors(t *testing.T) {
	r := setupRoots(t)
	assert.ErrorIs(t, commands.ProfileRename(r, "ghost", "spirit"), profiles.ErrNotFound)
	assert.ErrorIs(t, commands.ProfileRename(r, "../victim", "stolen"), profiles.ErrInvalidName)
}
