package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/psiconf/internal/config"
	"github.com/ruminaider/psiconf/internal/profiles"
	"github.com/stretchr/testify/require"
)

const legacyDoc = `<psiconf version="1.0">
  <progver>0.10</progver>
  <useSound>true</useSound>
  <accounts>
    <account>
      <name>Home</name>
      <jid>me@example.com</jid>
      <proxytype>1</proxytype>
      <proxyhost>gw.home</proxyhost>
    </account>
  </accounts>
  <preferences>
    <presence>
      <statuspresets>
        <preset name="Lunch" status="xa">eating</preset>
      </statuspresets>
    </presence>
  </preferences>
</psiconf>`

var yamlStore = config.StoreConfig{Backend: config.BackendYAML, File: "options.yaml"}

func setupRoots(t *testing.T) profiles.Roots {
	t.Helper()
	base := t.TempDir()
	r := profiles.Roots{
		Config: filepath.Join(base, "config"),
		Data:   filepath.Join(base, "data"),
		Cache:  filepath.Join(base, "cache"),
	}
	require.NoError(t, r.EnsureRoots())
	return r
}

// setupLegacyProfile creates a profile holding doc as its config.xml.
func setupLegacyProfile(t *testing.T, r profiles.Roots, name, doc string) {
	t.Helper()
	require.NoError(t, r.New(name))
	require.NoError(t, os.WriteFile(r.ConfigFile(name), []byte(doc), 0o644))
}
