package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCRIPTDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "flat", cfg.UI.HelpStyle)
	require.Equal(t, 10000, cfg.Runner.HTTPTimeoutMS)
	require.Contains(t, cfg.Database.Path, "scriptdeck.db")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[database]
path = "/tmp/deck.db"

[runner]
http_timeout_ms = 2500

[ui]
help_style = "expand"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("SCRIPTDECK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/deck.db", cfg.Database.Path)
	require.Equal(t, 2500, cfg.Runner.HTTPTimeoutMS)
	require.Equal(t, "expand", cfg.UI.HelpStyle)
}

func TestLoadNormalizesBadHelpStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nhelp_style = \"fancy\"\n"), 0o644))
	t.Setenv("SCRIPTDECK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "flat", cfg.UI.HelpStyle)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SCRIPTDECK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.HelpStyle = "expand"
	cfg.Runner.HTTPTimeoutMS = 1234
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "expand", again.UI.HelpStyle)
	require.Equal(t, 1234, again.Runner.HTTPTimeoutMS)
	require.Equal(t, cfg.Database.Path, again.Database.Path)
}
