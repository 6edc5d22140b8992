package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.Equal(t, "openshelf", cfg.System.Appid)
	require.Equal(t, 10, cfg.Shop.PageSize)
}

func TestLoadConfigFromFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "openshelf.yml")
	content := `
system:
  appid: shoptest
  workdir: /tmp/shoptest
web:
  host: 127.0.0.1
  port: 9000
  secret: filesecret
database:
  type: postgres
  host: dbhost
  port: 5432
  name: shop
  user: shop
  passwd: shop
shop:
  page_size: 0
  media_url: https://cdn.example.com/media
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o644))

	cfg := LoadConfig(cfile)
	require.Equal(t, "shoptest", cfg.System.Appid)
	require.Equal(t, 9000, cfg.Web.Port)
	require.Equal(t, "https://cdn.example.com/media", cfg.Shop.MediaURL)
	// zero page size falls back to the default
	require.Equal(t, 10, cfg.Shop.PageSize)
	require.Equal(t, "host=dbhost port=5432 user=shop dbname=shop password=shop sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENSHELF_DB_HOST", "override-host")
	t.Setenv("OPENSHELF_WEB_SECRET", "override-secret")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.Equal(t, "override-host", cfg.Database.Host)
	require.Equal(t, "override-secret", cfg.Web.Secret)
}
