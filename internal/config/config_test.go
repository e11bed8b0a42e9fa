package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFromEnv checks that environment variables override the development
// defaults.
func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("DBUSER", "f1")
	t.Setenv("DBPWD", "secret")
	t.Setenv("DBHOST", "db:3306")
	t.Setenv("DBNAME", "standings")
	t.Setenv("GIN_MODE", "release")

	cfg := FromEnv()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.True(t, cfg.Production)
	assert.Equal(t, "f1:secret@tcp(db:3306)/standings?parseTime=true", cfg.MySQL.DSN())
}

// TestLoadOverridesEnv checks that a YAML file wins over the environment for
// the fields it sets.
func TestLoadOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
port: 8081
backend: memory
store_timeout: 3s
`), 0o644)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
}

// TestLoadInvalid checks that broken files and invalid values are rejected.
func TestLoadInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("backend: papertape\n"), 0o644)
	_, err = Load(path)
	assert.ErrorContains(t, err, "unknown store backend")
}

// TestValidate checks the restricted value sets directly.
func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, Backend: BackendDatabase, StoreTimeout: time.Second}
	assert.NoError(t, valid.Validate())

	badPort := valid
	badPort.Port = 0
	assert.ErrorContains(t, badPort.Validate(), "invalid port")

	badTimeout := valid
	badTimeout.StoreTimeout = 0
	assert.ErrorContains(t, badTimeout.Validate(), "store timeout")
}
