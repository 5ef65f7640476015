package vaultstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vserrors "github.com/systmms/vaultstore/internal/errors"
)

func TestConfig_Validate_MissingFields(t *testing.T) {
	t.Parallel()

	err := Config{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequiredOptionsMissing))
	assert.Contains(t, err.Error(), "address")
	assert.Contains(t, err.Error(), "path_prefix")
	assert.Contains(t, err.Error(), "auth_method")
}

func TestConfig_Validate_TokenAuth(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Address:    "http://localhost:8200",
		PathPrefix: "secret/entities",
		AuthMethod: AuthToken,
	}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_UsernameRequired(t *testing.T) {
	t.Parallel()

	for _, method := range []string{AuthUserpass, AuthLDAP} {
		cfg := Config{
			Address:    "http://localhost:8200",
			PathPrefix: "secret/entities",
			AuthMethod: method,
		}

		err := cfg.Validate()
		require.Error(t, err)

		var cfgErr vserrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "username", cfgErr.Field)
	}
}

func TestConfig_Validate_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Address:    "http://localhost:8200",
		PathPrefix: "secret/entities",
		AuthMethod: "oauth",
	}

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr vserrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "auth_method", cfgErr.Field)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vaultstore.yaml")
	content := []byte("address: http://vault:8200\npath_prefix: secret/entities\nauth_method: userpass\nusername: svc-account\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://vault:8200", cfg.Address)
	assert.Equal(t, "secret/entities", cfg.PathPrefix)
	assert.Equal(t, AuthUserpass, cfg.AuthMethod)
	assert.Equal(t, "svc-account", cfg.Username)
}

func TestLoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var cfgErr vserrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: [unclosed"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)

	var cfgErr vserrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("VAULT_ADDR", "http://override:8200")
	t.Setenv("VAULT_AUTH_METHOD", "ldap")

	cfg := Config{
		Address:    "http://original:8200",
		PathPrefix: "secret/entities",
		AuthMethod: AuthToken,
		Username:   "alice",
	}.FromEnv()

	assert.Equal(t, "http://override:8200", cfg.Address)
	assert.Equal(t, AuthLDAP, cfg.AuthMethod)
	// Untouched fields survive.
	assert.Equal(t, "secret/entities", cfg.PathPrefix)
	assert.Equal(t, "alice", cfg.Username)
}
