package vaultstore

import (
	"fmt"
	"os"
	"strings"

	vserrors "github.com/systmms/vaultstore/internal/errors"
	"gopkg.in/yaml.v3"
)

// Supported authentication methods.
const (
	// AuthToken embeds a pre-issued token in the handle; no login round trip.
	AuthToken = "token"
	// AuthUserpass performs a password grant against the userpass backend.
	AuthUserpass = "userpass"
	// AuthLDAP performs a directory-bind grant against the LDAP backend.
	AuthLDAP = "ldap"
)

// Config holds the immutable store configuration. It is supplied once at
// construction and never mutated afterwards. The credential itself (token or
// password) is passed separately to New so it can be held in protected
// memory rather than on this struct.
type Config struct {
	Address    string `yaml:"address"`     // Vault server address
	PathPrefix string `yaml:"path_prefix"` // prefix under which entity secrets live
	AuthMethod string `yaml:"auth_method"` // token, userpass or ldap
	Username   string `yaml:"username"`    // principal for userpass/ldap auth
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, vserrors.ConfigError{
				Field:      "path",
				Value:      path,
				Message:    "configuration file not found",
				Suggestion: "Check the path handed in by the hosting process",
			}
		}
		return Config{}, vserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, vserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	return cfg, nil
}

// FromEnv returns a copy of the configuration with standard Vault
// environment variables applied on top.
func (c Config) FromEnv() Config {
	if addr := os.Getenv("VAULT_ADDR"); addr != "" {
		c.Address = addr
	}
	if prefix := os.Getenv("VAULT_PATH_PREFIX"); prefix != "" {
		c.PathPrefix = prefix
	}
	if method := os.Getenv("VAULT_AUTH_METHOD"); method != "" {
		c.AuthMethod = method
	}
	if username := os.Getenv("VAULT_USERNAME"); username != "" {
		c.Username = username
	}
	return c
}

// Validate checks that all required fields are present and consistent.
// It runs before any network activity; a failure here is fatal and is
// never retried.
func (c Config) Validate() error {
	var missing []string
	if c.Address == "" {
		missing = append(missing, "address")
	}
	if c.PathPrefix == "" {
		missing = append(missing, "path_prefix")
	}
	if c.AuthMethod == "" {
		missing = append(missing, "auth_method")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRequiredOptionsMissing, strings.Join(missing, ", "))
	}

	switch c.AuthMethod {
	case AuthToken:
	case AuthUserpass:
		if c.Username == "" {
			return vserrors.ConfigError{
				Field:      "username",
				Message:    "username is required for userpass auth",
				Suggestion: "Set 'username' in the store configuration",
			}
		}
	case AuthLDAP:
		if c.Username == "" {
			return vserrors.ConfigError{
				Field:      "username",
				Message:    "username is required for LDAP auth",
				Suggestion: "Set 'username' in the store configuration",
			}
		}
	default:
		return vserrors.ConfigError{
			Field:      "auth_method",
			Value:      c.AuthMethod,
			Message:    "unsupported authentication method",
			Suggestion: "Supported methods: token, userpass, ldap",
		}
	}

	return nil
}

// credentialEnvVar names the environment variable consulted when no
// credential is passed to New, per auth method.
func credentialEnvVar(authMethod string) string {
	switch authMethod {
	case AuthUserpass:
		return "VAULT_USERPASS_PASSWORD"
	case AuthLDAP:
		return "VAULT_LDAP_PASSWORD"
	default:
		return "VAULT_TOKEN"
	}
}
