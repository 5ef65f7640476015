package vaultstore

import (
	"context"
	"fmt"
	"sync"

	vserrors "github.com/systmms/vaultstore/internal/errors"
	"github.com/systmms/vaultstore/internal/logging"
	"github.com/systmms/vaultstore/internal/metrics"
	"github.com/systmms/vaultstore/internal/secure"
)

// sessionManager owns the authenticated handle to the secret store. It
// performs the initial authentication and replaces the session token on
// demand when the accessor detects a stale session.
type sessionManager struct {
	cfg        Config
	credential *secure.SecureBuffer
	client     StoreClient
	logger     *logging.Logger

	mu          sync.Mutex
	established bool
}

func newSessionManager(cfg Config, credential *secure.SecureBuffer, client StoreClient, logger *logging.Logger) *sessionManager {
	return &sessionManager{
		cfg:        cfg,
		credential: credential,
		client:     client,
		logger:     logger,
	}
}

// initialize establishes the session, replacing any previous one. It is
// idempotent and is reused verbatim for re-authentication: token auth
// installs the configured token without a network round trip, userpass and
// ldap perform their login grant and install the returned session token.
//
// A login failure is never retried here; the hosting process decides
// whether to abort.
func (s *sessionManager) initialize(ctx context.Context) error {
	locked, err := s.credential.Open()
	if err != nil {
		return AuthenticationError{Mode: s.cfg.AuthMethod, Err: err}
	}
	defer locked.Destroy()

	switch s.cfg.AuthMethod {
	case AuthToken:
		s.install(string(locked.Bytes()))

	case AuthUserpass, AuthLDAP:
		password := string(locked.Bytes())
		authPath := fmt.Sprintf("auth/%s/login/%s", s.cfg.AuthMethod, s.cfg.Username)
		token, err := s.client.Login(ctx, authPath, map[string]interface{}{
			"password": password,
		})
		if err != nil {
			// Backend login errors may echo the submitted credential.
			s.logger.Debug("login exchange failed: %s", logging.Redact(err.Error(), []string{password}))
			if suggestion := vserrors.VaultSuggestion(err, s.cfg.Address); suggestion != "" {
				s.logger.Warn("%s", suggestion)
			}
			return AuthenticationError{Mode: s.cfg.AuthMethod, Err: err}
		}
		s.install(token)

	default:
		return AuthenticationError{
			Mode: s.cfg.AuthMethod,
			Err:  fmt.Errorf("unsupported auth method %q", s.cfg.AuthMethod),
		}
	}

	s.logger.Info("authenticated to vault at %s using %s auth", s.cfg.Address, s.cfg.AuthMethod)
	return nil
}

// install swaps the session token into the handle. The mutex guards only the
// swap and the established flag; operations are never serialized against a
// re-authentication — an in-flight sibling sees the new session on its next
// attempt.
func (s *sessionManager) install(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client.SetToken(token)
	if s.established {
		metrics.RecordReauthentication()
	}
	s.established = true
}
