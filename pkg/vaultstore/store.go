// Package vaultstore provides a client-side access layer for a Vault-backed
// secret store. Secrets are opaque values keyed by an entity id and live at
// a fixed path prefix; the package owns authentication bootstrapping and
// transparently re-authenticates and retries exactly once when the backend
// reports a stale session.
package vaultstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
	vserrors "github.com/systmms/vaultstore/internal/errors"
	"github.com/systmms/vaultstore/internal/logging"
	"github.com/systmms/vaultstore/internal/metrics"
	"github.com/systmms/vaultstore/internal/secure"
)

// Store exposes write, read and delete operations over entity ids. All
// operations require Initialize to have succeeded first.
//
// A Store holds a single logical session. Concurrent operations are allowed
// but session replacement is not serialized against in-flight siblings: a
// sibling sees a replaced session only on its next attempt. Callers that
// need strict ordering must impose it externally.
type Store struct {
	cfg     Config
	client  StoreClient
	session *sessionManager
	logger  *logging.Logger
}

// Option configures optional collaborators on a Store.
type Option func(*Store)

// WithLogger injects the observability hook used for the authentication
// notice and debug output.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClient substitutes the remote store client. Primarily a test seam.
func WithClient(client StoreClient) Option {
	return func(s *Store) {
		s.client = client
	}
}

// New validates the configuration and constructs a Store. The credential is
// the token (token auth) or password (userpass/ldap auth); when empty, the
// method-specific environment variable is consulted. The credential is held
// in protected memory and only decrypted during authentication.
//
// No network activity happens here; call Initialize before any operation.
func New(cfg Config, credential string, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if credential == "" {
		credential = os.Getenv(credentialEnvVar(cfg.AuthMethod))
	}
	if credential == "" {
		return nil, fmt.Errorf("%w: credential (or %s)", ErrRequiredOptionsMissing, credentialEnvVar(cfg.AuthMethod))
	}

	store := &Store{
		cfg:    cfg,
		logger: logging.New(false, false),
	}
	for _, opt := range opts {
		opt(store)
	}

	if store.client == nil {
		client, err := newAPIClient(cfg.Address)
		if err != nil {
			return nil, err
		}
		store.client = client
	}

	buf, err := secure.NewSecureBuffer([]byte(credential))
	if err != nil {
		return nil, err
	}
	store.session = newSessionManager(cfg, buf, store.client, store.logger)

	return store, nil
}

// Initialize establishes the authenticated session. It must be called before
// any other operation and may be called again at any time; the previous
// session is simply replaced.
func (s *Store) Initialize(ctx context.Context) error {
	return s.session.initialize(ctx)
}

// Write stores value as the secret for entityID. The returned
// acknowledgement is whatever the backend produced; callers should not
// depend on its shape beyond success.
func (s *Store) Write(ctx context.Context, entityID string, value interface{}) (*api.Secret, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{"value": value},
	}

	var ack *api.Secret
	err := s.do(ctx, "write", entityID, func(ctx context.Context) error {
		var err error
		ack, err = s.client.Write(ctx, s.secretPath(entityID), payload)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// Read returns the secret value stored for entityID. A missing secret
// yields NotFoundError carrying the entity id.
func (s *Store) Read(ctx context.Context, entityID string) (interface{}, error) {
	var value interface{}
	err := s.do(ctx, "read", entityID, func(ctx context.Context) error {
		secret, err := s.client.Read(ctx, s.secretPath(entityID))
		if err != nil {
			return err
		}
		if secret == nil || secret.Data == nil {
			// The API client reports a missing secret as a nil response.
			return fmt.Errorf("secret not found at %s", s.secretPath(entityID))
		}

		nested, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return fmt.Errorf("malformed secret payload at %s: missing data envelope", s.secretPath(entityID))
		}
		v, ok := nested["value"]
		if !ok {
			return fmt.Errorf("malformed secret payload at %s: missing value field", s.secretPath(entityID))
		}

		value = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete removes the secret stored for entityID.
func (s *Store) Delete(ctx context.Context, entityID string) (*api.Secret, error) {
	var ack *api.Secret
	err := s.do(ctx, "delete", entityID, func(ctx context.Context) error {
		var err error
		ack, err = s.client.Delete(ctx, s.secretPath(entityID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// do runs one logical operation with the shared control skeleton: issue the
// round trip, classify a failure, and on a transient access denial
// re-authenticate and retry exactly once. The attempt counter bounds the
// loop; a second failure of any kind is surfaced without further retries.
func (s *Store) do(ctx context.Context, op, entityID string, call func(context.Context) error) error {
	const maxAttempts = 2

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = call(ctx)
		if err == nil {
			metrics.RecordOperation(op, "success")
			return nil
		}

		v := classify(err)
		if v == verdictDeniedTransient && attempt < maxAttempts {
			s.logger.Debug("%s denied for entity %v, re-authenticating", op, logging.Secret(entityID))
			metrics.RecordRetry(op)
			if authErr := s.session.initialize(ctx); authErr != nil {
				metrics.RecordOperation(op, "error")
				return authErr
			}
			continue
		}

		metrics.RecordOperation(op, "error")
		switch v {
		case verdictNotFound:
			return NotFoundError{EntityID: entityID, Err: err}
		case verdictUnavailable:
			if suggestion := vserrors.VaultSuggestion(err, s.cfg.Address); suggestion != "" {
				s.logger.Warn("%s", suggestion)
			}
			return UnavailableError{Err: err}
		default:
			return err
		}
	}
	return err
}

func (s *Store) secretPath(entityID string) string {
	return strings.TrimSuffix(s.cfg.PathPrefix, "/") + "/" + entityID
}
