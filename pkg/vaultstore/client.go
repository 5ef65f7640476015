package vaultstore

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// StoreClient is the capability surface this package needs from the remote
// secret store. The production implementation wraps the official Vault API
// client; tests substitute a mock.
type StoreClient interface {
	// Login performs a login grant at the given auth path and returns the
	// issued session token.
	Login(ctx context.Context, authPath string, credentials map[string]interface{}) (string, error)

	// SetToken installs the session token used by subsequent operations.
	SetToken(token string)

	Write(ctx context.Context, path string, data map[string]interface{}) (*api.Secret, error)
	Read(ctx context.Context, path string) (*api.Secret, error)
	Delete(ctx context.Context, path string) (*api.Secret, error)
}

// apiClient implements StoreClient over github.com/hashicorp/vault/api.
type apiClient struct {
	client *api.Client
}

func newAPIClient(address string) (*apiClient, error) {
	cfg := api.DefaultConfig()
	if address != "" {
		cfg.Address = address
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	return &apiClient{client: client}, nil
}

func (c *apiClient) Login(ctx context.Context, authPath string, credentials map[string]interface{}) (string, error) {
	secret, err := c.client.Logical().WriteWithContext(ctx, authPath, credentials)
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Auth == nil || secret.Auth.ClientToken == "" {
		return "", fmt.Errorf("no token received from login at %s", authPath)
	}
	return secret.Auth.ClientToken, nil
}

func (c *apiClient) SetToken(token string) {
	c.client.SetToken(token)
}

func (c *apiClient) Write(ctx context.Context, path string, data map[string]interface{}) (*api.Secret, error) {
	return c.client.Logical().WriteWithContext(ctx, path, data)
}

func (c *apiClient) Read(ctx context.Context, path string) (*api.Secret, error) {
	return c.client.Logical().ReadWithContext(ctx, path)
}

func (c *apiClient) Delete(ctx context.Context, path string) (*api.Secret, error) {
	return c.client.Logical().DeleteWithContext(ctx, path)
}
