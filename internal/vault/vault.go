// internal/vault/vault.go
//
// Vault client wrapper for Keepsake.
//
// Context
// -------
//   - Provides a concurrency-safe wrapper around the HashiCorp Vault Go SDK.
//   - Adds simple KV-v2 read helpers and per-key caching, so repeated config
//     reloads do not hammer the Vault server.
//   - Address and token come from the standard VAULT_ADDR and VAULT_TOKEN
//     environment variables (the SDK reads them itself).
//
// Public workflow
// ---------------
//  1. cli, err := vault.New()                   // during boot, on demand.
//  2. val, err := cli.GetKV(ctx, path, key)     // per secret reference.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	vaultapi "github.com/hashicorp/vault/api"
)

// cacheTTL keeps resolved secrets warm across config reloads without
// holding stale credentials for long.
const cacheTTL = 5 * time.Minute

// Client is safe for concurrent use.  Zero value is invalid; build one
// with New.
type Client struct {
	api *vaultapi.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // "path#key" → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New builds a Client from the process environment.  A missing address or
// token surfaces here, not on first read.
func New() (*Client, error) {
	cfg := vaultapi.DefaultConfig()
	api, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if api.Address() == "" {
		return nil, errors.New("vault: VAULT_ADDR is not set")
	}
	if api.Token() == "" {
		return nil, errors.New("vault: VAULT_TOKEN is not set")
	}
	return &Client{api: api, cache: make(map[string]cached)}, nil
}

// GetKV reads one field from a KV-v2 secret.  Results are cached for a
// short window keyed by path#key.
func (c *Client) GetKV(ctx context.Context, path, key string) (string, error) {
	cacheKey := path + "#" + key

	c.cacheMu.RLock()
	if hit, ok := c.cache[cacheKey]; ok && time.Now().Before(hit.exp) {
		c.cacheMu.RUnlock()
		return hit.val, nil
	}
	c.cacheMu.RUnlock()

	secret, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", path, err)
	}
	if secret == nil {
		return "", fmt.Errorf("vault: no secret at %s", path)
	}

	// KV-v2 wraps the payload in a "data" map; fall back to flat for v1.
	data := secret.Data
	if inner, ok := data["data"].(map[string]any); ok {
		data = inner
	}

	raw, ok := data[key]
	if !ok {
		return "", fmt.Errorf("vault: key %q missing at %s", key, path)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: key %q at %s is not a string", key, path)
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = cached{val: val, exp: time.Now().Add(cacheTTL)}
	c.cacheMu.Unlock()
	return val, nil
}
