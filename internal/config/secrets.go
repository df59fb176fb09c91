// internal/config/secrets.go
//
// Vault-backed secret resolution.
//
// Context
// -------
// Operators keep secret material (DB password, Spotify client secret,
// Gemini API key) out of YAML and git by writing a reference of the form
//
//	vault:<kv-path>#<field>
//
// in place of the literal value.  After unmarshalling, resolveSecrets
// walks the known secret fields and swaps each reference for the value
// fetched from Vault.  The client is only constructed when at least one
// reference is present, so local setups with plain values never need a
// Vault server.

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yanizio/keepsake/internal/vault"
)

const vaultPrefix = "vault:"

// resolveSecrets replaces every `vault:` reference in cfg in place.
func resolveSecrets(cfg *Config) error {
	fields := []*string{
		&cfg.Database.Password,
		&cfg.Spotify.ClientSecret,
		&cfg.Gemini.APIKey,
	}

	var cli *vault.Client
	for _, f := range fields {
		if !strings.HasPrefix(*f, vaultPrefix) {
			continue
		}
		if cli == nil {
			var err error
			cli, err = vault.New()
			if err != nil {
				return fmt.Errorf("vault client: %w", err)
			}
		}

		path, key, ok := strings.Cut(strings.TrimPrefix(*f, vaultPrefix), "#")
		if !ok {
			return fmt.Errorf("malformed vault reference %q (want vault:path#key)", *f)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		val, err := cli.GetKV(ctx, path, key)
		cancel()
		if err != nil {
			return fmt.Errorf("resolve %s#%s: %w", path, key, err)
		}
		*f = val
	}
	return nil
}
