// internal/config/model.go
//
// Typed configuration model for Keepsake.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                            – dotenv values,
//   • `conf/global.yaml`                         – primary static file,
//   • `KEEPSAKE_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so the rest of the app
// only ever sees plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.  CORSOrigin is the single frontend
// origin allowed to call the API (the dashboard SPA dev server).
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
	CORSOrigin string `koanf:"cors_origin"`
}

//
// Database section
//

// Database holds the DSN template and its secret.  The template stays in
// YAML so operators can tweak host, port, or flags without touching
// Vault; the password slots into the template's single %s verb at load
// time and may itself be a `vault:` reference.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
}

//
// Collaborator sections
//

// Spotify holds the client-credentials pair for catalog search.
type Spotify struct {
	ClientID     string `koanf:"client_id"     validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
}

// Gemini holds the generation API key and model name.
type Gemini struct {
	APIKey string `koanf:"api_key" validate:"required"`
	Model  string `koanf:"model"`
}

//
// Geo section (optional)
//

// Geo points at a local GeoLite2-City database.  When the path is empty
// the access log simply omits country information.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime and never set in YAML or env.  The loader
// discovers `Root` (repo root or KEEPSAKE_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // KEEPSAKE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Spotify  Spotify  `koanf:"spotify"`
	Gemini   Gemini   `koanf:"gemini"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
