// cmd/web/main.go
//
// Keepsake – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate configuration (YAML + env overlays + Vault refs).
//
//  4. Open the MySQL pool and run pending schema migrations.
//
//  5. Build the shared collaborators: Spotify catalog client and the
//     Gemini generation client.
//
//  6. Assemble the chi router: request enrichment and access log,
//     security headers, CORS, the seven content routers, Prometheus
//     /metrics, and a /healthz probe.
//
//  7. Wrap the router with ForceHTTPS middleware and serve with hardened
//     timeouts.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/keepsake/internal/comics"
	"github.com/yanizio/keepsake/internal/config"
	"github.com/yanizio/keepsake/internal/database"
	"github.com/yanizio/keepsake/internal/gallery"
	"github.com/yanizio/keepsake/internal/genai"
	"github.com/yanizio/keepsake/internal/logger"
	"github.com/yanizio/keepsake/internal/memories"
	"github.com/yanizio/keepsake/internal/middleware"
	"github.com/yanizio/keepsake/internal/muse"
	"github.com/yanizio/keepsake/internal/notes"
	"github.com/yanizio/keepsake/internal/quiz"
	"github.com/yanizio/keepsake/internal/requestinfo"
	"github.com/yanizio/keepsake/internal/server"
	"github.com/yanizio/keepsake/internal/songs"
	"github.com/yanizio/keepsake/internal/spotify"
	"github.com/yanizio/keepsake/internal/web"
)

const serverEnvPath = "/usr/local/etc/keepsake/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// buildDSN slots the password into the DSN template's %s verb.  A
// template without the verb is used verbatim, which keeps local dev DSNs
// with inline credentials working.
func buildDSN(tmpl, password string) string {
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, password)
	}
	return tmpl
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Database connect + migrate ──────────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(buildDSN(cfg.Database.DSN, cfg.Database.Password))
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logOut.Fatalf("run migrations: %v", err)
	}

	// Log active-record counts as an early sanity check.
	var noteCount, songCount int
	_ = db.Get(&noteCount, `SELECT COUNT(*) FROM note`)
	_ = db.Get(&songCount, `SELECT COUNT(*) FROM song`)
	logOut.Infow("database online", "notes", noteCount, "songs", songCount)

	//
	// ── 3.  Collaborators ───────────────────────────────────────────────
	//
	requestinfo.InitGeo(cfg.Geo.DBPath)
	catalog := spotify.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	gen := genai.New(cfg.Gemini.APIKey, cfg.Gemini.Model)

	//
	// ── 4.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)

	if origin := cfg.HTTP.CORSOrigin; origin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{origin},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Mount("/daily-notes", notes.Routes(db))
	r.Mount("/our-songs", songs.Routes(db, catalog))
	r.Mount("/our-memories", memories.Routes(db))
	r.Mount("/our-gallery", gallery.Routes(db))
	r.Mount("/mood-muse", muse.Routes(db, gen))
	r.Mount("/couple-quiz", quiz.Routes(db, gen))
	r.Mount("/couple-comics", comics.Routes(db, gen))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		web.Message(w, http.StatusOK, "ok")
	})

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r)
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}
