// Package config assembles runtime configuration from the environment,
// optionally seeded from a .env file in the working directory.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/store"
)

// Remote holds the settings for cloud-backed auth and profile sync.
// Both features stay off unless the relevant keys are present.
type Remote struct {
	// FirebaseAPIKey authorises Identity Toolkit sign-in calls.
	FirebaseAPIKey string
	// FirestoreProject is the project hosting user profiles.
	FirestoreProject string
}

// Enabled reports whether remote auth can be used at all.
func (r Remote) Enabled() bool { return r.FirebaseAPIKey != "" }

// SyncEnabled reports whether profile sync can be used.
func (r Remote) SyncEnabled() bool { return r.Enabled() && r.FirestoreProject != "" }

// Config is the full runtime configuration.
type Config struct {
	Gateway  gateway.Config
	Remote   Remote
	DBPath   string
	Language string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first without overriding real
// environment variables.
func Load() (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	gw := gateway.ConfigFromEnv()
	if os.Getenv("COMPANION_PROVIDER") == "" && gw.Gemini.APIKey == "" {
		// Nothing set explicitly; probe the standard key variables.
		if discovered, ok := gateway.DiscoverConfig(); ok {
			gw = discovered
		}
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}

	lang := os.Getenv("COMPANION_LANGUAGE")
	if lang == "" {
		lang = learn.DefaultLanguage
	}

	return Config{
		Gateway: gw,
		Remote: Remote{
			FirebaseAPIKey:   os.Getenv("COMPANION_FIREBASE_API_KEY"),
			FirestoreProject: os.Getenv("COMPANION_FIRESTORE_PROJECT"),
		},
		DBPath:   dbPath,
		Language: lang,
	}, nil
}
