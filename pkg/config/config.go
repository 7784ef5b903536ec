package config

import (
	"os"

	"sudoku-state/pkg/constants"
)

// Config holds the process-wide settings for the HTTP server and CLI tools.
type Config struct {
	Port          string
	SnapshotsFile string
	// UseDefaultGrconfig is read from DEFAULT_GRCONFIG (true unless set to
	// "false"). Nothing in this module reads the field: the server always
	// builds states on the shared default 9x9 box layout.
	UseDefaultGrconfig bool
}

// Load reads configuration from environment variables. There is no secret to
// validate here: the engine has no auth surface, so nothing is
// security-sensitive.
func Load() (*Config, error) {
	return &Config{
		Port:               getEnv("PORT", constants.DefaultPort),
		SnapshotsFile:      getEnv("SNAPSHOTS_FILE", constants.DefaultSnapshotsFile),
		UseDefaultGrconfig: getEnv("DEFAULT_GRCONFIG", "true") != "false",
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
