package config

import (
	"os"
	"strconv"
	"time"
)

// Server holds the environment-driven settings of the preview server.
type Server struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// Width and Height of issued challenge images.
	Width, Height int

	// ChallengeTTL is how long an issued challenge stays verifiable.
	ChallengeTTL time.Duration

	// FontPaths optionally points the server at font files. Empty uses
	// system discovery and the built-in fallback.
	FontPaths []string
}

// LoadServer reads the server settings from environment variables,
// falling back to sensible defaults:
//
//	CAPTCHA_ADDR   listen address        (default ":3000")
//	CAPTCHA_WIDTH  challenge width px    (default 160)
//	CAPTCHA_HEIGHT challenge height px   (default 60)
//	CAPTCHA_TTL    challenge TTL seconds (default 120)
func LoadServer() *Server {
	return &Server{
		Addr:         getEnv("CAPTCHA_ADDR", ":3000"),
		Width:        getEnvAsInt("CAPTCHA_WIDTH", DefaultWidth),
		Height:       getEnvAsInt("CAPTCHA_HEIGHT", DefaultHeight),
		ChallengeTTL: time.Duration(getEnvAsInt("CAPTCHA_TTL", 120)) * time.Second,
		FontPaths:    DiscoverFonts(),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
