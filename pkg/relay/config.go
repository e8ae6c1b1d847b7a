package relay

import (
	"log"
	"os"
	"strconv"
)

const (
	// DefaultTokenURL is Notion's token endpoint.
	DefaultTokenURL = "https://api.notion.com/v1/oauth/token"

	// CallbackPath is the route the relay serves.
	CallbackPath = "/api/notion-callback"
)

// Config holds the relay configuration. The relay is the only component
// that ever sees the client secret.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string // this endpoint's public URL, as registered with Notion
	TokenURL     string

	AppScheme      string // deep-link scheme for mobile user agents
	WebCallbackURL string // redirect target for everything else

	ListenAddr  string
	TLSCertFile string
	TLSKeyFile  string

	RateLimitRPS   float64
	RateLimitBurst int
}

// CredentialsConfigured reports whether the secret-side configuration
// needed for a token exchange is present.
func (c Config) CredentialsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURI != ""
}

// LoadConfig reads the relay configuration from the environment.
func LoadConfig() Config {
	return Config{
		ClientID:       getEnv("NOTION_CLIENT_ID", ""),
		ClientSecret:   getEnv("NOTION_CLIENT_SECRET", ""),
		RedirectURI:    getEnv("NOTION_REDIRECT_URI", ""),
		TokenURL:       getEnv("NOTION_TOKEN_URL", DefaultTokenURL),
		AppScheme:      getEnv("APP_SCHEME", "snapnote"),
		WebCallbackURL: getEnv("WEB_CALLBACK_URL", "http://127.0.0.1:8742/oauth/callback"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10.0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid int for %s: %s, using default", key, value)
		return defaultValue
	}
	return intVal
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid float for %s: %s, using default", key, value)
		return defaultValue
	}
	return floatVal
}
