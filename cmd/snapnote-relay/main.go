package main

import (
	"log"

	"snapnote/pkg/relay"
)

func main() {
	cfg := relay.LoadConfig()

	if !cfg.CredentialsConfigured() {
		log.Println("WARNING: NOTION_CLIENT_ID, NOTION_CLIENT_SECRET, and NOTION_REDIRECT_URI are not all set.")
		log.Println("Callbacks will fail with a server configuration error until they are.")
	}

	srv := relay.NewServer(cfg)

	log.Printf("Starting snapnote relay on %s", cfg.ListenAddr)
	log.Printf("Callback route: %s", relay.CallbackPath)
	log.Printf("App scheme: %s://", cfg.AppScheme)
	log.Printf("Web callback URL: %s", cfg.WebCallbackURL)
	log.Printf("Rate limit: %.1f req/s, burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		log.Printf("Starting with TLS")
		log.Fatal(srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile))
	} else {
		log.Printf("Starting without TLS (use TLS_CERT_FILE and TLS_KEY_FILE for HTTPS)")
		log.Fatal(srv.ListenAndServe())
	}
}
