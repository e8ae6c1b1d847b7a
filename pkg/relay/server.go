package relay

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"snapnote/pkg/middleware"
)

// NewServer wires the relay's routes and middleware into an HTTP
// server ready to listen on cfg.ListenAddr.
func NewServer(cfg Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(CallbackPath, NewHandler(cfg))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	handler = middleware.RequestLogger(handler)
	handler = middleware.SecurityHeaders(handler)
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		handler = middleware.HSTS(handler)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 5*time.Minute)
	handler = rateLimiter.Middleware(handler)

	return &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}
