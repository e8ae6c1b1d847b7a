// Package relay implements the OAuth callback relay: the stateless,
// secret-holding endpoint that exchanges an authorization code for
// tokens and hands them back to the client via a redirect.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapnote/pkg/metrics"
)

// tokenResponse is Notion's token-exchange response. Every field here
// is intentionally forwarded to the client; nothing else from the
// exchange may reach a client-visible artifact.
type tokenResponse struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	BotID         string `json:"bot_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	WorkspaceIcon string `json:"workspace_icon"`
}

type exchangeRequest struct {
	GrantType   string `json:"grant_type"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// Handler serves the callback route.
type Handler struct {
	cfg        Config
	httpClient *http.Client
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	// Provider-reported errors (e.g. access_denied) render a page the
	// user can act on, with a path back into the app.
	if errParam := query.Get("error"); errParam != "" {
		log.Printf("OAuth error from provider: %s", errParam)
		metrics.RecordCallback("provider_error")
		h.renderFailure(w, http.StatusBadRequest, "Error: "+errParam)
		return
	}

	if code == "" {
		metrics.RecordCallback("missing_code")
		writeJSONError(w, http.StatusBadRequest, "Missing or invalid authorization code")
		return
	}

	if !h.cfg.CredentialsConfigured() {
		log.Printf("Missing required client credentials configuration")
		metrics.RecordCallback("misconfigured")
		writeJSONError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	tokens, err := h.exchangeCode(r.Context(), code)
	if err != nil {
		// Upstream detail stays in the server log only.
		log.Printf("Token exchange failed: %v", err)
		metrics.RecordCallback("exchange_failed")
		h.renderFailure(w, http.StatusInternalServerError,
			"Failed to exchange authorization code for tokens.")
		return
	}

	target := h.cfg.WebCallbackURL
	targetLabel := "web"
	if isMobile(r.UserAgent()) {
		target = h.cfg.AppScheme + "://" + "oauth/callback"
		targetLabel = "deep_link"
	}
	metrics.RedirectTargets.WithLabelValues(targetLabel).Inc()
	metrics.RecordCallback("success")

	redirectURL := buildRedirectURL(target, tokens, state)

	w.Header().Set("Content-Type", "text/html")
	if err := successPage(redirectURL).Render(w); err != nil {
		log.Printf("Failed to render success page: %v", err)
	}
}

// exchangeCode performs the server-to-server code-for-token exchange.
// Notion wants HTTP Basic client credentials and a JSON body.
func (h *Handler) exchangeCode(ctx context.Context, code string) (*tokenResponse, error) {
	payload, err := json.Marshal(exchangeRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: h.cfg.RedirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(h.cfg.ClientID, h.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	metrics.TokenExchangeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordExchange("failure")
		return nil, fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		metrics.RecordExchange("failure")
		return nil, fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, detail)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		metrics.RecordExchange("failure")
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	metrics.RecordExchange("success")
	return &tokens, nil
}

// buildRedirectURL appends the forwarded token fields and the original
// state onto the chosen target as query parameters.
func buildRedirectURL(target string, tokens *tokenResponse, state string) string {
	params := url.Values{}
	params.Set("access_token", tokens.AccessToken)

	setIfPresent := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	setIfPresent("refresh_token", tokens.RefreshToken)
	setIfPresent("bot_id", tokens.BotID)
	setIfPresent("workspace_id", tokens.WorkspaceID)
	setIfPresent("workspace_name", tokens.WorkspaceName)
	setIfPresent("workspace_icon", tokens.WorkspaceIcon)
	setIfPresent("state", state)

	separator := "?"
	if strings.Contains(target, "?") {
		separator = "&"
	}
	return target + separator + params.Encode()
}

func (h *Handler) renderFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	if err := failurePage(message, h.cfg.AppScheme).Render(w); err != nil {
		log.Printf("Failed to render failure page: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
