package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"
	defaultScope    = "https://graph.microsoft.com/.default"
	tokenURLPattern = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// Config controls how the Graph calendar/mail client behaves.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// Mailbox is the fixed mailbox identity every calendar and mail
	// operation is scoped to.
	Mailbox string

	// BaseURL and TokenURL override the remote endpoints, used by tests.
	BaseURL  string
	TokenURL string

	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// GraphService is the production Service implementation. It talks to the
// Graph REST API and authenticates with a client-credentials grant on every
// outbound call; tokens are deliberately not cached.
type GraphService struct {
	mailbox    string
	baseURL    string
	creds      *clientcredentials.Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGraphService creates a Graph client from the given config. Missing
// credentials do not fail construction; the returned service reports
// ErrNotConfigured from every operation instead, so the process can still
// serve the endpoints that do not depend on the calendar.
func NewGraphService(cfg Config) *GraphService {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(tokenURLPattern, cfg.TenantID)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	var creds *clientcredentials.Config
	if cfg.TenantID != "" && cfg.ClientID != "" && cfg.ClientSecret != "" {
		creds = &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{defaultScope},
		}
	}

	return &GraphService{
		mailbox:    cfg.Mailbox,
		baseURL:    baseURL,
		creds:      creds,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether credentials and a mailbox are present.
func (s *GraphService) Configured() bool {
	return s.creds != nil && s.mailbox != ""
}

// bearer runs the client-credentials exchange and returns a fresh access
// token. Called once per outbound operation.
func (s *GraphService) bearer(ctx context.Context) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	tok, err := s.creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("calendar: token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}

// doJSON issues one authenticated request against the Graph API. A nil out
// skips response decoding.
func (s *GraphService) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	token, err := s.bearer(ctx)
	if err != nil {
		return err
	}

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("calendar: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("calendar: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		s.logger.Warn("calendar API call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("calendar: %s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("calendar: failed to decode response from %s: %w", path, err)
	}
	return nil
}

// ListEvents returns every event on the mailbox calendar.
func (s *GraphService) ListEvents(ctx context.Context) ([]Event, error) {
	var result collection[Event]
	path := fmt.Sprintf("/users/%s/calendar/events", s.mailbox)
	if err := s.doJSON(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// EventsBetween returns events whose start falls in [start, end). The filter
// operators (ge on the lower bound, lt on the upper) are load-bearing: the
// availability check treats any hit as a booked slot.
func (s *GraphService) EventsBetween(ctx context.Context, start, end string) ([]Event, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("start/dateTime ge '%s' and start/dateTime lt '%s'", start, end))

	var result collection[Event]
	path := fmt.Sprintf("/users/%s/calendar/events", s.mailbox)
	if err := s.doJSON(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// CreateEvent books a consultation on the mailbox calendar.
func (s *GraphService) CreateEvent(ctx context.Context, ev Event) (*Event, error) {
	var created Event
	path := fmt.Sprintf("/users/%s/calendar/events", s.mailbox)
	if err := s.doJSON(ctx, http.MethodPost, path, nil, ev, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateDraft creates a draft message in the mailbox and returns its id.
// Sending is a separate call; the two-step create-then-send sequence is the
// remote API's contract for mailbox-scoped mail.
func (s *GraphService) CreateDraft(ctx context.Context, msg Message) (string, error) {
	var created Message
	path := fmt.Sprintf("/users/%s/messages", s.mailbox)
	if err := s.doJSON(ctx, http.MethodPost, path, nil, msg, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("calendar: draft creation returned no id")
	}
	return created.ID, nil
}

// SendDraft dispatches a previously created draft.
func (s *GraphService) SendDraft(ctx context.Context, draftID string) error {
	path := fmt.Sprintf("/users/%s/messages/%s/send", s.mailbox, url.PathEscape(draftID))
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
}
