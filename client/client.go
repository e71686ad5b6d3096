package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin HTTP wrapper over the portal REST API. The session cookie
// issued by Login lives in the jar; all other calls ride on it.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The cookie jar is
// preserved if the replacement has none.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar = c.http.Jar
		}
		c.http = hc
	}
}

// NewClient creates a client for the API at baseURL, e.g.
// "https://portal.example.com".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the server's uniform success wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errEnvelope is the server's uniform error wrapper.
type errEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do issues a request and decodes the success envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransientFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var ee errEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&ee); decodeErr == nil {
			apiErr.Code = ee.Code
			apiErr.Message = ee.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &TransientFetchError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransientFetchError{Err: fmt.Errorf("decode response data: %w", err)}
	}
	return nil
}

// Login opens a session. The session cookie is stored in the jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, nil)
}

// Logout closes the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// ListEvents fetches events matching the filter, unconditionally hitting the
// network. Composer.FetchEvents adds the TTL cache on top.
func (c *Client) ListEvents(ctx context.Context, filter Filter) ([]Event, error) {
	query := url.Values{}
	if filter.EventType != "" {
		query.Set("eventType", filter.EventType)
	}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}
	if filter.UserID != "" {
		query.Set("userId", filter.UserID)
	}

	var events []Event
	if err := c.do(ctx, http.MethodGet, "/api/events", query, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches one event with its full participant roster.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodGet, "/api/events/"+eventID, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates an event; the caller becomes its organizer.
func (c *Client) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodPost, "/api/events", nil, input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent applies a partial update. Organizer only.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, input UpdateEventInput) (*Event, error) {
	var event Event
	if err := c.do(ctx, http.MethodPut, "/api/events/"+eventID, nil, input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event. Organizer only.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+eventID, nil, nil, nil)
}

// AddParticipants bulk-invites users to an event.
func (c *Client) AddParticipants(ctx context.Context, eventID string, userIDs []string) (*Event, error) {
	body := map[string][]string{"user_ids": userIDs}
	var event Event
	if err := c.do(ctx, http.MethodPost, "/api/events/"+eventID+"/participants", nil, body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// SetRSVP records the caller's own response to an invitation.
func (c *Client) SetRSVP(ctx context.Context, eventID, userID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/api/events/"+eventID+"/participants/"+userID, nil, body, nil)
}

// UpcomingSidebar fetches the caller's next events. limit <= 0 uses the
// server default.
func (c *Client) UpcomingSidebar(ctx context.Context, limit int) ([]Event, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var events []Event
	if err := c.do(ctx, http.MethodGet, "/api/events/upcoming/sidebar", query, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
