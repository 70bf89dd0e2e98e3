// Package meeting creates video-meeting links for online sessions.
package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// LinkRequest carries everything the provider needs to create a meeting.
type LinkRequest struct {
	SessionID    int64
	TeacherEmail string
	LearnerEmail string
	CourseCode   string
	StartAt      *time.Time
	Minutes      int
}

// Provider creates a join link for a session. Implementations must respect
// the context deadline; callers substitute FallbackLink on any error.
type Provider interface {
	CreateLink(ctx context.Context, req LinkRequest) (string, error)
}

// FallbackLink returns a placeholder room link used whenever the provider is
// unavailable or unconfigured. Acceptance never fails on provider errors.
func FallbackLink() string {
	return "https://meet.skillswap.dev/" + uuid.NewString()
}

// Client talks to a Graph-style online-meeting API using client credentials.
type Client struct {
	tenantID     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

const (
	tokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	meetingsURL      = "https://graph.microsoft.com/v1.0/me/onlineMeetings"
)

func NewClient(tenantID, clientID, clientSecret string) *Client {
	return &Client{
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the credential set is complete.
func (c *Client) Configured() bool {
	return c.tenantID != "" && c.clientID != "" && c.clientSecret != ""
}

func (c *Client) token(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf(tokenURLTemplate, c.tenantID),
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return body.AccessToken, nil
}

// CreateLink creates an online meeting and returns its join URL.
func (c *Client) CreateLink(ctx context.Context, lr LinkRequest) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("meeting provider credentials not configured")
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"subject": fmt.Sprintf("%s session #%d (%s / %s)",
			lr.CourseCode, lr.SessionID, lr.TeacherEmail, lr.LearnerEmail),
	}
	if lr.StartAt != nil {
		payload["startDateTime"] = lr.StartAt.UTC().Format(time.RFC3339)
		payload["endDateTime"] = lr.StartAt.Add(time.Duration(lr.Minutes) * time.Minute).UTC().Format(time.RFC3339)
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal meeting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, meetingsURL, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build meeting request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create meeting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("meeting endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		JoinWebURL string `json:"joinWebUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode meeting response: %w", err)
	}
	if body.JoinWebURL == "" {
		return "", fmt.Errorf("meeting response missing join url")
	}

	return body.JoinWebURL, nil
}
