// gamification-system/services/twitch_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gamification-system/utils"
)

const (
	twitchOAuthURL = "https://id.twitch.tv/oauth2/token"
	twitchAPIURL   = "https://api.twitch.tv/helix"
)

// TwitchClient covers the slice of the Helix API this service consumes:
// OAuth code exchange, live status and follower counts. Live-stream XP is
// applied to the ledger by the sync worker, not here.
type TwitchClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
}

func NewTwitchClient(clientID, clientSecret, redirectURI string) *TwitchClient {
	return &TwitchClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		HTTPClient:   utils.HTTPClient,
	}
}

// TwitchTokens is the OAuth exchange result.
type TwitchTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// TwitchUser identifies the linked channel.
type TwitchUser struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

// StreamStatus reports whether a channel is currently live.
type StreamStatus struct {
	IsLive    bool
	StartedAt time.Time
	Viewers   int
}

// ExchangeCode swaps an OAuth authorization code for tokens.
func (c *TwitchClient) ExchangeCode(ctx context.Context, code string) (*TwitchTokens, error) {
	form := url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.RedirectURI},
	}
	req, err := http.NewRequestWithContext(ctx, "POST", twitchOAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitch token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("twitch token exchange returned %d: %s", resp.StatusCode, string(body))
	}

	var tokens TwitchTokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (c *TwitchClient) get(ctx context.Context, accessToken, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", twitchAPIURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Client-Id", c.ClientID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twitch api %s returned %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetAuthenticatedUser resolves the token owner's channel identity.
func (c *TwitchClient) GetAuthenticatedUser(ctx context.Context, accessToken string) (*TwitchUser, error) {
	var out struct {
		Data []TwitchUser `json:"data"`
	}
	if err := c.get(ctx, accessToken, "/users", &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("twitch returned no user for token")
	}
	return &out.Data[0], nil
}

// GetStreamStatus checks whether the channel is live right now.
func (c *TwitchClient) GetStreamStatus(ctx context.Context, accessToken, twitchUserID string) (*StreamStatus, error) {
	var out struct {
		Data []struct {
			StartedAt   time.Time `json:"started_at"`
			ViewerCount int       `json:"viewer_count"`
		} `json:"data"`
	}
	if err := c.get(ctx, accessToken, "/streams?user_id="+url.QueryEscape(twitchUserID), &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return &StreamStatus{IsLive: false}, nil
	}
	return &StreamStatus{
		IsLive:    true,
		StartedAt: out.Data[0].StartedAt,
		Viewers:   out.Data[0].ViewerCount,
	}, nil
}

// GetFollowerCount returns the channel's follower total.
func (c *TwitchClient) GetFollowerCount(ctx context.Context, accessToken, twitchUserID string) (int64, error) {
	var out struct {
		Total int64 `json:"total"`
	}
	if err := c.get(ctx, accessToken, "/channels/followers?broadcaster_id="+url.QueryEscape(twitchUserID), &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}
