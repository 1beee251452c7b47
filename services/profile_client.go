// gamification-system/services/profile_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"gamification-system/utils"
)

// ProfileClient talks to the identity/profile service. It yields the stable
// user id and display fields for the authenticated caller; auth itself lives
// behind the gateway.
type ProfileClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// Profile is the subset of identity fields this service consumes.
type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsPremium   bool   `json:"is_premium"`
}

// ValidateResponse mirrors the auth service's /validate payload, used by the
// SSE auth path where gateway headers are unavailable.
type ValidateResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

func NewProfileClient(baseURL, token string) *ProfileClient {
	return &ProfileClient{
		BaseURL: baseURL,
		Token:   token,
		Client:  utils.HTTPClient,
	}
}

func (c *ProfileClient) do(method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("ProfileService %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
		return fmt.Errorf("profile service returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// ValidateToken calls /auth/validate on the identity service.
func (c *ProfileClient) ValidateToken(accessToken string) (*ValidateResponse, error) {
	var out ValidateResponse
	err := c.do("POST", "/auth/validate", map[string]interface{}{"access_token": accessToken}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches display fields for a user id.
func (c *ProfileClient) GetProfile(userID string) (*Profile, error) {
	var out Profile
	if err := c.do("GET", "/api/v1/profiles/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshSession exchanges a refresh token for a fresh access token.
func (c *ProfileClient) RefreshSession(refreshToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do("POST", "/auth/refresh", map[string]interface{}{"refresh_token": refreshToken}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// SignOut revokes the caller's session on the identity service.
func (c *ProfileClient) SignOut(accessToken string) error {
	return c.do("POST", "/auth/signout", map[string]interface{}{"access_token": accessToken}, nil)
}
