// gamification-system/services/billing_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gamification-system/utils"
)

// BillingClient issues checkout and subscription-portal URLs. Premium
// activation itself is reflected into progress records by the premium sync
// worker, never by this client.
type BillingClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewBillingClient(baseURL, token string) *BillingClient {
	return &BillingClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: utils.HTTPClient,
	}
}

// PremiumState is one subscription row from the billing service's change feed.
type PremiumState struct {
	ExternalUserID string     `json:"external_user_id"`
	IsPremium      bool       `json:"is_premium"`
	PremiumSince   *time.Time `json:"premium_since,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *BillingClient) post(path string, body map[string]interface{}, out interface{}) error {
	jsonData, _ := json.Marshal(body)
	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("billing service returned %d: %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

// CreateCheckoutSession returns a hosted checkout URL for the user.
func (c *BillingClient) CreateCheckoutSession(userID string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.post("/api/v1/checkout/sessions", map[string]interface{}{"user_id": userID}, &out)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// CreatePortalSession returns a subscription-management portal URL.
func (c *BillingClient) CreatePortalSession(userID string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.post("/api/v1/portal/sessions", map[string]interface{}{"user_id": userID}, &out)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// GetChangedSubscriptions fetches subscription changes since the given time,
// for the premium sync worker.
func (c *BillingClient) GetChangedSubscriptions(ctx context.Context, since time.Time) ([]PremiumState, error) {
	url := fmt.Sprintf("%s/api/v1/subscriptions/changes?since=%s", c.BaseURL, since.UTC().Format(time.RFC3339))
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call billing service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("billing service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Subscriptions []PremiumState `json:"subscriptions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode billing response: %w", err)
	}
	return response.Subscriptions, nil
}
