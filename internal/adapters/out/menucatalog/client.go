// Package menucatalog is the HTTP client for the external menu service.
// The service wraps every payload in a {success, data, message} envelope.
package menucatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// Client implements ports.MenuCatalog against the menu service REST API.
// Unlike the user directory, transport failures stay distinguishable from a
// genuinely missing menu item: only a 404 or an explicit rejection maps to a
// not-found error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a menu catalog client for the given base URL,
// e.g. "http://menu:8082".
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type menuItemPayload struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

// GetMenuItem resolves a menu item by id and returns its base price.
func (c *Client) GetMenuItem(ctx context.Context, id int64) (*ports.MenuItem, error) {
	url := fmt.Sprintf("%s/api/menu/items/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.NewObjectNotFoundError("menuItemId", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu service returned status %d", resp.StatusCode)
	}

	var env envelope
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("malformed menu service response: %w", err)
	}
	if !env.Success {
		return nil, errs.NewObjectNotFoundErrorWithCause(
			"menuItemId", id,
			fmt.Errorf("menu service rejected lookup: %s", env.Message),
		)
	}

	var payload menuItemPayload
	if err = json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("malformed menu item payload: %w", err)
	}

	basePrice, err := kernel.NewMoneyFromFloat(payload.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("menu item %d has invalid base price %v: %w", id, payload.BasePrice, err)
	}

	return &ports.MenuItem{
		ID:        payload.ID,
		Name:      payload.Name,
		BasePrice: basePrice,
	}, nil
}
