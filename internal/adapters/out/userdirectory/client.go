// Package userdirectory is the HTTP client for the external user service.
// The service wraps every payload in a {success, data, message} envelope.
package userdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pizzeria/internal/core/ports"
)

// Client implements ports.UserDirectory against the user service REST API.
// Every failure mode resolves to ports.ErrUserNotFound: callers cannot place
// an order for a user the directory will not vouch for, whatever the reason.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a user directory client for the given base URL,
// e.g. "http://users:8081". Timeouts are bounded by the caller's context.
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

type userPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// GetUser resolves a user by id. Transport failures, non-2xx responses,
// malformed envelopes, and explicit rejections all wrap ports.ErrUserNotFound
// with the underlying cause retained in the message.
func (c *Client) GetUser(ctx context.Context, id int64) (*ports.User, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, notFound(id, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, notFound(id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, notFound(id, fmt.Errorf("user service returned status %d", resp.StatusCode))
	}

	var env envelope
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, notFound(id, fmt.Errorf("malformed user service response: %w", err))
	}
	if !env.Success {
		return nil, notFound(id, fmt.Errorf("user service rejected lookup: %s", env.Message))
	}

	var payload userPayload
	if err = json.Unmarshal(env.Data, &payload); err != nil {
		return nil, notFound(id, fmt.Errorf("malformed user payload: %w", err))
	}
	if payload.ID == 0 {
		return nil, notFound(id, fmt.Errorf("user payload has no id"))
	}
	if payload.ID != id {
		return nil, notFound(id, fmt.Errorf("user service answered for user %d", payload.ID))
	}

	return &ports.User{
		ID:        payload.ID,
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	}, nil
}

func notFound(id int64, cause error) error {
	return fmt.Errorf("%w: user %d: %v", ports.ErrUserNotFound, id, cause)
}
