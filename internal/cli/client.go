package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"klicks/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StartSessionResponse is the payload of POST /v1/session.
type StartSessionResponse struct {
	Token   string       `json:"token"`
	Profile game.Profile `json:"profile"`
}

func (c *Client) StartSession(ctx context.Context) (StartSessionResponse, error) {
	var out StartSessionResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/session", "", nil, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context, token string) (game.Profile, error) {
	var out game.Profile
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/profile", token, nil, &out)
	return out, err
}

func (c *Client) Click(ctx context.Context, token string) (game.ClickResult, error) {
	var out game.ClickResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/click", token, nil, &out)
	return out, err
}

func (c *Client) Businesses(ctx context.Context, token string) ([]game.BusinessListing, error) {
	var out struct {
		Businesses []game.BusinessListing `json:"businesses"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/businesses", token, nil, &out)
	return out.Businesses, err
}

func (c *Client) BuyBusiness(ctx context.Context, token string, id int64) (game.PurchaseResult, error) {
	var out game.PurchaseResult
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/businesses/%d/buy", id), token, nil, &out)
	return out, err
}

func (c *Client) CollectIncome(ctx context.Context, token string) (game.CollectResult, error) {
	var out game.CollectResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/income/collect", token, nil, &out)
	return out, err
}

func (c *Client) Vehicles(ctx context.Context, token string) ([]game.VehicleListing, error) {
	var out struct {
		Vehicles []game.VehicleListing `json:"vehicles"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/vehicles", token, nil, &out)
	return out.Vehicles, err
}

func (c *Client) BuyVehicle(ctx context.Context, token string, id int64) (game.PurchaseResult, error) {
	var out game.PurchaseResult
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/vehicles/%d/buy", id), token, nil, &out)
	return out, err
}

func (c *Client) Wager(ctx context.Context, token string, amount int64) (game.WagerResult, error) {
	var out game.WagerResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/wager", token, map[string]any{
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) Grant(ctx context.Context, adminToken, sessionToken, kind string, amount int64, tier string) (game.GrantResult, error) {
	var out game.GrantResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/grant", adminToken, map[string]any{
		"session_token": sessionToken,
		"kind":          kind,
		"amount":        amount,
		"tier":          tier,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
