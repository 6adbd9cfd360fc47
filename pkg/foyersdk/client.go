package foyersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is an HTTP client for the foyer invitation service. Admin endpoints
// require Token to be set to a bearer token with the appropriate scopes;
// lookup and accept are public.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is sent as a bearer token on admin endpoints. Leave empty for
	// public-only use.
	Token string
}

// NewClient creates a service client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListOptions narrows and pages the invitation listing. Zero values use the
// server defaults (page 1, limit 20, newest first).
type ListOptions struct {
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// CreateInvitation issues a new invitation. Requires admin:write.
func (c *Client) CreateInvitation(ctx context.Context, req InviteRequest) (*InviteResponse, error) {
	var out InviteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invitations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations lists pending invitations. Requires admin:read.
func (c *Client) ListInvitations(ctx context.Context, opts ListOptions) (*ListInvitationsResponse, error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.SortBy != "" {
		q.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		q.Set("sort_order", opts.SortOrder)
	}

	path := "/v1/invitations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListInvitationsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvitation fetches the pending invitation for an email. Requires
// admin:read.
func (c *Client) GetInvitation(ctx context.Context, email string) (*Invitation, error) {
	var out Invitation
	path := "/v1/invitations/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendInvitation revokes any outstanding tokens for the email and sends a
// fresh one. Requires admin:write.
func (c *Client) ResendInvitation(ctx context.Context, email string) (*InviteResponse, error) {
	var out InviteResponse
	path := "/v1/invitations/" + url.PathEscape(email) + "/resend"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvitation revokes every invitation for the email. Deleting an email
// with no invitations is not an error. Requires admin:write.
func (c *Client) DeleteInvitation(ctx context.Context, email string) error {
	path := "/v1/invitations/" + url.PathEscape(email)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

// LookupInvitation checks whether a token is redeemable. Public endpoint.
func (c *Client) LookupInvitation(ctx context.Context, req LookupRequest) (*LookupResponse, error) {
	var out LookupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/lookup", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation redeems an invitation and creates the account. Public
// endpoint.
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptRequest) (*AcceptResponse, error) {
	var out AcceptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/accept", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez reports basic service health.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs one request/response cycle: marshals body (if any), sets
// the bearer token when configured, and decodes either the expected success
// payload or the error envelope.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body any,
	target any,
	expectedStatus int,
) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
