// Package dairy is a Go client for the dairy records REST API.
package dairy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dairy api error: status=%d, message=%s", e.Status, e.Message)
}

// apiError mirrors the error body written by the server.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ToggleBlockResult is returned by ToggleBlock.
type ToggleBlockResult struct {
	Message string         `json:"message"`
	Farmer  models.Account `json:"farmer"`
}

// Client is a resty-backed API client. Login and Register store the session
// token for later calls.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) *Client {
	c.httpClient.SetAuthToken(token)
	return c
}

// Register creates a farmer account.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (models.Session, error) {
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &session); err != nil {
		return models.Session{}, err
	}
	c.SetToken(session.Token)
	return session, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session
	in := models.LoginInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &session); err != nil {
		return models.Session{}, err
	}
	c.SetToken(session.Token)
	return session, nil
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (models.Account, error) {
	var account models.Account
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &account)
	return account, err
}

// CreateMilk records a milk production entry.
func (c *Client) CreateMilk(ctx context.Context, in models.MilkInput) (models.MilkRecord, error) {
	var record models.MilkRecord
	err := c.do(ctx, http.MethodPost, "/api/milk", in, &record)
	return record, err
}

// ListMilk lists the milk records visible to the caller.
func (c *Client) ListMilk(ctx context.Context) ([]models.MilkRecord, error) {
	var out []models.MilkRecord
	err := c.do(ctx, http.MethodGet, "/api/milk", nil, &out)
	return out, err
}

// Dashboard returns platform totals. Admin only.
func (c *Client) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var dash models.Dashboard
	err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, &dash)
	return dash, err
}

// ListFarmers lists farmer accounts. Admin only.
func (c *Client) ListFarmers(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := c.do(ctx, http.MethodGet, "/api/admin/farmers", nil, &out)
	return out, err
}

// ToggleBlock blocks or unblocks a farmer. Admin only.
func (c *Client) ToggleBlock(ctx context.Context, id string) (ToggleBlockResult, error) {
	var result ToggleBlockResult
	err := c.do(ctx, http.MethodPatch, "/api/admin/farmers/"+id+"/block", nil, &result)
	return result, err
}

// DeleteFarmer deletes a farmer and their records. Admin only.
func (c *Client) DeleteFarmer(ctx context.Context, id string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodDelete, "/api/admin/farmers/"+id, nil, &resp)
	return resp.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		message := apiErr.Message
		if message == "" {
			message = strings.TrimSpace(resp.String())
		}
		return &APIError{Status: resp.StatusCode(), Message: message}
	}

	return nil
}
