package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/netx"
)

// apiResponse is the union of the JSON bodies the HTTP API answers with.
type apiResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Status  string       `json:"status"`
}

// HTTPClient talks to the JSON API under baseURL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL (e.g. "http://127.0.0.1:3000").
// timeout bounds each request; zero disables the bound.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	return c.auth(ctx, "/auth/register", in, http.StatusCreated)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	return c.auth(ctx, "/auth/login", in, http.StatusOK)
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	headers := map[string]string{"Authorization": common.BearerScheme + " " + token}

	var out apiResponse
	status, err := c.do(ctx, http.MethodGet, "/auth/me", headers, nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !out.Success || out.User == nil {
		return nil, &APIError{Status: status, Message: out.Message, Detail: out.Error}
	}
	return out.User, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out apiResponse
	status, err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
	if err != nil {
		return err
	}
	if status != http.StatusOK || out.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) auth(ctx context.Context, path string, in any, want int) (*AuthResponse, error) {
	var out apiResponse
	status, err := c.do(ctx, http.MethodPost, path, nil, in, &out)
	if err != nil {
		return nil, err
	}
	if status != want || !out.Success {
		return nil, &APIError{Status: status, Message: out.Message, Detail: out.Error}
	}
	if out.Token == "" || out.User == nil {
		return nil, &APIError{Status: status, Message: "malformed response"}
	}
	return &AuthResponse{Message: out.Message, User: *out.User, Token: out.Token}, nil
}

// do maps transport failures to ErrUnavailable and undecodable bodies to an
// APIError carrying the status code.
func (c *HTTPClient) do(ctx context.Context, method, path string, headers map[string]string, in, out any) (int, error) {
	status, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, headers, in, out)
	if err != nil {
		if status == 0 {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return status, &APIError{Status: status, Detail: err.Error()}
	}
	return status, nil
}

var _ Client = (*HTTPClient)(nil)
