// Package billedapi provides a thin client for the Billed REST API: sign-in
// and the bills collection.
package billedapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

var (
	_ store.Store         = (*Client)(nil)
	_ store.Bills         = (*billsResource)(nil)
	_ store.Authenticator = (*Client)(nil)
)

var ErrInvalidCredentials = errors.New("The provided email or password is invalid.")

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

type tokenKey struct{}

// WithToken returns a context whose requests authenticate with token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check turns a transport failure or a non-2xx response into a store.Error.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return store.NewError(http.StatusServiceUnavailable, fmt.Errorf("Billed API request failed: %w", err))
	}

	if resp.IsError() {
		cause := fmt.Errorf("Billed API request failed: %s", resp.String())
		if resp.StatusCode() == http.StatusNotFound {
			cause = fmt.Errorf("%w: %s", store.ErrNotFound, resp.String())
		}
		return store.NewError(resp.StatusCode(), cause)
	}

	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

// Calls POST {baseURL}/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	resp, err := c.request(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("auth/login")
	if err == nil && resp.StatusCode() == http.StatusUnauthorized {
		return "", store.NewError(http.StatusUnauthorized, ErrInvalidCredentials)
	}
	if err := check(resp, err); err != nil {
		return "", err
	}

	return out.JWT, nil
}

func (c *Client) Bills() store.Bills {
	return &billsResource{c: c}
}

type billsResource struct {
	c *Client
}

// Calls GET {baseURL}/bills
func (b *billsResource) List(ctx context.Context) ([]bill.Bill, error) {
	bills := []bill.Bill{}
	resp, err := b.c.request(ctx).
		SetResult(&bills).
		Get("bills")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return bills, nil
}

type createResponse struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// Calls POST {baseURL}/bills with a multipart body
func (b *billsResource) Create(ctx context.Context, req store.CreateRequest) (*store.Created, error) {
	if req.File.Content == nil {
		return nil, store.NewError(http.StatusBadRequest, store.ErrNoFile)
	}

	var out createResponse
	resp, err := b.c.request(ctx).
		SetHeaders(req.Headers).
		SetMultipartField("file", req.File.Name, req.File.ContentType, req.File.Content).
		SetFormData(map[string]string{"email": req.Email}).
		SetResult(&out).
		Post("bills")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return &store.Created{FileURL: out.FileURL, Key: out.Key}, nil
}

// Calls PATCH {baseURL}/bills/{key}, or POST {baseURL}/bills when key is empty
func (b *billsResource) Update(ctx context.Context, key string, bl bill.Bill) (*bill.Bill, error) {
	var out bill.Bill
	req := b.c.request(ctx).
		SetBody(bl).
		SetResult(&out)

	var (
		resp *resty.Response
		err  error
	)
	if key == "" {
		resp, err = req.Post("bills")
	} else {
		resp, err = req.SetPathParam("key", key).Patch("bills/{key}")
	}
	if err := check(resp, err); err != nil {
		return nil, err
	}

	return &out, nil
}
