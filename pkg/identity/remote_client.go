package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type remote struct {
	base       string
	anonKey    string
	serviceKey string
	httpc      *http.Client
}

// NewRemote talks to a GoTrue compatible auth API rooted at base.
func NewRemote(base, anonKey, serviceKey string) Provider {
	return &remote{
		base:       strings.TrimRight(base, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpc:      &http.Client{Timeout: 15 * time.Second},
	}
}

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *remote) Resolve(ctx context.Context, token string) (*Identity, error) {
	var out remoteUser
	status, err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, token, nil, &out)
	if err != nil {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, &APIError{Status: status, Message: err.Error(), Err: ErrInvalidToken}
		}
		return nil, err
	}
	if out.ID == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: out.ID, Email: out.Email}, nil
}

func (c *remote) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		AccessToken string     `json:"access_token"`
		ExpiresIn   int        `json:"expires_in"`
		User        remoteUser `json:"user"`
	}
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, c.anonKey, body, &out)
	if err != nil {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return nil, &APIError{Status: status, Message: err.Error(), Err: ErrInvalidCredentials}
		}
		return nil, err
	}
	return &Session{
		AccessToken: out.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
		User:        Identity{ID: out.User.ID, Email: out.User.Email},
	}, nil
}

func (c *remote) CreateUser(ctx context.Context, in NewUser) (*Identity, error) {
	body := map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": in.EmailConfirm,
	}
	var out remoteUser
	status, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.serviceKey, c.serviceKey, body, &out)
	if err != nil {
		if status == http.StatusUnprocessableEntity {
			return nil, &APIError{Status: status, Message: err.Error(), Err: ErrEmailTaken}
		}
		return nil, err
	}
	return &Identity{ID: out.ID, Email: out.Email}, nil
}

func (c *remote) DeleteUser(ctx context.Context, id string) error {
	status, err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(id), c.serviceKey, c.serviceKey, nil, nil)
	if err != nil && status == http.StatusNotFound {
		return &APIError{Status: status, Message: err.Error(), Err: ErrNotFound}
	}
	return err
}

// do sends one JSON request. The returned status is 0 on transport errors.
func (c *remote) do(ctx context.Context, method, path, apikey, bearer string, in, out any) (int, error) {
	var rd io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return 0, err
	}
	req.Header.Set("apikey", apikey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("auth %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode, remoteError(resp)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("auth decode: %w", err)
	}
	return resp.StatusCode, nil
}

// remoteError extracts whichever message field the auth API filled in.
func remoteError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(b, &e)
	for _, m := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if m != "" {
			return &APIError{Status: resp.StatusCode, Message: m}
		}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("auth api: %s", resp.Status)}
}
