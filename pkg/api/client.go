// Package api is a thin client for the remote notes service. The service
// owns correctness and durability; this client only normalizes transport
// and envelope handling into values and errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"catatan/pkg/models"
)

// DefaultTimeout bounds every request, matching the service's own guidance.
const DefaultTimeout = 15 * time.Second

// TokenStore persists the bearer token between invocations. The storage
// package's Store satisfies it.
type TokenStore interface {
	Token() string
	SaveToken(token string) error
	ClearToken() error
}

// Client issues authenticated calls against the notes REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	log     *logrus.Logger
}

// New builds a client for the given base URL (e.g. "https://host/v2").
func New(baseURL string, tokens TokenStore, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		log:     log,
	}
}

// StatusError is a non-2xx response, carrying the server's message when the
// body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("api: status %d", e.Code)
}

// Unwrap maps well-known status codes onto the shared sentinel errors.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.ErrUnauthorized
	case http.StatusNotFound:
		return models.ErrNotFound
	}
	return nil
}

// User is the authenticated account as reported by GET /users/me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// envelope is the service's uniform response wrapper: {status, data} on
// success, {status, message} on failure.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do runs one request and decodes the data payload into out (when non-nil).
// Any non-2xx status is an error regardless of body shape.
func (c *Client) do(ctx context.Context, method, path string, payload any, auth bool, out any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token := c.tokens.Token()
		if token == "" {
			return fmt.Errorf("%w: no access token, login first", models.ErrUnauthorized)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	// A body that fails to decode is only fatal on success responses; error
	// responses fall back to the status line.
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// Register creates an account and returns the new user id.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var data struct {
		UserID string `json:"userId"`
	}
	err := c.do(ctx, http.MethodPost, "/users", map[string]string{
		"name": name, "email": email, "password": password,
	}, false, &data)
	if err != nil {
		return "", err
	}
	return data.UserID, nil
}

// Login authenticates and stores the returned bearer token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.do(ctx, http.MethodPost, "/authentications", map[string]string{
		"email": email, "password": password,
	}, false, &data)
	if err != nil {
		return err
	}
	if data.AccessToken == "" {
		return fmt.Errorf("login succeeded but no access token in response")
	}
	if err := c.tokens.SaveToken(data.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// Logout forgets the stored token. Purely local; the service has no
// token-revocation endpoint in this contract.
func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

// LoggedIn reports whether an access token is stored.
func (c *Client) LoggedIn() bool {
	return c.tokens.Token() != ""
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, true, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Notes fetches the active collection.
func (c *Client) Notes(ctx context.Context) ([]*models.Note, error) {
	return c.fetchNotes(ctx, "/notes")
}

// ArchivedNotes fetches the archived collection.
func (c *Client) ArchivedNotes(ctx context.Context) ([]*models.Note, error) {
	return c.fetchNotes(ctx, "/notes/archived")
}

func (c *Client) fetchNotes(ctx context.Context, path string) ([]*models.Note, error) {
	var data struct {
		Notes []*models.Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, true, &data); err != nil {
		return nil, err
	}
	if data.Notes == nil {
		data.Notes = []*models.Note{}
	}
	return data.Notes, nil
}

// CreateNote stores a note remotely and returns the server's copy, id and
// timestamp included.
func (c *Client) CreateNote(ctx context.Context, title, body string) (*models.Note, error) {
	var data struct {
		Note *models.Note `json:"note"`
	}
	err := c.do(ctx, http.MethodPost, "/notes", map[string]string{
		"title": title, "body": body,
	}, true, &data)
	if err != nil {
		return nil, err
	}
	if data.Note == nil {
		return nil, fmt.Errorf("create succeeded but no note in response")
	}
	return data.Note, nil
}

// DeleteNote removes a note remotely.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: note id is required", models.ErrValidation)
	}
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, true, nil)
}

// ArchiveNote moves a note into the archived collection remotely.
func (c *Client) ArchiveNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: note id is required", models.ErrValidation)
	}
	return c.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/archive", nil, true, nil)
}

// UnarchiveNote moves a note back into the active collection remotely.
func (c *Client) UnarchiveNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: note id is required", models.ErrValidation)
	}
	return c.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/unarchive", nil, true, nil)
}
