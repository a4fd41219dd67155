package client

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

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/common"
)

const defaultRequestTimeout = 12 * time.Second

// HTTPClient talks JSON over HTTP to the platform API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs an HTTPClient for the endpoint base URL
// (e.g. "http://127.0.0.1:8080"). A non-positive timeout falls back to the
// default per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
	}
}

// authResponse is the wire shape of authenticate/register exchanges.
type authResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    models.UserRecord `json:"user"`
	Error   string            `json:"error"`
}

func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authExchange(ctx, "/api/auth/login", body)
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.AuthPayload, error) {
	return c.authExchange(ctx, "/api/auth/register", reg)
}

func (c *HTTPClient) authExchange(ctx context.Context, path string, body any) (*models.AuthPayload, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	if !ar.Success {
		if ar.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, ar.Error)
		}
		return nil, ErrInvalidCredentials
	}

	// Any shape deviation counts as an unusable response.
	if ar.Token == "" || !ar.User.Valid() {
		return nil, fmt.Errorf("%w: incomplete auth payload", ErrUnavailable)
	}

	return &models.AuthPayload{Token: ar.Token, User: ar.User}, nil
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/forgot", "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/profile", token, update)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) ListDoubts(ctx context.Context, token string) ([]models.Doubt, error) {
	var out []models.Doubt
	if err := c.getJSON(ctx, "/api/doubts", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetDoubt(ctx context.Context, token, id string) (*models.DoubtDetail, error) {
	var out models.DoubtDetail
	if err := c.getJSON(ctx, "/api/doubts/"+url.PathEscape(id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateDoubt(ctx context.Context, token string, draft models.DoubtDraft) (*models.Doubt, error) {
	var out models.Doubt
	if err := c.postJSON(ctx, "/api/doubts", token, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PostAnswer(ctx context.Context, token, doubtID, text string) (*models.Answer, error) {
	path := "/api/doubts/" + url.PathEscape(doubtID) + "/answers"
	var out models.Answer
	if err := c.postJSON(ctx, path, token, map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AcceptAnswer(ctx context.Context, token, doubtID, answerID string) error {
	path := "/api/doubts/" + url.PathEscape(doubtID) + "/answers/" + url.PathEscape(answerID) + "/accept"
	return c.postNoContent(ctx, path, token)
}

func (c *HTTPClient) UpvoteAnswer(ctx context.Context, token, doubtID, answerID string) error {
	path := "/api/doubts/" + url.PathEscape(doubtID) + "/answers/" + url.PathEscape(answerID) + "/upvote"
	return c.postNoContent(ctx, path, token)
}

func (c *HTTPClient) ListTeams(ctx context.Context, token string) ([]models.Team, error) {
	var out []models.Team
	if err := c.getJSON(ctx, "/api/teams", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTeam(ctx context.Context, token string, draft models.TeamDraft) (*models.Team, error) {
	var out models.Team
	if err := c.postJSON(ctx, "/api/teams", token, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SuggestTeammates(ctx context.Context, token string, skills []string) ([]models.TeammateSuggestion, error) {
	path := "/api/teams/suggestions"
	if len(skills) > 0 {
		path += "?skills=" + url.QueryEscape(strings.Join(skills, ","))
	}
	var out []models.TeammateSuggestion
	if err := c.getJSON(ctx, path, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) StudySuggestions(ctx context.Context, token string) ([]models.StudySuggestion, error) {
	var out []models.StudySuggestion
	if err := c.getJSON(ctx, "/api/suggestions", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/ping", "", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request with the per-call timeout applied. Transport errors
// map to ErrUnavailable; HTTP error statuses are mapped by status code so
// callers can rely on sentinel errors only.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// buffer the body while the per-call timeout is still in force;
	// callers decode after do returns and cancel has already fired
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if err := mapStatus(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// mapStatus converts HTTP error statuses into the package's sentinel errors.
// Login and register additionally carry a JSON error body which authExchange
// inspects; everything else only needs the code.
func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		// login/register answer 401 with a decodable body
		if authBodyEndpoint(resp.Request.URL.Path) {
			return nil
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		if authBodyEndpoint(resp.Request.URL.Path) {
			return nil
		}
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}

func authBodyEndpoint(path string) bool {
	return path == "/api/auth/login" || path == "/api/auth/register"
}

func (c *HTTPClient) getJSON(ctx context.Context, path, token string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) postNoContent(ctx context.Context, path, token string) error {
	resp, err := c.do(ctx, http.MethodPost, path, token, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
