package directory

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

	"github.com/google/uuid"

	"tamirciBul/internal/models"
)

// Logger is a minimal logger interface required by the client.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// TokenSource supplies the current bearer token, empty for anonymous calls.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client talks to the remote Service Directory API. All durable state lives
// behind that API; the client only shapes requests and normalizes responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     Logger
}

// NewClient constructs a directory client.
func NewClient(httpClient *http.Client, baseURL string, tokens TokenSource, logger Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// Search fetches one page of services. Any zero-valued query field is left
// out of the request, which the directory reads as "no filter".
func (c *Client) Search(ctx context.Context, q models.SearchQuery) (models.ResultPage, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Center != nil {
		params.Set("lat", strconv.FormatFloat(q.Center.Latitude, 'f', -1, 64))
		params.Set("lng", strconv.FormatFloat(q.Center.Longitude, 'f', -1, 64))
	}
	if q.RadiusKm > 0 {
		params.Set("radius", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var payload struct {
		Data       []rawService  `json:"data"`
		Pagination rawPagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/services", params, nil, &payload); err != nil {
		return models.ResultPage{}, err
	}

	page := models.ResultPage{
		Items:       make([]models.ServiceRecord, 0, len(payload.Data)),
		CurrentPage: payload.Pagination.CurrentPage,
		LastPage:    payload.Pagination.LastPage,
		PerPage:     payload.Pagination.PerPage,
		Total:       payload.Pagination.Total,
	}
	for _, raw := range payload.Data {
		rec, err := raw.normalize()
		if err != nil {
			c.logger.Errorf("directory: dropping malformed record: %v", err)
			continue
		}
		page.Items = append(page.Items, rec)
	}
	normalizePagination(&page, q)
	return page, nil
}

// GetService fetches the full detail record, reviews included.
func (c *Client) GetService(ctx context.Context, id string) (models.ServiceDetail, error) {
	var raw rawServiceDetail
	err := c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(id), nil, nil, &raw)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return models.ServiceDetail{}, fmt.Errorf("%w: id %s", models.ErrServiceNotFound, id)
		}
		return models.ServiceDetail{}, err
	}
	return raw.normalize()
}

// CreateRequest submits a repair request to a provider. Requires a session.
func (c *Client) CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	if err := req.Validate(); err != nil {
		return models.ServiceRequest{}, err
	}
	var created models.ServiceRequest
	if err := c.do(ctx, http.MethodPost, "/services/request", nil, req, &created); err != nil {
		return models.ServiceRequest{}, err
	}
	return created, nil
}

// SignIn exchanges credentials for a bearer token and profile.
func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error) {
	return c.auth(ctx, "/auth/sign_in", req)
}

// SignUp registers a new account and signs it in.
func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (models.Session, error) {
	return c.auth(ctx, "/auth/sign_up", req)
}

// Refresh exchanges the current bearer token for a fresh one. The token is
// attached by do() from the token source like on any other call.
func (c *Client) Refresh(ctx context.Context) (models.Session, error) {
	return c.auth(ctx, "/auth/refresh", nil)
}

func (c *Client) auth(ctx context.Context, path string, body interface{}) (models.Session, error) {
	var payload struct {
		Token string `json:"token"`
		User  struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
			City string `json:"city"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &payload); err != nil {
		return models.Session{}, err
	}
	return models.Session{
		Token:  payload.Token,
		UserID: payload.User.ID,
		Role:   payload.User.Role,
		Name:   payload.User.Name,
		City:   payload.User.City,
	}, nil
}

// CreateReview posts a review for a service.
func (c *Client) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	var created models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, review, &created); err != nil {
		return models.Review{}, err
	}
	return created, nil
}

// CreateComplaint files a complaint about a service.
func (c *Client) CreateComplaint(ctx context.Context, complaint models.Complaint) (models.Complaint, error) {
	var created models.Complaint
	if err := c.do(ctx, http.MethodPost, "/complaints", nil, complaint, &created); err != nil {
		return models.Complaint{}, err
	}
	return created, nil
}

// ListApplications returns provider applications awaiting an admin decision.
func (c *Client) ListApplications(ctx context.Context) ([]models.ProviderApplication, error) {
	var payload struct {
		Data []models.ProviderApplication `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/applications", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// ResolveApplication approves or rejects one provider application.
func (c *Client) ResolveApplication(ctx context.Context, decision models.ApplicationDecision) error {
	path := "/admin/applications/" + url.PathEscape(decision.ApplicationID)
	return c.do(ctx, http.MethodPost, path, nil, decision, nil)
}

// Notifications returns the caller's notification feed.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var payload struct {
		Data []models.Notification `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("directory: http %d: %s", e.code, e.body)
}

func (e *statusError) Unwrap() error {
	if e.code == http.StatusUnauthorized || e.code == http.StatusForbidden {
		return models.ErrUnauthorized
	}
	return models.ErrFetchFailed
}

func isStatus(err error, code int) bool {
	se, ok := err.(*statusError)
	return ok && se.code == code
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("directory: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("directory: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", models.ErrFetchFailed, err)
	}
	return nil
}
