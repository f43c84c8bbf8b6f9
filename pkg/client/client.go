package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// Observer receives per-attempt telemetry. Status is 0 for transport errors.
type Observer interface {
	ObserveAttempt(method, route string, status int, elapsed time.Duration)
	ObserveRetry(method, route string)
}

// Client is the leave desk API client. One instance is shared by every
// caller; it holds no credentials, tokens are passed in per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
	logger     *zap.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver sets the attempt observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a new API client. baseURL includes the /api prefix.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry:  DefaultRetryConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Auth ---

// Login exchanges credentials for an auth token. The token is returned,
// not stored; persisting it is up to the caller.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/auth/",
		body:   domain.Credentials{Username: email, Password: password},
	}, &out)
	if err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("client.Login: response carried no token")
	}
	return out.Token, nil
}

// Profile returns the authenticated user's profile.
func (c *Client) Profile(ctx context.Context, token string) (domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, route: "/profile/", token: token, auth: true}, &raw); err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	u, err := domain.DecodeUser(raw)
	if err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	return u, nil
}

// --- Employees ---

// ListEmployees returns the employees visible to the calling supervisor.
func (c *Client) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := c.do(ctx, call{method: http.MethodGet, route: "/employees/", token: token, auth: true}, &employees); err != nil {
		return nil, fmt.Errorf("client.ListEmployees: %w", err)
	}
	return employees, nil
}

// SignupEmployee registers a new employee under the calling supervisor.
func (c *Client) SignupEmployee(ctx context.Context, token string, req domain.EmployeeSignup) (*domain.Employee, error) {
	var created domain.Employee
	err := c.do(ctx, call{method: http.MethodPost, route: "/employees/signup/", token: token, auth: true, body: req}, &created)
	if err != nil {
		return nil, fmt.Errorf("client.SignupEmployee: %w", err)
	}
	return &created, nil
}

// --- Supervisors ---

// SignupSupervisor registers a supervisor. No token is required.
func (c *Client) SignupSupervisor(ctx context.Context, req domain.SupervisorSignup) (*domain.Supervisor, error) {
	var created domain.Supervisor
	if err := c.do(ctx, call{method: http.MethodPost, route: "/supervisors/signup/", body: req}, &created); err != nil {
		return nil, fmt.Errorf("client.SignupSupervisor: %w", err)
	}
	return &created, nil
}

// --- Leave requests ---

// ListLeaveRequests returns the caller's leave requests (own requests for an
// employee, their employees' requests for a supervisor).
func (c *Client) ListLeaveRequests(ctx context.Context, token string) ([]domain.LeaveRequest, error) {
	var requests []domain.LeaveRequest
	if err := c.do(ctx, call{method: http.MethodGet, route: "/leave-requests/", token: token, auth: true}, &requests); err != nil {
		return nil, fmt.Errorf("client.ListLeaveRequests: %w", err)
	}
	return requests, nil
}

// CreateLeaveRequest submits a new pending leave request.
func (c *Client) CreateLeaveRequest(ctx context.Context, token string, req domain.NewLeaveRequest) (*domain.LeaveRequest, error) {
	var created domain.LeaveRequest
	err := c.do(ctx, call{method: http.MethodPost, route: "/leave-requests/create/", token: token, auth: true, body: req}, &created)
	if err != nil {
		return nil, fmt.Errorf("client.CreateLeaveRequest: %w", err)
	}
	return &created, nil
}

// UpdateLeaveRequestStatus approves or rejects a leave request.
func (c *Client) UpdateLeaveRequestStatus(ctx context.Context, token string, id int64, status domain.LeaveStatus) (*domain.StatusUpdate, error) {
	var updated domain.StatusUpdate
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/leave-requests/{id}/status/",
		path:   "/leave-requests/" + strconv.FormatInt(id, 10) + "/status/",
		token:  token,
		auth:   true,
		body:   domain.StatusUpdate{Status: status},
	}, &updated)
	if err != nil {
		return nil, fmt.Errorf("client.UpdateLeaveRequestStatus: %w", err)
	}
	return &updated, nil
}

// DeleteLeaveRequest withdraws a leave request. The backend decides whether
// the request is still deletable.
func (c *Client) DeleteLeaveRequest(ctx context.Context, token string, id int64) error {
	err := c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/leave-requests/{id}/delete/",
		path:   "/leave-requests/" + strconv.FormatInt(id, 10) + "/delete/",
		token:  token,
		auth:   true,
	}, nil)
	if err != nil {
		return fmt.Errorf("client.DeleteLeaveRequest: %w", err)
	}
	return nil
}

// call describes one logical API call. route is the path template used for
// logs and metrics; path defaults to route.
type call struct {
	method string
	route  string
	path   string
	token  string
	auth   bool
	body   any
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	if cl.auth && cl.token == "" {
		return ErrMissingToken
	}
	if cl.path == "" {
		cl.path = cl.route
	}

	var payload []byte
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	// One id per logical call so the backend can correlate retries.
	requestID := uuid.NewString()
	attempt := 0

	operation := func() error {
		attempt++
		return c.attempt(ctx, cl, payload, requestID, out)
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("request failed, retrying",
			zap.String("method", cl.method),
			zap.String("route", cl.route),
			zap.String("request_id", requestID),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.retry.MaxRetries),
			zap.Duration("backoff", wait),
			zap.Error(err))
		if c.observer != nil {
			c.observer.ObserveRetry(cl.method, cl.route)
		}
	}

	if err := backoff.RetryNotify(operation, c.retry.backOff(ctx), notify); err != nil {
		if IsTransient(err) {
			c.logger.Warn("request failed after retries",
				zap.String("method", cl.method),
				zap.String("route", cl.route),
				zap.String("request_id", requestID),
				zap.Int("attempts", attempt),
				zap.Error(err))
		}
		return err
	}
	return nil
}

// attempt performs a single HTTP round trip. Failures that should not be
// retried are wrapped with backoff.Permanent.
func (c *Client) attempt(ctx context.Context, cl call, payload []byte, requestID string, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reqBody)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Token "+cl.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl, 0, start)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return &TransientError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	c.observe(cl, resp.StatusCode, start)

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			respBody = []byte(fmt.Sprintf("failed to read body: %v", readErr))
		}
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
		if retryableStatus(resp.StatusCode) {
			return &TransientError{Err: httpErr}
		}
		return backoff.Permanent(httpErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) observe(cl call, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveAttempt(cl.method, cl.route, status, time.Since(start))
	}
}
