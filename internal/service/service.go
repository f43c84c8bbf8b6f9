// Package service exposes one call per backend operation. Every call returns
// a Result; no error or panic crosses this boundary.
package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/internal/session"
	"github.com/naveenspark/leavedesk/internal/token"
	"github.com/naveenspark/leavedesk/pkg/client"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

// DefaultTokenLifetimeDays is how long a fresh token is kept.
const DefaultTokenLifetimeDays = 7

// Service binds the API client to the token and session stores.
type Service struct {
	client   *client.Client
	tokens   *token.Store
	session  *session.Store
	logger   *zap.Logger
	lifetime int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for failed calls.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTokenLifetime sets how many days a token from SignIn is kept.
func WithTokenLifetime(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lifetime = days
		}
	}
}

// New returns a Service.
func New(c *client.Client, tokens *token.Store, sess *session.Store, opts ...Option) *Service {
	s := &Service{
		client:   c,
		tokens:   tokens,
		session:  sess,
		logger:   zap.NewNop(),
		lifetime: DefaultTokenLifetimeDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the session store the service writes to.
func (s *Service) Session() *session.Store {
	return s.session
}

// HasToken reports whether a token is currently stored.
func (s *Service) HasToken() bool {
	_, present := s.tokens.Get()
	return present
}

// authed reads the token fresh and runs fn with it. A missing token fails
// without touching the network.
func authed[T any](ctx context.Context, s *Service, op string, fn func(ctx context.Context, tok string) (T, error)) Result[T] {
	tok, present := s.tokens.Get()
	if !present {
		return failed[T](s, op, client.ErrMissingToken)
	}
	v, err := fn(ctx, tok)
	if err != nil {
		return failed[T](s, op, err)
	}
	return ok(v)
}

func failed[T any](s *Service, op string, err error) Result[T] {
	r := fail[T](err)
	s.logger.Warn("call failed",
		zap.String("op", op),
		zap.Int("status", r.Status),
		zap.String("error", r.Error))
	return r
}

// --- Auth ---

// Login exchanges credentials for a token. The token is returned, not
// persisted.
func (s *Service) Login(ctx context.Context, email, password string) Result[string] {
	tok, err := s.client.Login(ctx, email, password)
	if err != nil {
		return failed[string](s, "login", err)
	}
	return ok(tok)
}

// Profile fetches the signed-in user's profile.
func (s *Service) Profile(ctx context.Context) Result[domain.User] {
	return authed(ctx, s, "profile", s.client.Profile)
}

// SignIn logs in, persists the token, loads the profile with the token just
// issued and makes it the current user. If the profile cannot be loaded the
// token is discarded so no half-signed-in state remains.
func (s *Service) SignIn(ctx context.Context, email, password string) Result[domain.User] {
	login := s.Login(ctx, email, password)
	if !login.OK() {
		return Result[domain.User]{Error: login.Error, Status: login.Status}
	}
	if err := s.tokens.Set(login.Data, s.lifetime); err != nil {
		return failed[domain.User](s, "sign in", err)
	}

	u, err := s.client.Profile(ctx, login.Data)
	if err != nil {
		s.tokens.Clear() //nolint:errcheck
		return failed[domain.User](s, "profile", err)
	}
	profile := ok(u)
	if err := s.session.Set(profile.Data); err != nil {
		s.logger.Warn("persist session", zap.Error(err))
	}
	s.logger.Info("signed in",
		zap.Int64("user_id", profile.Data.Profile().ID),
		zap.String("role", string(profile.Data.UserRole())))
	return profile
}

// RefreshProfile reloads the profile with the stored token and updates the
// session. A 401 clears both token and session.
func (s *Service) RefreshProfile(ctx context.Context) Result[domain.User] {
	r := s.Profile(ctx)
	if r.OK() {
		if err := s.session.Set(r.Data); err != nil {
			s.logger.Warn("persist session", zap.Error(err))
		}
		return r
	}
	if r.Status == http.StatusUnauthorized {
		s.SignOut() //nolint:errcheck
	}
	return r
}

// SignOut clears the token and the current user.
func (s *Service) SignOut() error {
	tokErr := s.tokens.Clear()
	sessErr := s.session.Set(nil)
	if tokErr != nil {
		return tokErr
	}
	return sessErr
}

// --- Employees ---

// ListEmployees lists the supervisor's employees.
func (s *Service) ListEmployees(ctx context.Context) Result[[]domain.Employee] {
	return authed(ctx, s, "list employees", s.client.ListEmployees)
}

// SignupEmployee validates and registers an employee.
func (s *Service) SignupEmployee(ctx context.Context, req domain.EmployeeSignup) Result[*domain.Employee] {
	if err := domain.Validate(req); err != nil {
		return failed[*domain.Employee](s, "signup employee", err)
	}
	return authed(ctx, s, "signup employee", func(ctx context.Context, tok string) (*domain.Employee, error) {
		return s.client.SignupEmployee(ctx, tok, req)
	})
}

// --- Supervisors ---

// SignupSupervisor validates and registers a supervisor. No token needed.
func (s *Service) SignupSupervisor(ctx context.Context, req domain.SupervisorSignup) Result[*domain.Supervisor] {
	if err := domain.Validate(req); err != nil {
		return failed[*domain.Supervisor](s, "signup supervisor", err)
	}
	sup, err := s.client.SignupSupervisor(ctx, req)
	if err != nil {
		return failed[*domain.Supervisor](s, "signup supervisor", err)
	}
	return ok(sup)
}

// --- Leave requests ---

// ListLeaveRequests lists the caller's leave requests.
func (s *Service) ListLeaveRequests(ctx context.Context) Result[[]domain.LeaveRequest] {
	return authed(ctx, s, "list leave requests", s.client.ListLeaveRequests)
}

// CreateLeaveRequest submits a leave request. The date range is checked
// locally first.
func (s *Service) CreateLeaveRequest(ctx context.Context, req domain.NewLeaveRequest) Result[*domain.LeaveRequest] {
	if err := domain.ValidateLeaveRequest(req); err != nil {
		return failed[*domain.LeaveRequest](s, "create leave request", err)
	}
	return authed(ctx, s, "create leave request", func(ctx context.Context, tok string) (*domain.LeaveRequest, error) {
		return s.client.CreateLeaveRequest(ctx, tok, req)
	})
}

// UpdateLeaveRequestStatus approves or rejects a request. Whether the
// request is still pending is left to the backend.
func (s *Service) UpdateLeaveRequestStatus(ctx context.Context, id int64, status domain.LeaveStatus) Result[*domain.StatusUpdate] {
	if !domain.CanTransition(domain.StatusPending, status) {
		return failed[*domain.StatusUpdate](s, "update leave status", domain.InvalidStatus(status))
	}
	return authed(ctx, s, "update leave status", func(ctx context.Context, tok string) (*domain.StatusUpdate, error) {
		return s.client.UpdateLeaveRequestStatus(ctx, tok, id, status)
	})
}

// DeleteLeaveRequest withdraws a request. Whether it is still pending is
// left to the backend.
func (s *Service) DeleteLeaveRequest(ctx context.Context, id int64) Result[struct{}] {
	return authed(ctx, s, "delete leave request", func(ctx context.Context, tok string) (struct{}, error) {
		return struct{}{}, s.client.DeleteLeaveRequest(ctx, tok, id)
	})
}
