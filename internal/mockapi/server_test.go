package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/leavedesk/pkg/client"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newBackend(t *testing.T) (*Server, *client.Client) {
	t.Helper()
	s := New(WithClock(func() time.Time { return fixedNow }))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+"/api", client.WithRetryConfig(client.RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		Multiplier:      2,
		MaxInterval:     time.Millisecond,
	}))
	return s, c
}

func login(t *testing.T, c *client.Client, email string) string {
	t.Helper()
	tok, err := c.Login(context.Background(), email, DemoPassword)
	require.NoError(t, err)
	return tok
}

func TestLoginAndProfile(t *testing.T) {
	s, c := newBackend(t)
	s.Seed()
	ctx := context.Background()

	_, err := c.Login(ctx, DemoEmployeeEmail, "wrong")
	assert.Equal(t, `{"non_field_errors":["Unable to log in with provided credentials."]}`, client.Normalize(err))

	tok := login(t, c, DemoEmployeeEmail)
	assert.Equal(t, tok, login(t, c, DemoEmployeeEmail), "one token per user")

	u, err := c.Profile(ctx, tok)
	require.NoError(t, err)
	emp, ok := u.(*domain.Employee)
	require.True(t, ok)
	assert.Equal(t, "Nima Karimi", emp.FullName())
	require.NotNil(t, emp.AssignedSupervisor)
	assert.Equal(t, DemoSupervisorEmail, emp.AssignedSupervisor.Email)

	_, err = c.Profile(ctx, "bogus")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Invalid token.", client.Normalize(err))
}

func TestLeaveRequestLifecycle(t *testing.T) {
	s, c := newBackend(t)
	s.Seed()
	ctx := context.Background()
	empTok := login(t, c, DemoEmployeeEmail)
	supTok := login(t, c, DemoSupervisorEmail)

	created, err := c.CreateLeaveRequest(ctx, empTok, domain.NewLeaveRequest{
		StartDate: domain.NewDate(2024, 7, 1),
		EndDate:   domain.NewDate(2024, 7, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, fixedNow, created.CreatedAt)

	_, err = c.CreateLeaveRequest(ctx, empTok, domain.NewLeaveRequest{
		StartDate: domain.NewDate(2024, 7, 5),
		EndDate:   domain.NewDate(2024, 7, 8),
	})
	assert.Equal(t, `{"non_field_errors":["Leave request overlaps with an existing request."]}`, client.Normalize(err))

	_, err = c.CreateLeaveRequest(ctx, supTok, domain.NewLeaveRequest{
		StartDate: domain.NewDate(2024, 8, 1),
		EndDate:   domain.NewDate(2024, 8, 2),
	})
	assert.True(t, client.IsStatus(err, http.StatusForbidden))

	_, err = c.UpdateLeaveRequestStatus(ctx, empTok, created.ID, domain.StatusApproved)
	assert.True(t, client.IsStatus(err, http.StatusForbidden), "employees cannot decide")

	updated, err := c.UpdateLeaveRequestStatus(ctx, supTok, created.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	_, err = c.UpdateLeaveRequestStatus(ctx, supTok, created.ID, domain.StatusRejected)
	assert.Equal(t, "Leave request is not pending.", client.Normalize(err))

	err = c.DeleteLeaveRequest(ctx, empTok, created.ID)
	assert.Equal(t, "Only pending leave requests can be deleted.", client.Normalize(err))

	u, err := c.Profile(ctx, empTok)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLeaveRequestsLeft-1, u.(*domain.Employee).LeaveRequestsLeft)
}

func TestDeletePendingRequest(t *testing.T) {
	s, c := newBackend(t)
	s.Seed()
	ctx := context.Background()
	empTok := login(t, c, DemoEmployeeEmail)

	list, err := c.ListLeaveRequests(ctx, empTok)
	require.NoError(t, err)
	require.Len(t, list, 3)

	var pending int64
	for _, r := range list {
		if r.Status == domain.StatusPending {
			pending = r.ID
		}
	}
	require.NotZero(t, pending)
	require.NoError(t, c.DeleteLeaveRequest(ctx, empTok, pending))
	_, ok := s.LeaveRequest(pending)
	assert.False(t, ok)

	err = c.DeleteLeaveRequest(ctx, empTok, pending)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
}

func TestSupervisorSeesOnlyOwnEmployees(t *testing.T) {
	s, c := newBackend(t)
	s.Seed()
	other := s.AddSupervisor(domain.Identity{Email: "other@leavedesk.test", FirstName: "O", LastName: "S", NationalID: "1111111111"}, DemoPassword)
	lone := s.AddEmployee(domain.Identity{Email: "lone@leavedesk.test", FirstName: "L", LastName: "E", NationalID: "2222222222"}, DemoPassword, other.ID, 5)
	s.AddLeaveRequest(lone.ID, domain.NewDate(2024, 9, 1), domain.NewDate(2024, 9, 2), domain.StatusPending)
	ctx := context.Background()

	supTok := login(t, c, DemoSupervisorEmail)
	employees, err := c.ListEmployees(ctx, supTok)
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	requests, err := c.ListLeaveRequests(ctx, supTok)
	require.NoError(t, err)
	assert.Len(t, requests, 5)

	empTok := login(t, c, DemoEmployeeEmail)
	_, err = c.ListEmployees(ctx, empTok)
	assert.Equal(t, "You do not have permission to perform this action.", client.Normalize(err))
}

func TestSignups(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()

	sup, err := c.SignupSupervisor(ctx, domain.SupervisorSignup{
		Email: "boss@b.com", FirstName: "Sam", LastName: "Rad", NationalID: "1234567890", Password: "password1",
	})
	require.NoError(t, err)
	assert.Nil(t, sup.PhoneNumber)

	_, err = c.SignupSupervisor(ctx, domain.SupervisorSignup{
		Email: "boss@b.com", FirstName: "Sam", LastName: "Rad", NationalID: "1234567890", Password: "password1",
	})
	assert.Equal(t, `{"email":["user with this email already exists."]}`, client.Normalize(err))

	tok, err := c.Login(ctx, "boss@b.com", "password1")
	require.NoError(t, err)

	emp, err := c.SignupEmployee(ctx, tok, domain.EmployeeSignup{
		Email: "new@b.com", FirstName: "Ava", LastName: "B", NationalID: "0012345678",
		PhoneNumber: "09121111111", Password: "password1", LeaveRequestsLeft: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, emp.LeaveRequestsLeft)
	require.NotNil(t, emp.AssignedSupervisor)
	assert.Equal(t, sup.ID, emp.AssignedSupervisor.ID)

	_, err = c.SignupEmployee(ctx, tok, domain.EmployeeSignup{Email: "x@b.com"})
	require.Error(t, err)
	assert.Contains(t, client.Normalize(err), `"first_name":["First Name is required"]`)
}

func TestFailNextIsRetried(t *testing.T) {
	s, c := newBackend(t)
	s.Seed()
	tok := login(t, c, DemoEmployeeEmail)

	s.FailNext(3, http.StatusServiceUnavailable)
	list, err := c.ListLeaveRequests(context.Background(), tok)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	s.FailNext(4, http.StatusServiceUnavailable)
	_, err = c.ListLeaveRequests(context.Background(), tok)
	assert.True(t, client.IsTransient(err))
}

func TestUnknownRoute(t *testing.T) {
	s := New()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}
