package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/leavedesk/internal/config"
	"github.com/naveenspark/leavedesk/internal/mockapi"
	"github.com/naveenspark/leavedesk/internal/token"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

// env points the CLI at a seeded in-process backend and a fresh data dir.
func env(t *testing.T) *mockapi.Server {
	t.Helper()
	srv := mockapi.New()
	srv.Seed()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	t.Setenv(config.EnvDataDir, t.TempDir())
	t.Setenv(config.EnvAPIURL, ts.URL+"/api")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(token.EnvVar, "")
	return srv
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	a.close()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	require.NoError(t, err, "leavedesk %s\n%s", strings.Join(args, " "), out)
	return out
}

func loginAs(t *testing.T, email string) {
	t.Helper()
	mustExecute(t, "login", "-e", email, "-p", mockapi.DemoPassword)
}

func futureDay(days int) string {
	return time.Now().AddDate(1, 0, days).Format(domain.DateLayout)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "leavedesk dev\n", out)
}

func TestLoginWhoamiLogout(t *testing.T) {
	env(t)

	out := mustExecute(t, "login", "--email", mockapi.DemoEmployeeEmail, "--password", mockapi.DemoPassword)
	assert.Contains(t, out, "Signed in as Nima Karimi")
	assert.Contains(t, out, "[employee]")

	out = mustExecute(t, "whoami")
	assert.Contains(t, out, mockapi.DemoEmployeeEmail)
	assert.Contains(t, out, "Sara Ahmadi")

	out = mustExecute(t, "whoami", "--json", "--refresh")
	u, err := domain.DecodeUser([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, u.UserRole())

	assert.Equal(t, "Signed out.\n", mustExecute(t, "logout"))

	out, err = execute(t, "", "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
	assert.Contains(t, out, "leavedesk login")
}

func TestLoginPrompts(t *testing.T) {
	env(t)

	out, err := execute(t, mockapi.DemoSupervisorEmail+"\n"+mockapi.DemoPassword+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Signed in as Sara Ahmadi")
}

func TestLoginBadCredentials(t *testing.T) {
	env(t)

	_, err := execute(t, "", "login", "-e", mockapi.DemoEmployeeEmail, "-p", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to log in with provided credentials.")

	_, err = execute(t, "", "requests", "list")
	require.Error(t, err)
	assert.Equal(t, "missing token: please log in", err.Error())
}

func TestEmployeeRequestFlow(t *testing.T) {
	srv := env(t)
	loginAs(t, mockapi.DemoEmployeeEmail)

	out := mustExecute(t, "requests", "create", "--start", futureDay(0), "--end", futureDay(2), "--reason", "wedding")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "Pending")

	_, err := execute(t, "", "requests", "create", "--start", futureDay(5), "--end", futureDay(4))
	require.Error(t, err)
	assert.Equal(t, domain.MsgInvalidDateRange, err.Error())

	_, err = execute(t, "", "requests", "create", "--start", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start: invalid date")

	var items []domain.LeaveRequest
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "requests", "list", "--json")), &items))
	require.Len(t, items, 4)
	newest := items[0]
	assert.Equal(t, "wedding", newest.ReasonText())

	out = mustExecute(t, "requests", "list", "--status", "pending")
	assert.Contains(t, out, "wedding")
	assert.NotContains(t, out, "Approved")

	_, err = execute(t, "", "requests", "list", "--status", "archived")
	assert.ErrorContains(t, err, "unknown status")

	mustExecute(t, "requests", "delete", "#"+jsonID(newest.ID))
	_, ok := srv.LeaveRequest(newest.ID)
	assert.False(t, ok)

	var approved domain.LeaveRequest
	for _, r := range items {
		if r.Status == domain.StatusApproved {
			approved = r
		}
	}
	_, err = execute(t, "", "requests", "delete", jsonID(approved.ID))
	require.Error(t, err)
	assert.Equal(t, "Only pending leave requests can be deleted.", err.Error())

	_, err = execute(t, "", "requests", "approve", jsonID(approved.ID))
	require.Error(t, err)
	assert.Equal(t, "You do not have permission to perform this action.", err.Error())
}

func TestSupervisorDecides(t *testing.T) {
	env(t)
	loginAs(t, mockapi.DemoSupervisorEmail)

	out := mustExecute(t, "requests", "list")
	assert.Contains(t, out, "EMPLOYEE")

	var items []domain.LeaveRequest
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "requests", "list", "--json", "--status", "pending")), &items))
	require.Len(t, items, 3)

	out = mustExecute(t, "requests", "approve", jsonID(items[0].ID))
	assert.Equal(t, "Request #"+jsonID(items[0].ID)+" is now approved.\n", out)

	_, err := execute(t, "", "requests", "reject", jsonID(items[0].ID))
	require.Error(t, err)
	assert.Equal(t, "Leave request is not pending.", err.Error())

	out = mustExecute(t, "requests", "reject", jsonID(items[1].ID))
	assert.Contains(t, out, "rejected")

	_, err = execute(t, "", "requests", "approve", "abc")
	assert.EqualError(t, err, "ID must be a positive number")
}

func TestSignups(t *testing.T) {
	env(t)

	out := mustExecute(t, "supervisors", "signup",
		"--email", "boss@leavedesk.test", "--first-name", "Mina", "--last-name", "Rahimi",
		"--national-id", "1112223334", "--password", "password123")
	assert.Contains(t, out, "Created supervisor Mina Rahimi")

	_, err := execute(t, "", "supervisors", "signup", "--email", "bad", "--password", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email address")

	_, err = execute(t, "", "employees", "list")
	assert.EqualError(t, err, "missing token: please log in")

	mustExecute(t, "login", "-e", "boss@leavedesk.test", "-p", "password123")
	assert.Contains(t, mustExecute(t, "employees", "list"), "No employees.")

	out, err = execute(t, "password123\n", "employees", "signup",
		"--email", "new@leavedesk.test", "--first-name", "Ali", "--last-name", "Moradi",
		"--national-id", "5556667778", "--phone", "09125556677", "--leave", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ali Moradi <new@leavedesk.test> with 12 days")

	var employees []domain.Employee
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "employees", "list", "--json")), &employees))
	require.Len(t, employees, 1)
	assert.Equal(t, 12, employees[0].LeaveRequestsLeft)
	assert.Contains(t, mustExecute(t, "employees", "list"), "Ali Moradi")
}

func TestTokenEnvOverride(t *testing.T) {
	env(t)
	loginAs(t, mockapi.DemoEmployeeEmail)

	t.Setenv(token.EnvVar, "not-a-real-token")
	_, err := execute(t, "", "requests", "list")
	assert.EqualError(t, err, "Invalid token.")
}

func TestLoginWithStaleTokenEnv(t *testing.T) {
	env(t)
	t.Setenv(token.EnvVar, "not-a-real-token")

	out := mustExecute(t, "login", "-e", mockapi.DemoEmployeeEmail, "-p", mockapi.DemoPassword)
	assert.Contains(t, out, "Signed in as Nima Karimi")

	t.Setenv(token.EnvVar, "")
	var items []domain.LeaveRequest
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "requests", "list", "--json")), &items))
	assert.Len(t, items, 3)
}

func TestMetricsFile(t *testing.T) {
	env(t)
	path := filepath.Join(t.TempDir(), "leavedesk.prom")

	mustExecute(t, "login", "-e", mockapi.DemoEmployeeEmail, "-p", mockapi.DemoPassword, "--metrics-file", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `leavedesk_api_attempts_total{code="200",method="POST",route="/auth/"} 1`)
	assert.Contains(t, string(data), `route="/profile/"`)
}

func TestConfigInitAndShow(t *testing.T) {
	env(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	out := mustExecute(t, "config", "init", "--config", path)
	assert.Contains(t, out, path)

	_, err := execute(t, "", "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")
	mustExecute(t, "config", "init", "--config", path, "--force")

	out = mustExecute(t, "config", "show", "--config", path, "--log-level", "debug")
	assert.Contains(t, out, "base_url:")
	assert.Contains(t, out, "level: debug")
	assert.Contains(t, out, "lifetime_days: 7")
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"7", 7, true},
		{"#12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"x", 0, false},
	}
	for _, tc := range tests {
		got, err := parseID(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}
