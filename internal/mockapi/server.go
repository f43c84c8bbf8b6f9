// Package mockapi is an in-memory leave desk backend. It serves the same
// routes and error shapes as the real REST API so the CLI and TUI can be
// exercised offline.
//
// Errors follow the REST framework conventions the client normalizes:
// {"detail": "..."} for auth, permission and state failures, and
// {"field": ["..."]} for payload validation.
package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

type account struct {
	password string
	user     domain.User
}

// Server holds all backend state behind one mutex.
type Server struct {
	mu       sync.Mutex
	router   *mux.Router
	logger   *zap.Logger
	now      func() time.Time
	accounts map[int64]*account
	byEmail  map[string]int64
	tokens   map[string]int64
	requests map[int64]*ownedRequest
	nextID   int64

	failNext   int
	failStatus int
}

type ownedRequest struct {
	domain.LeaveRequest
	owner int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock sets the time source used for created_at and date_joined.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns an empty backend.
func New(opts ...Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		logger:   zap.NewNop(),
		now:      time.Now,
		accounts: make(map[int64]*account),
		byEmail:  make(map[string]int64),
		tokens:   make(map[string]int64),
		requests: make(map[int64]*ownedRequest),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler serving /api.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Use(s.logRequests, s.injectFailures)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found.")
	})

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/", s.login).Methods(http.MethodPost)
	api.HandleFunc("/supervisors/signup/", s.signupSupervisor).Methods(http.MethodPost)
	api.HandleFunc("/profile/", s.authenticate(s.profile)).Methods(http.MethodGet)
	api.HandleFunc("/employees/", s.authenticate(s.supervisorOnly(s.listEmployees))).Methods(http.MethodGet)
	api.HandleFunc("/employees/signup/", s.authenticate(s.supervisorOnly(s.signupEmployee))).Methods(http.MethodPost)
	api.HandleFunc("/leave-requests/", s.authenticate(s.listLeaveRequests)).Methods(http.MethodGet)
	api.HandleFunc("/leave-requests/create/", s.authenticate(s.employeeOnly(s.createLeaveRequest))).Methods(http.MethodPost)
	api.HandleFunc("/leave-requests/{id:[0-9]+}/status/", s.authenticate(s.supervisorOnly(s.updateStatus))).Methods(http.MethodPut)
	api.HandleFunc("/leave-requests/{id:[0-9]+}/delete/", s.authenticate(s.employeeOnly(s.deleteLeaveRequest))).Methods(http.MethodDelete)
}

// FailNext makes the next n requests answer with status and an empty body.
// Used to exercise client retries.
func (s *Server) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
	s.failStatus = status
}

// --- Seeding ---

// AddSupervisor creates a supervisor account.
func (s *Server) AddSupervisor(id domain.Identity, password string) *domain.Supervisor {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup := &domain.Supervisor{Identity: s.newIdentity(id)}
	s.store(sup, password)
	return sup
}

// AddEmployee creates an employee assigned to supervisorID (0 for none).
func (s *Server) AddEmployee(id domain.Identity, password string, supervisorID int64, leaveLeft int) *domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp := &domain.Employee{Identity: s.newIdentity(id), LeaveRequestsLeft: leaveLeft}
	if acc, ok := s.accounts[supervisorID]; ok {
		if sup, ok := acc.user.(*domain.Supervisor); ok {
			emp.AssignedSupervisor = sup
		}
	}
	s.store(emp, password)
	return emp
}

// AddLeaveRequest stores a request for employeeID with the given status.
func (s *Server) AddLeaveRequest(employeeID int64, start, end domain.Date, status domain.LeaveStatus) domain.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRequest(employeeID, start, end, status, nil)
}

// LeaveRequest returns a stored request by id.
func (s *Server) LeaveRequest(id int64) (domain.LeaveRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return domain.LeaveRequest{}, false
	}
	return r.LeaveRequest, true
}

func (s *Server) newIdentity(id domain.Identity) domain.Identity {
	s.nextID++
	id.ID = s.nextID
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	if id.DateJoined.IsZero() {
		id.DateJoined = s.now().UTC().Truncate(time.Second)
	}
	return id
}

func (s *Server) store(u domain.User, password string) {
	p := u.Profile()
	s.accounts[p.ID] = &account{password: password, user: u}
	s.byEmail[p.Email] = p.ID
}

func (s *Server) addRequest(owner int64, start, end domain.Date, status domain.LeaveStatus, reason *string) domain.LeaveRequest {
	s.nextID++
	r := &ownedRequest{
		LeaveRequest: domain.LeaveRequest{
			ID:        s.nextID,
			Employee:  owner,
			Status:    status,
			StartDate: start,
			EndDate:   end,
			CreatedAt: s.now().UTC().Truncate(time.Second),
			Reason:    reason,
		},
		owner: owner,
	}
	s.requests[r.ID] = r
	return r.LeaveRequest
}

// --- Middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := s.failNext > 0
		status := s.failStatus
		if fail {
			s.failNext--
		}
		s.mu.Unlock()
		if fail {
			w.WriteHeader(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, caller domain.User)

func (s *Server) authenticate(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		tok, found := strings.CutPrefix(header, "Token ")
		if !found {
			writeDetail(w, http.StatusUnauthorized, "Invalid token header.")
			return
		}

		s.mu.Lock()
		id, ok := s.tokens[tok]
		var caller domain.User
		if ok {
			caller = s.accounts[id].user
		}
		s.mu.Unlock()

		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		next(w, r, caller)
	}
}

func (s *Server) supervisorOnly(next authedHandler) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, caller domain.User) {
		if caller.UserRole() != domain.RoleSupervisor {
			writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		next(w, r, caller)
	}
}

func (s *Server) employeeOnly(next authedHandler) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, caller domain.User) {
		if caller.UserRole() != domain.RoleEmployee {
			writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		next(w, r, caller)
	}
}

// --- Handlers ---

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	fields := fieldErrors{}
	fields.require("username", creds.Username)
	fields.require("password", creds.Password)
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(creds.Username))]
	if !ok || s.accounts[id].password != creds.Password {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"non_field_errors": {"Unable to log in with provided credentials."}})
		return
	}
	for tok, owner := range s.tokens {
		if owner == id {
			writeJSON(w, http.StatusOK, map[string]string{"token": tok})
			return
		}
	}
	tok := strings.ReplaceAll(uuid.NewString(), "-", "")
	s.tokens[tok] = id
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *Server) profile(w http.ResponseWriter, _ *http.Request, caller domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, caller)
}

func (s *Server) listEmployees(w http.ResponseWriter, _ *http.Request, caller domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supID := caller.Profile().ID
	employees := []*domain.Employee{}
	for _, acc := range s.accounts {
		if emp, ok := acc.user.(*domain.Employee); ok && emp.AssignedSupervisor != nil && emp.AssignedSupervisor.ID == supID {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) signupEmployee(w http.ResponseWriter, r *http.Request, caller domain.User) {
	req := domain.EmployeeSignup{LeaveRequestsLeft: domain.DefaultLeaveRequestsLeft}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	if fields := validationFields(domain.Validate(req)); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[strings.ToLower(req.Email)]; taken {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"email": {"user with this email already exists."}})
		return
	}

	phone := req.PhoneNumber
	emp := &domain.Employee{
		Identity: s.newIdentity(domain.Identity{
			Email: req.Email, FirstName: req.FirstName, LastName: req.LastName,
			NationalID: req.NationalID, PhoneNumber: &phone,
		}),
		LeaveRequestsLeft:  req.LeaveRequestsLeft,
		AssignedSupervisor: caller.(*domain.Supervisor),
	}
	s.store(emp, req.Password)
	writeJSON(w, http.StatusCreated, emp)
}

func (s *Server) signupSupervisor(w http.ResponseWriter, r *http.Request) {
	var req domain.SupervisorSignup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	if fields := validationFields(domain.Validate(req)); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[strings.ToLower(req.Email)]; taken {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"email": {"user with this email already exists."}})
		return
	}

	id := domain.Identity{
		Email: req.Email, FirstName: req.FirstName, LastName: req.LastName, NationalID: req.NationalID,
	}
	if req.PhoneNumber != "" {
		phone := req.PhoneNumber
		id.PhoneNumber = &phone
	}
	sup := &domain.Supervisor{Identity: s.newIdentity(id)}
	s.store(sup, req.Password)
	writeJSON(w, http.StatusCreated, sup)
}

func (s *Server) listLeaveRequests(w http.ResponseWriter, _ *http.Request, caller domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	callerID := caller.Profile().ID
	out := []domain.LeaveRequest{}
	for _, req := range s.requests {
		if s.visibleTo(req, caller.UserRole(), callerID) {
			out = append(out, req.LeaveRequest)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) visibleTo(req *ownedRequest, role domain.Role, callerID int64) bool {
	if role == domain.RoleEmployee {
		return req.owner == callerID
	}
	acc, ok := s.accounts[req.owner]
	if !ok {
		return false
	}
	emp, ok := acc.user.(*domain.Employee)
	return ok && emp.AssignedSupervisor != nil && emp.AssignedSupervisor.ID == callerID
}

func (s *Server) createLeaveRequest(w http.ResponseWriter, r *http.Request, caller domain.User) {
	var req domain.NewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"non_field_errors": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}})
		return
	}
	fields := fieldErrors{}
	if req.StartDate.IsZero() {
		fields["start_date"] = []string{"This field is required."}
	}
	if req.EndDate.IsZero() {
		fields["end_date"] = []string{"This field is required."}
	}
	if len(fields) == 0 && !req.EndDate.After(req.StartDate) {
		fields["non_field_errors"] = []string{domain.MsgInvalidDateRange}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner := caller.Profile().ID
	for _, existing := range s.requests {
		if existing.owner != owner {
			continue
		}
		if !existing.StartDate.After(req.EndDate) && !req.StartDate.After(existing.EndDate) {
			writeJSON(w, http.StatusBadRequest, fieldErrors{"non_field_errors": {"Leave request overlaps with an existing request."}})
			return
		}
	}

	created := s.addRequest(owner, req.StartDate, req.EndDate, domain.StatusPending, req.Reason)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request, caller domain.User) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var body struct {
		Status domain.LeaveStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	if !domain.ValidLeaveStatus(body.Status) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"status": {`"` + string(body.Status) + `" is not a valid choice.`}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok || !s.visibleTo(req, domain.RoleSupervisor, caller.Profile().ID) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if !domain.CanTransition(req.Status, body.Status) {
		writeDetail(w, http.StatusBadRequest, "Leave request is not pending.")
		return
	}
	if body.Status == domain.StatusApproved {
		emp := s.accounts[req.owner].user.(*domain.Employee)
		if emp.LeaveRequestsLeft <= 0 {
			writeDetail(w, http.StatusBadRequest, "No leave requests left.")
			return
		}
		emp.LeaveRequestsLeft--
	}
	req.Status = body.Status
	writeJSON(w, http.StatusOK, domain.StatusUpdate{Status: req.Status})
}

func (s *Server) deleteLeaveRequest(w http.ResponseWriter, r *http.Request, caller domain.User) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok || req.owner != caller.Profile().ID {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if !domain.CanDelete(req.Status) {
		writeDetail(w, http.StatusBadRequest, "Only pending leave requests can be deleted.")
		return
	}
	delete(s.requests, id)
	w.WriteHeader(http.StatusNoContent)
}
