package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role discriminates the two user variants.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
)

// ValidRole returns true if r is a known role.
func ValidRole(r Role) bool {
	return r == RoleEmployee || r == RoleSupervisor
}

// Identity holds the fields shared by every user.
type Identity struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	NationalID  string    `json:"national_id"`
	PhoneNumber *string   `json:"phone_number"`
	DateJoined  time.Time `json:"date_joined,omitempty"`
}

// FullName returns first and last name separated by a space.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Initials returns the uppercase initials used as an avatar.
func (i Identity) Initials() string {
	var b strings.Builder
	for _, s := range []string{i.FirstName, i.LastName} {
		if r := []rune(s); len(r) > 0 {
			b.WriteString(strings.ToUpper(string(r[0])))
		}
	}
	return b.String()
}

// User is the authenticated profile: either *Employee or *Supervisor.
type User interface {
	UserRole() Role
	Profile() Identity
}

// Supervisor manages employees and decides on their leave requests.
type Supervisor struct {
	Identity
}

// Employee submits leave requests to an assigned supervisor.
type Employee struct {
	Identity
	LeaveRequestsLeft  int         `json:"leave_requests_left"`
	AssignedSupervisor *Supervisor `json:"assigned_supervisor"`
}

func (s *Supervisor) UserRole() Role    { return RoleSupervisor }
func (s *Supervisor) Profile() Identity { return s.Identity }
func (e *Employee) UserRole() Role      { return RoleEmployee }
func (e *Employee) Profile() Identity   { return e.Identity }

// MarshalJSON always writes the role discriminator.
func (s Supervisor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Identity
		Role Role `json:"role"`
	}{s.Identity, RoleSupervisor})
}

// MarshalJSON always writes the role discriminator.
func (e Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Identity
		Role               Role        `json:"role"`
		LeaveRequestsLeft  int         `json:"leave_requests_left"`
		AssignedSupervisor *Supervisor `json:"assigned_supervisor"`
	}{e.Identity, RoleEmployee, e.LeaveRequestsLeft, e.AssignedSupervisor})
}

// DecodeUser parses a profile payload into the variant named by its role field.
func DecodeUser(data []byte) (User, error) {
	var head struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("domain.DecodeUser: %w", err)
	}
	switch head.Role {
	case RoleEmployee:
		var e Employee
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("domain.DecodeUser: employee: %w", err)
		}
		return &e, nil
	case RoleSupervisor:
		var s Supervisor
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("domain.DecodeUser: supervisor: %w", err)
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("domain.DecodeUser: unknown role %q", head.Role)
	}
}

// EncodeUser serializes a user with its role discriminator.
func EncodeUser(u User) ([]byte, error) {
	switch v := u.(type) {
	case *Employee:
		return json.Marshal(v)
	case *Supervisor:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("domain.EncodeUser: unsupported user type %T", u)
	}
}
