package domain

// DefaultLeaveRequestsLeft is the leave allowance given to new employees.
const DefaultLeaveRequestsLeft = 30

// EmployeeSignup is the payload a supervisor submits to register an employee.
type EmployeeSignup struct {
	Email             string `json:"email" validate:"required,email"`
	FirstName         string `json:"first_name" validate:"required,max=80"`
	LastName          string `json:"last_name" validate:"required,max=100"`
	NationalID        string `json:"national_id" validate:"required,len=10,numeric"`
	PhoneNumber       string `json:"phone_number" validate:"required,len=11,numeric"`
	Password          string `json:"password" validate:"required,min=8"`
	LeaveRequestsLeft int    `json:"leave_requests_left" validate:"gte=0"`
}

// SupervisorSignup is the payload for supervisor self-registration.
type SupervisorSignup struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"required,max=80"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	NationalID  string `json:"national_id" validate:"required,len=10,numeric"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,len=11,numeric"`
	Password    string `json:"password" validate:"required,min=8"`
}

// Credentials is the payload exchanged for an auth token. The backend
// identifies users by email under the "username" key.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
