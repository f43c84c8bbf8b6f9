package mockapi

import "github.com/naveenspark/leavedesk/pkg/domain"

// Demo account credentials created by Seed.
const (
	DemoSupervisorEmail = "supervisor@leavedesk.test"
	DemoEmployeeEmail   = "employee@leavedesk.test"
	DemoPassword        = "password123"
)

// Seed adds a supervisor, two employees and a handful of leave requests
// relative to today.
func (s *Server) Seed() {
	phone := "09120000000"
	sup := s.AddSupervisor(domain.Identity{
		Email: DemoSupervisorEmail, FirstName: "Sara", LastName: "Ahmadi", NationalID: "1234567890", PhoneNumber: &phone,
	}, DemoPassword)

	emp := s.AddEmployee(domain.Identity{
		Email: DemoEmployeeEmail, FirstName: "Nima", LastName: "Karimi", NationalID: "0012345678",
	}, DemoPassword, sup.ID, domain.DefaultLeaveRequestsLeft)
	other := s.AddEmployee(domain.Identity{
		Email: "reza@leavedesk.test", FirstName: "Reza", LastName: "Tehrani", NationalID: "0098765432",
	}, DemoPassword, sup.ID, 12)

	today := s.now().UTC()
	day := func(offset int) domain.Date {
		t := today.AddDate(0, 0, offset)
		return domain.NewDate(t.Year(), t.Month(), t.Day())
	}
	s.AddLeaveRequest(emp.ID, day(-40), day(-38), domain.StatusApproved)
	s.AddLeaveRequest(emp.ID, day(-20), day(-19), domain.StatusRejected)
	s.AddLeaveRequest(emp.ID, day(10), day(14), domain.StatusPending)
	s.AddLeaveRequest(other.ID, day(3), day(4), domain.StatusPending)
	s.AddLeaveRequest(other.ID, day(30), day(31), domain.StatusPending)
}
