package domain

import "time"

// LeaveStatus is the lifecycle state of a leave request.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// LeaveStatuses lists every status in display order.
var LeaveStatuses = []LeaveStatus{StatusPending, StatusApproved, StatusRejected}

// ValidLeaveStatus returns true if s is a known status.
func ValidLeaveStatus(s LeaveStatus) bool {
	for _, v := range LeaveStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label returns the capitalized status for display.
func (s LeaveStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// CanTransition reports whether a supervisor may move a request from one
// status to another. Only pending requests are decided; decisions are final.
func CanTransition(from, to LeaveStatus) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

// CanDelete reports whether the owning employee may still withdraw a request.
func CanDelete(s LeaveStatus) bool {
	return s == StatusPending
}

// LeaveRequest is a request for time off.
type LeaveRequest struct {
	ID        int64       `json:"id"`
	Employee  int64       `json:"employee,omitempty"`
	Status    LeaveStatus `json:"status"`
	StartDate Date        `json:"start_date"`
	EndDate   Date        `json:"end_date"`
	CreatedAt time.Time   `json:"created_at"`
	Reason    *string     `json:"reason"`
}

// Days returns the inclusive length of the request in days.
func (r LeaveRequest) Days() int {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return 0
	}
	return r.StartDate.DaysUntil(r.EndDate)
}

// ReasonText returns the reason or an empty string.
func (r LeaveRequest) ReasonText() string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}

// NewLeaveRequest is the payload for submitting a leave request.
type NewLeaveRequest struct {
	StartDate Date    `json:"start_date"`
	EndDate   Date    `json:"end_date"`
	Reason    *string `json:"reason,omitempty"`
}

// StatusUpdate is the payload and response of a status change.
type StatusUpdate struct {
	Status LeaveStatus `json:"status"`
}
