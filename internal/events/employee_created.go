package events

import "time"

const EmployeeCreatedTopic = "payroll.employee.lifecycle.v1"

// EmployeeCreatedEvent is published through the outbox after an employee and
// its credential are committed. The one-time password is never part of the
// event; it is only visible in the synchronous creation response.
type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurred_at"`
}
