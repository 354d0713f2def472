package types

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

type SupportTicket struct {
	ID         string       `db:"id" json:"id"`
	Reference  string       `db:"reference" json:"reference"`
	UserID     string       `db:"user_id" json:"userId"`
	Subject    string       `db:"subject" json:"subject"`
	Message    string       `db:"message" json:"message"`
	Status     TicketStatus `db:"status" json:"status"`
	AssignedTo *string      `db:"assigned_to" json:"assignedTo,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`
}
