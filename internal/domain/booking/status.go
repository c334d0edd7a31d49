package booking

import "github.com/eduqar/tutor-marketplace/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ===============================
// Actor roles
// ===============================

type Role string

const (
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"

	// RoleProvider is the payment provider acting through reconciliation.
	// It carries admin-equivalent authority for the pending->confirmed edge
	// so that payment success flows through the same transition table as
	// everything else.
	RoleProvider Role = "provider"
)

// ===============================
// Transition table
// ===============================

// completed and cancelled are terminal.
var outgoing = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

type edge struct {
	from Status
	to   Status
}

var authority = map[edge]map[Role]bool{
	{StatusPending, StatusConfirmed}: {
		RoleTeacher:  true,
		RoleAdmin:    true,
		RoleProvider: true,
	},
	{StatusPending, StatusCancelled}: {
		RoleParent:  true,
		RoleTeacher: true,
		RoleAdmin:   true,
	},
	{StatusConfirmed, StatusCompleted}: {
		RoleTeacher: true,
		RoleAdmin:   true,
	},
	{StatusConfirmed, StatusCancelled}: {
		RoleParent:  true,
		RoleTeacher: true,
		RoleAdmin:   true,
	},
}

func IsValidStatus(s Status) bool {
	_, ok := outgoing[s]
	return ok
}

// ValidateTransition checks both the status graph and the acting role's
// authority over the specific edge.
func ValidateTransition(current, next Status, role Role) error {
	allowed := false
	for _, s := range outgoing[current] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	if !authority[edge{current, next}][role] {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return nil
}
