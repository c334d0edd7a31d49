package booking

import (
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// ResolveRole maps an actor onto its role for a given booking. teacherUserID
// is the user account owning the booking's teacher profile. Admin wins over
// ownership so platform staff acting on their own bookings keep full
// authority.
func ResolveRole(a Actor, b *models.Booking, teacherUserID uint) (Role, error) {
	switch {
	case a.IsAdmin:
		return RoleAdmin, nil
	case b.ParentID == a.UserID:
		return RoleParent, nil
	case teacherUserID == a.UserID:
		return RoleTeacher, nil
	default:
		return "", httperr.ErrBusiness(httperr.CodeForbidden)
	}
}
