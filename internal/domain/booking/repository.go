package booking

import (
	"context"
	"time"

	"github.com/eduqar/tutor-marketplace/internal/models"
)

type Repository interface {
	// -------- Teacher --------
	GetTeacherByID(
		ctx context.Context,
		id uint,
	) (*models.Teacher, error)

	GetTeacherByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Teacher, error)

	// -------- Availability --------
	ListAvailabilityForDate(
		ctx context.Context,
		teacherID uint,
		date time.Time,
	) ([]models.TeacherAvailability, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree re-checks slot conflicts and inserts inside a
	// single locking transaction, closing the check-then-create race. A lost
	// race surfaces as a slot_unavailable business error.
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	ListActiveBookingsForDate(
		ctx context.Context,
		teacherID uint,
		date time.Time,
	) ([]models.Booking, error)

	// -------- Booking (state change / read) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForParent(
		ctx context.Context,
		parentID uint,
		status string,
	) ([]models.Booking, error)

	ListBookingsForTeacher(
		ctx context.Context,
		teacherID uint,
		status string,
	) ([]models.Booking, error)
}
