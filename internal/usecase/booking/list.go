package booking

import (
	"context"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/dto"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ForParent lists the actor's own bookings, optionally filtered by status.
func (uc *ListBookings) ForParent(
	ctx context.Context,
	parentID uint,
	status string,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForParent(ctx, parentID, status)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

// ForTeacher lists bookings of the teacher profile owned by the acting user.
func (uc *ListBookings) ForTeacher(
	ctx context.Context,
	userID uint,
	status string,
) ([]dto.BookingListDTO, error) {

	teacher, err := uc.repo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "teacher profile not found")
	}

	bookings, err := uc.repo.ListBookingsForTeacher(ctx, teacher.ID, status)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

func toListDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			TeacherID:     b.TeacherID,
			ParentID:      b.ParentID,
			Subject:       b.Subject,
			SessionType:   b.SessionType,
			ScheduledDate: b.ScheduledDate.Format("2006-01-02"),
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			TotalAmount:   b.TotalAmount,
			Currency:      b.Currency,
		})
	}
	return out
}
