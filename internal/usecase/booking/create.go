package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/lock"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ParentID  uint
	TeacherID uint

	Subject     string
	GradeLevel  string
	SessionType string

	DurationHours float64
	ScheduledDate string // YYYY-MM-DD
	StartTime     string // HH:mm

	Location        string
	SpecialRequests string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo           domain.Repository
	locker         lock.Locker
	audit          *audit.Dispatcher
	commissionRate decimal.Decimal
	loc            *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	commissionRate decimal.Decimal,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:           repo,
		locker:         locker,
		audit:          audit,
		commissionRate: commissionRate,
		loc:            loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Teacher must exist and be active
	// --------------------------------------------------
	teacher, err := uc.repo.GetTeacherByID(ctx, in.TeacherID)
	if err != nil || !teacher.IsActive {
		return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "teacher not found or unavailable")
	}

	// --------------------------------------------------
	// Requested interval on the minute-of-day scale
	// --------------------------------------------------
	date, err := time.ParseInLocation("2006-01-02", in.ScheduledDate, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "invalid date")
	}

	req, err := domain.NewInterval(in.StartTime, in.DurationHours)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Serialize the hot path per (teacher, date). Advisory only: the
	// transaction below is the guarantee, so a missed lock just proceeds.
	// --------------------------------------------------
	key := lock.SlotKey(in.TeacherID, date)
	if acquired, lockErr := uc.locker.Acquire(ctx, key, 5*time.Second); lockErr == nil && acquired {
		defer uc.locker.Release(ctx, key)
	}

	// --------------------------------------------------
	// Availability windows + existing active bookings
	// --------------------------------------------------
	rows, err := uc.repo.ListAvailabilityForDate(ctx, in.TeacherID, date)
	if err != nil {
		return nil, err
	}

	windows := domain.WindowsForDate(rows, date)
	if len(windows) == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "teacher has no availability on this date")
	}

	existing, err := uc.repo.ListActiveBookingsForDate(ctx, in.TeacherID, date)
	if err != nil {
		return nil, err
	}

	if !domain.IsSlotFree(windows, req, domain.ActiveIntervals(existing)) {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.ParentID,
			Action:   "booking_conflict",
			Entity:   "booking",
			Metadata: map[string]any{"teacher_id": in.TeacherID, "date": in.ScheduledDate, "start": in.StartTime},
		})
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "requested time slot is not available")
	}

	// --------------------------------------------------
	// Price snapshot
	// --------------------------------------------------
	quote, err := domain.Price(teacher, in.SessionType, in.DurationHours, uc.commissionRate)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Create (conflict re-checked inside the transaction)
	// --------------------------------------------------
	b := &models.Booking{
		TeacherID: in.TeacherID,
		ParentID:  in.ParentID,

		Subject:       in.Subject,
		GradeLevel:    in.GradeLevel,
		SessionType:   in.SessionType,
		DurationHours: in.DurationHours,

		ScheduledDate: date,
		StartTime:     domain.FormatMinutes(req.Start),
		EndTime:       domain.FormatMinutes(req.End),
		StartMinute:   req.Start,
		EndMinute:     req.End,

		Location: in.Location,

		HourlyRate:       quote.HourlyRate,
		TotalAmount:      quote.Total,
		Currency:         quote.Currency,
		CommissionAmount: quote.Commission,
		TeacherAmount:    quote.TeacherAmount,

		Status:        string(domain.StatusPending),
		PaymentStatus: string(domain.PaymentPending),

		SpecialRequests: in.SpecialRequests,
	}

	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ParentID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
