package booking

import (
	"context"
	"time"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// fakeRepo is an in-memory stand-in for the gorm repository. It replays the
// conflict re-check inside CreateBookingIfFree the same way the real
// transaction does, so the race-closing path is exercised too.
type fakeRepo struct {
	teachers     map[uint]*models.Teacher
	availability []models.TeacherAvailability
	bookings     map[uint]*models.Booking
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		teachers: make(map[uint]*models.Teacher),
		bookings: make(map[uint]*models.Booking),
		nextID:   1,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetTeacherByID(_ context.Context, id uint) (*models.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return t, nil
}

func (f *fakeRepo) GetTeacherByUserID(_ context.Context, userID uint) (*models.Teacher, error) {
	for _, t := range f.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) ListAvailabilityForDate(_ context.Context, teacherID uint, _ time.Time) ([]models.TeacherAvailability, error) {
	var out []models.TeacherAvailability
	for _, row := range f.availability {
		if row.TeacherID == teacherID {
			out = append(out, row)
		}
	}
	return out, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakeRepo) CreateBookingIfFree(_ context.Context, b *models.Booking) error {
	req := domain.Interval{Start: b.StartMinute, End: b.EndMinute}
	for _, other := range f.bookings {
		if other.TeacherID != b.TeacherID || !sameDate(other.ScheduledDate, b.ScheduledDate) {
			continue
		}
		s := domain.Status(other.Status)
		if s != domain.StatusPending && s != domain.StatusConfirmed {
			continue
		}
		if req.Overlaps(domain.Interval{Start: other.StartMinute, End: other.EndMinute}) {
			return httperr.ErrBusinessMsg(httperr.CodeSlotUnavailable, "slot taken")
		}
	}

	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeRepo) ListActiveBookingsForDate(_ context.Context, teacherID uint, date time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TeacherID != teacherID || !sameDate(b.ScheduledDate, date) {
			continue
		}
		s := domain.Status(b.Status)
		if s == domain.StatusPending || s == domain.StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeRepo) ListBookingsForParent(_ context.Context, parentID uint, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ParentID != parentID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForTeacher(_ context.Context, teacherID uint, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TeacherID != teacherID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}
