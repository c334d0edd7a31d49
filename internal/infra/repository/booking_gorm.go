package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Teacher
// --------------------------------------------------

func (r *BookingGormRepository) GetTeacherByID(
	ctx context.Context,
	id uint,
) (*models.Teacher, error) {

	var t models.Teacher
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *BookingGormRepository) GetTeacherByUserID(
	ctx context.Context,
	userID uint,
) (*models.Teacher, error) {

	var t models.Teacher
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListAvailabilityForDate(
	ctx context.Context,
	teacherID uint,
	date time.Time,
) ([]models.TeacherAvailability, error) {

	weekday := int(date.Weekday())

	var rows []models.TeacherAvailability
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_id = ? AND ((is_recurring = true AND day_of_week = ?) OR (is_recurring = false AND specific_date = ?))",
			teacherID, weekday, date.Format("2006-01-02"),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookingsForDate(
	ctx context.Context,
	teacherID uint,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_id = ? AND scheduled_date = ? AND status IN ('pending', 'confirmed')",
			teacherID, date.Format("2006-01-02"),
		).
		Order("start_minute ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// CreateBookingIfFree locks the teacher's active rows for the date, rechecks
// overlap and inserts in one transaction. The bookings_no_overlap exclusion
// constraint backstops anything the lock misses.
func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"teacher_id = ? AND scheduled_date = ? AND status IN ('pending', 'confirmed') AND start_minute < ? AND end_minute > ?",
				b.TeacherID, b.ScheduledDate.Format("2006-01-02"), b.EndMinute, b.StartMinute,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(b).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	return err
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForParent(
	ctx context.Context,
	parentID uint,
	status string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Where("parent_id = ?", parentID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.
		Order("scheduled_date DESC, start_minute DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForTeacher(
	ctx context.Context,
	teacherID uint,
	status string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.
		Order("scheduled_date DESC, start_minute DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
