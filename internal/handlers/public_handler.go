package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduqar/tutor-marketplace/internal/config"
	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	infraRepo "github.com/eduqar/tutor-marketplace/internal/infra/repository"
	"github.com/eduqar/tutor-marketplace/internal/models"
	"github.com/eduqar/tutor-marketplace/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewPublicHandler(db *gorm.DB, cfg *config.Config) *PublicHandler {
	return &PublicHandler{db: db, config: cfg}
}

////////////////////////////////////////////////////////
// TEACHERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListTeachers(c *gin.Context) {
	city := strings.TrimSpace(strings.ToLower(c.Query("city")))
	sessionType := c.Query("session_type")

	q := h.db.Where("is_active = true")

	if city != "" {
		q = q.Where("LOWER(city) = ?", city)
	}

	switch sessionType {
	case "online":
		q = q.Where("teaches_online = true AND hourly_rate_online IS NOT NULL")
	case "in_person":
		q = q.Where("teaches_in_person = true AND hourly_rate_in_person IS NOT NULL")
	}

	var teachers []models.Teacher
	if err := q.Order("id ASC").Find(&teachers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_teachers", "Could not list teachers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers})
}

func (h *PublicHandler) GetTeacher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var teacher models.Teacher
	if err := h.db.Where("id = ? AND is_active = true", id).First(&teacher).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Teacher not found.")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

////////////////////////////////////////////////////////
// AVAILABILITY FOR A DATE
////////////////////////////////////////////////////////

type freeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability resolves a teacher's calendar for one date into the remaining
// free segments: the configured windows minus the time held by pending and
// confirmed bookings.
func (h *PublicHandler) Availability(c *gin.Context) {
	teacherID, ok := parseID(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	loc := timezone.Location(h.config.MarketTimezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	ctx := c.Request.Context()

	teacher, err := repo.GetTeacherByID(ctx, teacherID)
	if err != nil || !teacher.IsActive {
		httperr.NotFound(c, "teacher_not_found", "Teacher not found.")
		return
	}

	rows, err := repo.ListAvailabilityForDate(ctx, teacherID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not load availability.")
		return
	}

	bookings, err := repo.ListActiveBookingsForDate(ctx, teacherID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not load bookings.")
		return
	}

	windows := domain.WindowsForDate(rows, date)
	booked := domain.ActiveIntervals(bookings)

	free := make([]freeSlot, 0)
	for _, w := range windows {
		for _, seg := range subtract(w, booked) {
			free = append(free, freeSlot{
				Start: domain.FormatMinutes(seg.Start),
				End:   domain.FormatMinutes(seg.End),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       dateStr,
		"teacher_id": teacherID,
		"free_slots": free,
	})
}

// subtract removes the booked intervals from one window, returning the
// leftover segments in order.
func subtract(w domain.Interval, booked []domain.Interval) []domain.Interval {
	segments := []domain.Interval{w}

	for _, b := range booked {
		var next []domain.Interval
		for _, s := range segments {
			if !s.Overlaps(b) {
				next = append(next, s)
				continue
			}
			if b.Start > s.Start {
				next = append(next, domain.Interval{Start: s.Start, End: b.Start})
			}
			if b.End < s.End {
				next = append(next, domain.Interval{Start: b.End, End: s.End})
			}
		}
		segments = next
	}

	return segments
}
