package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/middleware"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityWindowConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type AvailabilityUpdateRequest struct {
	Windows []AvailabilityWindowConfig `json:"windows" binding:"required"`
}

type AvailabilityCreateRequest struct {
	DayOfWeek    int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	IsRecurring  *bool  `json:"is_recurring"`
	SpecificDate string `json:"specific_date"` // YYYY-MM-DD, required for one-time windows
}

func validWindow(startHM, endHM string) bool {
	start, err := domain.ParseMinutes(startHM)
	if err != nil {
		return false
	}
	end, err := domain.ParseMinutes(endHM)
	if err != nil {
		return false
	}
	return start < end
}

func (h *AvailabilityHandler) teacherForUser(c *gin.Context) (*models.Teacher, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var teacher models.Teacher
	if err := h.db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Teacher profile not found.")
		return nil, false
	}
	return &teacher, true
}

// ======================================================
// GET
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	teacher, ok := h.teacherForUser(c)
	if !ok {
		return
	}

	var rows []models.TeacherAvailability
	if err := h.db.
		Where("teacher_id = ?", teacher.ID).
		Order("is_recurring DESC, day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_get_availability", "Could not load availability.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ======================================================
// UPDATE (replace recurring week)
// ======================================================

// Update replaces the whole recurring week in one shot. One-time windows are
// left untouched; they are managed individually.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	teacher, ok := h.teacherForUser(c)
	if !ok {
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	for _, w := range req.Windows {
		if !validWindow(w.StartTime, w.EndTime) {
			httperr.BadRequest(c, "invalid_window", "Start time must be before end time, HH:MM format.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("teacher_id = ? AND is_recurring = ?", teacher.ID, true).
			Delete(&models.TeacherAvailability{}).Error; err != nil {
			return err
		}

		var toCreate []models.TeacherAvailability
		for _, w := range req.Windows {
			toCreate = append(toCreate, models.TeacherAvailability{
				TeacherID:   teacher.ID,
				DayOfWeek:   w.DayOfWeek,
				StartTime:   w.StartTime,
				EndTime:     w.EndTime,
				IsRecurring: true,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Could not save availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// CREATE (single window, incl. one-time)
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	teacher, ok := h.teacherForUser(c)
	if !ok {
		return
	}

	var req AvailabilityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validWindow(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_window", "Start time must be before end time, HH:MM format.")
		return
	}

	row := models.TeacherAvailability{
		TeacherID:   teacher.ID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsRecurring: true,
	}
	if req.IsRecurring != nil {
		row.IsRecurring = *req.IsRecurring
	}

	if !row.IsRecurring {
		if req.SpecificDate == "" {
			httperr.BadRequest(c, "missing_specific_date", "One-time windows need a specific date.")
			return
		}
		date, err := time.Parse("2006-01-02", req.SpecificDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
			return
		}
		row.SpecificDate = &date
		row.DayOfWeek = int(date.Weekday())
	}

	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Could not save availability.")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// ======================================================
// DELETE
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	teacher, ok := h.teacherForUser(c)
	if !ok {
		return
	}

	id := c.Param("id")

	res := h.db.
		Where("id = ? AND teacher_id = ?", id, teacher.ID).
		Delete(&models.TeacherAvailability{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Could not delete availability.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "availability_not_found", "Availability window not found.")
		return
	}

	c.Status(http.StatusNoContent)
}
