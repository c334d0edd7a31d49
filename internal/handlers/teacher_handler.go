package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/middleware"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type TeacherHandler struct {
	db *gorm.DB
}

func NewTeacherHandler(db *gorm.DB) *TeacherHandler {
	return &TeacherHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type TeacherProfileRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Bio             string `json:"bio"`
	City            string `json:"city"`
	YearsExperience int    `json:"years_experience"`

	TeachesOnline   *bool `json:"teaches_online"`
	TeachesInPerson *bool `json:"teaches_in_person"`

	HourlyRateOnline   *float64 `json:"hourly_rate_online"`
	HourlyRateInPerson *float64 `json:"hourly_rate_in_person"`
}

type PayoutAccountRequest struct {
	StripeAccountID string `json:"stripe_account_id" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *TeacherHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req TeacherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Teacher{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "profile_already_exists", "Teacher profile already exists.")
		return
	}

	teacher := models.Teacher{
		UserID:          userID,
		FullName:        req.FullName,
		Bio:             req.Bio,
		City:            req.City,
		YearsExperience: req.YearsExperience,
		TeachesOnline:   true,
		TeachesInPerson: true,
		IsActive:        true,
	}
	if req.TeachesOnline != nil {
		teacher.TeachesOnline = *req.TeachesOnline
	}
	if req.TeachesInPerson != nil {
		teacher.TeachesInPerson = *req.TeachesInPerson
	}
	teacher.HourlyRateOnline = req.HourlyRateOnline
	teacher.HourlyRateInPerson = req.HourlyRateInPerson

	if err := h.db.Create(&teacher).Error; err != nil {
		httperr.Internal(c, "failed_to_create_profile", "Could not create teacher profile.")
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// ======================================================
// GET / UPDATE (own profile)
// ======================================================

func (h *TeacherHandler) GetMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var teacher models.Teacher
	if err := h.db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Teacher profile not found.")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

func (h *TeacherHandler) UpdateMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var teacher models.Teacher
	if err := h.db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Teacher profile not found.")
		return
	}

	var req TeacherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	teacher.FullName = req.FullName
	teacher.Bio = req.Bio
	teacher.City = req.City
	teacher.YearsExperience = req.YearsExperience
	if req.TeachesOnline != nil {
		teacher.TeachesOnline = *req.TeachesOnline
	}
	if req.TeachesInPerson != nil {
		teacher.TeachesInPerson = *req.TeachesInPerson
	}
	teacher.HourlyRateOnline = req.HourlyRateOnline
	teacher.HourlyRateInPerson = req.HourlyRateInPerson

	if err := h.db.Save(&teacher).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update teacher profile.")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// SetPayoutAccount stores the connected payment account, a precondition for
// requesting payouts.
func (h *TeacherHandler) SetPayoutAccount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var teacher models.Teacher
	if err := h.db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Teacher profile not found.")
		return
	}

	var req PayoutAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	teacher.StripeAccountID = &req.StripeAccountID

	if err := h.db.Save(&teacher).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update payout account.")
		return
	}

	c.JSON(http.StatusOK, teacher)
}
