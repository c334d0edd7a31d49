package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/httpresp"
	"github.com/eduqar/tutor-marketplace/internal/middleware"
	ucBooking "github.com/eduqar/tutor-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	updateUC *ucBooking.UpdateBooking
	cancelUC *ucBooking.CancelBooking
	getUC    *ucBooking.GetBooking
	listUC   *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	updateUC *ucBooking.UpdateBooking,
	cancelUC *ucBooking.CancelBooking,
	getUC *ucBooking.GetBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		updateUC: updateUC,
		cancelUC: cancelUC,
		getUC:    getUC,
		listUC:   listUC,
	}
}

func actorFromContext(c *gin.Context) domain.Actor {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	isAdmin, _ := c.MustGet(middleware.ContextIsAdmin).(bool)
	return domain.Actor{UserID: userID, IsAdmin: isAdmin}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TeacherID   uint   `json:"teacher_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	GradeLevel  string `json:"grade_level"`
	SessionType string `json:"session_type" binding:"required,oneof=online in_person"`

	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
	ScheduledDate string  `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	StartTime     string  `json:"start_time" binding:"required"`     // HH:MM

	Location        string `json:"location"`
	SpecialRequests string `json:"special_requests"`
}

type UpdateBookingRequest struct {
	Status       string `json:"status"`
	TeacherNotes string `json:"teacher_notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ParentID:        actor.UserID,
		TeacherID:       req.TeacherID,
		Subject:         req.Subject,
		GradeLevel:      req.GradeLevel,
		SessionType:     req.SessionType,
		DurationHours:   req.DurationHours,
		ScheduledDate:   req.ScheduledDate,
		StartTime:       req.StartTime,
		Location:        req.Location,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondBusinessError(c, err, "failed_to_create_booking")
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	actor := actorFromContext(c)
	status := c.Query("status")

	list, err := h.listUC.ForParent(c.Request.Context(), actor.UserID, status)
	if err != nil {
		respondBusinessError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, list)
}

func (h *BookingHandler) ListForTeacher(c *gin.Context) {
	actor := actorFromContext(c)
	status := c.Query("status")

	list, err := h.listUC.ForTeacher(c.Request.Context(), actor.UserID, status)
	if err != nil {
		respondBusinessError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, list)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		respondBusinessError(c, err, "failed_to_get_booking")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// UPDATE (status / notes)
// ======================================================

// Update serves both the generic and the teacher-flavoured update route. The
// transition table decides per role what the actor may do, so a single
// handler is enough.
func (h *BookingHandler) Update(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		Actor:        actor,
		BookingID:    id,
		Status:       req.Status,
		TeacherNotes: req.TeacherNotes,
	})
	if err != nil {
		respondBusinessError(c, err, "failed_to_update_booking")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	actor := actorFromContext(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	reason := c.Query("cancellation_reason")

	if _, err := h.cancelUC.Execute(c.Request.Context(), actor, id, reason); err != nil {
		respondBusinessError(c, err, "failed_to_cancel_booking")
		return
	}

	c.Status(http.StatusNoContent)
}
