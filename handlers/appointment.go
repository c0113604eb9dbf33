package handlers

import (
	"errors"
	"io"
	"net/http"

	"clinichub/models"
	"clinichub/services/appointment"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves booking, listing and the one-shot appointment actions.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
}

func NewAppointmentHandler(as appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: as}
}

// BookHandler handles POST /api/appointments/book.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	var req models.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Appointments.Book(c.Request.Context(), actor(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, appt)
}

// ListHandler returns the caller's appointments: GET /api/users/showAppointment,
// GET /api/doctors/appointments and GET /api/admin/appointments.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts, err := h.Appointments.List(c.Request.Context(), actor(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appts)
}

// GetHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	appt, err := h.Appointments.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appt)
}

// CancelHandler handles PUT /api/users/appointment/cancel and PUT /api/doctors/appointment/cancel.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	var req models.CancelAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	h.cancel(c, req.AppointmentID, req.Reason)
}

// AdminCancelHandler handles PUT /api/admin/appointments/:id/cancel. The body is optional.
func (h *AppointmentHandler) AdminCancelHandler(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.cancel(c, c.Param("id"), body.Reason)
}

func (h *AppointmentHandler) cancel(c *gin.Context, id, reason string) {
	appt, err := h.Appointments.Cancel(c.Request.Context(), actor(c), id, reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appt)
}

// RescheduleHandler handles PUT /api/doctors/appointment/reschedule.
func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	var req models.RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Appointments.Reschedule(c.Request.Context(), actor(c), req.AppointmentID, req.Date, req.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appt)
}

// CompleteHandler handles PUT /api/doctors/appointment/complete.
func (h *AppointmentHandler) CompleteHandler(c *gin.Context) {
	var req models.AppointmentActionRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Appointments.Complete(c.Request.Context(), actor(c), req.AppointmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appt)
}

// AdminDashboardHandler handles GET /api/admin/dashboard.
func (h *AppointmentHandler) AdminDashboardHandler(c *gin.Context) {
	dash, err := h.Appointments.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, dash)
}

// DoctorDashboardHandler handles GET /api/doctors/dashboard.
func (h *AppointmentHandler) DoctorDashboardHandler(c *gin.Context) {
	dash, err := h.Appointments.DoctorDashboard(c.Request.Context(), actor(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, dash)
}
