package handlers

import (
	"net/http"

	"clinichub/models"
	"clinichub/services/doctor"
	"clinichub/services/review"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// maxImageBytes caps doctor photo uploads.
const maxImageBytes = 5 << 20

// DoctorHandler serves doctor management and the public doctor directory.
type DoctorHandler struct {
	Doctors doctor.DoctorService
	Reviews review.ReviewService
}

func NewDoctorHandler(ds doctor.DoctorService, rs review.ReviewService) *DoctorHandler {
	return &DoctorHandler{Doctors: ds, Reviews: rs}
}

// CreateDoctorHandler handles POST /api/admin/doctors.
func (h *DoctorHandler) CreateDoctorHandler(c *gin.Context) {
	var in models.DoctorInput
	if !bindJSON(c, &in) {
		return
	}
	doc, err := h.Doctors.CreateDoctor(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, doc)
}

// UpdateDoctorHandler handles PUT /api/admin/doctors/:id.
func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	var in models.DoctorInput
	if !bindJSON(c, &in) {
		return
	}
	doc, err := h.Doctors.UpdateDoctor(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, doc)
}

// DeleteDoctorHandler handles DELETE /api/admin/doctors/:id.
func (h *DoctorHandler) DeleteDoctorHandler(c *gin.Context) {
	if err := h.Doctors.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Doctor deleted"})
}

// SetAvailabilityHandler handles PATCH /api/admin/doctors/:id/availability.
func (h *DoctorHandler) SetAvailabilityHandler(c *gin.Context) {
	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	doc, err := h.Doctors.SetAvailability(c.Request.Context(), c.Param("id"), *body.Available)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, doc)
}

// UploadImageHandler handles POST /api/admin/doctors/:id/image (multipart field "image").
func (h *DoctorHandler) UploadImageHandler(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "An image file is required")
		return
	}
	if header.Size > maxImageBytes {
		utils.JSONError(c, http.StatusBadRequest, "Image must be 5MB or smaller")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read the uploaded image")
		return
	}
	defer file.Close()

	doc, err := h.Doctors.UploadImage(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, doc)
}

// AdminListDoctorsHandler handles GET /api/admin/doctors.
func (h *DoctorHandler) AdminListDoctorsHandler(c *gin.Context) {
	h.list(c, models.DoctorFilter{Speciality: c.Query("speciality")})
}

// ListDoctorsHandler handles GET /api/doctors and lists available doctors only.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	h.list(c, models.DoctorFilter{Speciality: c.Query("speciality"), OnlyAvailable: true})
}

func (h *DoctorHandler) list(c *gin.Context, f models.DoctorFilter) {
	docs, err := h.Doctors.ListDoctors(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, docs)
}

// GetDoctorHandler handles GET /api/doctors/:id and GET /api/admin/doctors/:id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	doc, err := h.Doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, doc)
}

// SlotsHandler handles GET /api/doctors/:id/slots?date=YYYY-MM-DD.
func (h *DoctorHandler) SlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONValidationError(c, "Please correct the highlighted fields", map[string]string{"date": "date is required"})
		return
	}
	slots, err := h.Doctors.Slots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots)
}

// ReviewsHandler handles GET /api/doctors/:id/reviews.
func (h *DoctorHandler) ReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.DoctorReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}
